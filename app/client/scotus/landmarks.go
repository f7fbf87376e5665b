package scotus

import "conlaw/app/model"

func landmark(name, citation, topic string) model.CaseReference {
	return model.CaseReference{
		Source:   model.SourceLandmark,
		CaseName: name,
		Citation: citation,
		Topic:    topic,
		Landmark: true,
	}
}

// Landmark constitutional cases keyed by topic keyword. Seed data for
// topic search and for enriching database results with cases every
// practitioner expects to see.
var landmarkCases = map[string][]model.CaseReference{
	"fourth amendment": {
		landmark("Carpenter v. United States", "585 U.S. 296 (2018)", "Cell phone location data is protected by 4th Amendment"),
		landmark("Riley v. California", "573 U.S. 373 (2014)", "Police must get warrant to search cell phones"),
		landmark("Katz v. United States", "389 U.S. 347 (1967)", "Established reasonable expectation of privacy test"),
		landmark("Terry v. Ohio", "392 U.S. 1 (1968)", "Stop and frisk standards"),
		landmark("Mapp v. Ohio", "367 U.S. 643 (1961)", "Exclusionary rule applies to states"),
	},
	"first amendment": {
		landmark("Tinker v. Des Moines", "393 U.S. 503 (1969)", "Student free speech in schools"),
		landmark("New York Times Co. v. Sullivan", "376 U.S. 254 (1964)", "Actual malice standard for public figures"),
		landmark("Brandenburg v. Ohio", "395 U.S. 444 (1969)", "Imminent lawless action test"),
		landmark("Citizens United v. FEC", "558 U.S. 310 (2010)", "Corporate political speech"),
		landmark("Snyder v. Phelps", "562 U.S. 443 (2011)", "Westboro Baptist Church protests protected"),
	},
	"equal protection": {
		landmark("Brown v. Board of Education", "347 U.S. 483 (1954)", "School segregation unconstitutional"),
		landmark("Students for Fair Admissions v. Harvard", "600 U.S. 181 (2023)", "Race-conscious admissions unconstitutional"),
		landmark("Obergefell v. Hodges", "576 U.S. 644 (2015)", "Same-sex marriage is a fundamental right"),
		landmark("Loving v. Virginia", "388 U.S. 1 (1967)", "Interracial marriage bans unconstitutional"),
	},
	"due process": {
		landmark("Mathews v. Eldridge", "424 U.S. 319 (1976)", "Three-factor balancing test for procedural due process"),
		landmark("Gideon v. Wainwright", "372 U.S. 335 (1963)", "Right to counsel in criminal cases"),
		landmark("Miranda v. Arizona", "384 U.S. 436 (1966)", "Miranda rights required before interrogation"),
		landmark("Roe v. Wade", "410 U.S. 113 (1973)", "Substantive due process and privacy (overruled by Dobbs)"),
		landmark("Dobbs v. Jackson", "597 U.S. 215 (2022)", "No constitutional right to abortion, overruling Roe"),
	},
	"qualified immunity": {
		landmark("Harlow v. Fitzgerald", "457 U.S. 800 (1982)", "Established qualified immunity doctrine"),
		landmark("Pearson v. Callahan", "555 U.S. 223 (2009)", "Courts can skip clearly established analysis"),
		landmark("Kisela v. Hughes", "584 U.S. 100 (2018)", "High bar for defeating qualified immunity"),
	},
	"second amendment": {
		landmark("District of Columbia v. Heller", "554 U.S. 570 (2008)", "Individual right to bear arms"),
		landmark("McDonald v. City of Chicago", "561 U.S. 742 (2010)", "2nd Amendment applies to states"),
		landmark("New York State Rifle & Pistol Assn. v. Bruen", "597 U.S. 1 (2022)", "Text, history, and tradition test for gun laws"),
	},
	"executive power": {
		landmark("Youngstown Sheet & Tube Co. v. Sawyer", "343 U.S. 579 (1952)", "Limits on presidential power framework"),
		landmark("Trump v. Hawaii", "585 U.S. 667 (2018)", "Presidential authority over immigration"),
		landmark("Nixon v. United States", "418 U.S. 683 (1974)", "Executive privilege is not absolute"),
	},
	"section 1983": {
		landmark("Monroe v. Pape", "365 U.S. 167 (1961)", "Section 1983 applies to state officials acting under color of law"),
		landmark("Monell v. Department of Social Services", "436 U.S. 658 (1978)", "Municipal liability under Section 1983"),
		landmark("Graham v. Connor", "490 U.S. 386 (1989)", "Objective reasonableness standard for excessive force"),
	},
	"privacy": {
		landmark("Griswold v. Connecticut", "381 U.S. 479 (1965)", "Right to privacy in marital relations"),
		landmark("Carpenter v. United States", "585 U.S. 296 (2018)", "Digital privacy and cell phone tracking"),
		landmark("Riley v. California", "573 U.S. 373 (2014)", "Cell phone search requires warrant"),
	},
	"digital": {
		landmark("Carpenter v. United States", "585 U.S. 296 (2018)", "Cell-site location information protected"),
		landmark("Riley v. California", "573 U.S. 373 (2014)", "Warrantless cell phone search unconstitutional"),
		landmark("United States v. Jones", "565 U.S. 400 (2012)", "GPS tracking constitutes a search"),
	},
}
