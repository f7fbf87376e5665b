package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"conlaw/app/client/congress"
	"conlaw/app/client/courtlistener"
	"conlaw/app/client/gemini"
	"conlaw/app/client/scotus"
	"conlaw/app/config"
	"conlaw/app/service/fetcher"
	"conlaw/app/service/identifier"
	"conlaw/app/service/output"
	"conlaw/app/service/repl"
	"conlaw/app/service/research"
	"conlaw/app/service/synthesizer"
	"conlaw/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, gemini.NewClient)
	do.Provide(di, courtlistener.NewClient)
	do.Provide(di, congress.NewClient)
	do.Provide(di, scotus.NewClient)
	do.Provide(di, identifier.New)
	do.Provide(di, fetcher.New)
	do.Provide(di, synthesizer.New)
	do.Provide(di, output.New)
	do.Provide(di, research.New)
	do.Provide(di, repl.New)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		cancel()
	}()

	if err := do.MustInvoke[*repl.Service](di).Run(appCtx); err != nil {
		slog.Error("Session ended with error", "error", err)
		os.Exit(1)
	}
}
