// Command cli is the seolens entrypoint: one-shot page audits from the
// command line, or the HTTP audit API with -serve.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/seolens/seolens/pkg/audit"
	"github.com/seolens/seolens/pkg/config"
	"github.com/seolens/seolens/pkg/defaults"
	"github.com/seolens/seolens/pkg/fetcher"
	"github.com/seolens/seolens/pkg/report"
	"github.com/seolens/seolens/pkg/scoring"
	"github.com/seolens/seolens/pkg/server"
	"github.com/seolens/seolens/pkg/ui"
	"github.com/seolens/seolens/pkg/urlproc"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ui.Red, ui.Reset, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.ParseFlags(args)
	if err != nil {
		return err
	}
	if cfg.ShowVersion {
		fmt.Println("seolens v" + defaults.Version)
		return nil
	}
	if cfg.NoColor {
		os.Setenv("NO_COLOR", "1")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := buildClient(cfg)

	if cfg.Serve {
		log := logrus.New()
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		srv := server.New(server.Options{
			OutDir:      cfg.OutDir,
			Concurrency: cfg.Concurrency,
			Client:      client,
			Log:         log,
		})
		return srv.ListenAndServe(cfg.Addr)
	}

	ui.PrintBanner(os.Stdout, cfg.Silent)

	target, err := urlproc.Normalize(ctx, cfg.URL, client)
	if err != nil {
		return fmt.Errorf("normalize url: %w", err)
	}

	results, err := audit.Run(ctx, target, audit.Options{
		Categories:  cfg.Categories,
		Keywords:    cfg.Keywords,
		Concurrency: cfg.Concurrency,
	}, &audit.Env{Client: client})
	if err != nil {
		return err
	}

	rep := report.New(target, results, cfg.Keywords)
	path, err := rep.Generate(cfg.Format, cfg.Output, cfg.OutDir)
	if err != nil {
		return err
	}

	if !cfg.Silent {
		ui.PrintSummary(os.Stdout, target, results, scoring.Summarize(results))
		ui.PrintReportPath(os.Stdout, path)
	} else {
		fmt.Println(path)
	}
	return nil
}

func buildClient(cfg *config.Config) *fetcher.Client {
	fc := fetcher.DefaultConfig()
	fc.Timeout = cfg.Timeout
	if cfg.UserAgent != "" {
		fc.UserAgent = cfg.UserAgent
	}
	return fetcher.New(fc)
}
