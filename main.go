package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/juruen/digitpad/classifier"
	"github.com/juruen/digitpad/config"
	"github.com/juruen/digitpad/downsample"
	"github.com/juruen/digitpad/log"
	"github.com/juruen/digitpad/session"
	"github.com/juruen/digitpad/shell"
)

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

func sessionOptions(cfg *config.Config) (session.Options, error) {
	filter, err := downsample.ParseFilter(cfg.Downsample.Filter)
	if err != nil {
		return session.Options{}, err
	}

	return session.Options{
		Width:        cfg.Surface.Width,
		Height:       cfg.Surface.Height,
		StrokeWidth:  cfg.Surface.StrokeWidth,
		Filter:       filter,
		Cooldown:     cfg.Submission.CooldownSeconds,
		Tick:         cfg.Submission.Tick,
		DisplayDelay: cfg.Submission.DisplayDelay,
	}, nil
}

func newClassifier(cfg *config.Config) (*classifier.Client, error) {
	return classifier.NewClient(cfg.Classifier.URL,
		classifier.WithHTTPClient(&http.Client{Timeout: cfg.Classifier.Timeout}),
		classifier.WithTokenSecret(cfg.Classifier.TokenSecret),
	)
}

func main() {
	serverMode := flag.Bool("server", false, "run the HTTP API instead of the shell")
	port := flag.String("port", "", "HTTP port for -server (overrides the config)")
	configPath := flag.String("config", "", "config file")
	flag.Parse()

	log.InitLog()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Error.Fatalln(err)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	opts, err := sessionOptions(cfg)
	if err != nil {
		log.Error.Fatalln(err)
	}
	client, err := newClassifier(cfg)
	if err != nil {
		log.Error.Fatalln(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := session.New(opts, client)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sess.Run(gctx)
	})

	if *serverMode {
		g.Go(func() error {
			return runServerMode(gctx, sess, cfg.Server.Port)
		})
	} else {
		g.Go(func() error {
			defer stop()
			return shell.RunShell(&shell.ShellCtxt{Session: sess}, flag.Args())
		})
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Error.Fatalln(err)
	}
}
