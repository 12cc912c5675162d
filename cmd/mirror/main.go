package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/user/salon-service/internal/adapter/chromedp_renderer"
	"github.com/user/salon-service/internal/adapter/http_fetcher"
	"github.com/user/salon-service/internal/mirror"
	"github.com/user/salon-service/internal/proxy"
	"github.com/user/salon-service/pkg/config"
	"github.com/user/salon-service/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewZap(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rotation, err := proxy.NewManager(cfg.ProxyURLs(), cfg.UserAgents())
	if err != nil {
		log.Error("invalid proxy configuration", zap.Error(err))
		return err
	}
	client := http_fetcher.NewFetcher(cfg.RequestTimeout(), rotation)

	var fetcher mirror.Fetcher = client
	if cfg.MirrorRender {
		renderer := chromedp_renderer.NewRenderer(cfg.RenderTimeout(), rotation.GetUserAgent(), log)
		defer renderer.Close()
		fetcher = renderer
	}

	m, err := mirror.New(mirror.Options{
		TargetURL:        cfg.MirrorTargetURL,
		OutputDir:        cfg.MirrorOutputDir,
		IndexFile:        cfg.MirrorIndexFile,
		MaxConcurrency:   cfg.MirrorMaxConcurrency,
		DedupByURL:       cfg.MirrorDedupByURL,
		RewriteOnSuccess: cfg.MirrorRewriteOnSuccess,
		StrictOrigin:     cfg.MirrorStrictOrigin,
	}, fetcher, client, log)
	if err != nil {
		log.Error("invalid mirror configuration", zap.Error(err))
		return err
	}

	log.Info("Mirroring site",
		zap.String("target", cfg.MirrorTargetURL),
		zap.String("output", cfg.MirrorOutputDir),
		zap.Bool("render", cfg.MirrorRender),
	)
	_, err = m.Run(ctx)
	return err
}
