package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/ueser-furina/noote-website/internal/ai"
	"github.com/ueser-furina/noote-website/internal/api"
	"github.com/ueser-furina/noote-website/internal/config"
	"github.com/ueser-furina/noote-website/internal/migrations"
	"github.com/ueser-furina/noote-website/internal/repository"
	"github.com/ueser-furina/noote-website/internal/usecase/auth"
	"github.com/ueser-furina/noote-website/internal/usecase/collections"
	"github.com/ueser-furina/noote-website/internal/usecase/integration"
	"github.com/ueser-furina/noote-website/internal/usecase/notes"
	"github.com/ueser-furina/noote-website/pkg/database"
	"github.com/ueser-furina/noote-website/pkg/httpx"
	"github.com/ueser-furina/noote-website/pkg/logger/slogx"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run app: %v", err)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Parse()
	if err != nil {
		return fmt.Errorf("parse cfg: %v", err)
	}

	if err := slogx.InitGlobal(os.Stdout, cfg.App.LogLevel, cfg.App.Pretty); err != nil {
		return fmt.Errorf("init logger: %v", err)
	}

	pool, err := database.NewPGX(ctx, database.NewOptions(
		net.JoinHostPort(cfg.Database.Host, cfg.Database.Port),
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		database.WithRetry(true),
		database.WithRetryAttempts(5),
		database.WithLogger(slogx.Default()),
	))
	if err != nil {
		return fmt.Errorf("connect to database: %v", err)
	}
	defer pool.Close()

	if err := migrations.Up(ctx, pool); err != nil {
		return fmt.Errorf("migrate database: %v", err)
	}

	repo := repository.New(database.NewDatabase(pool))
	tx := database.NewDatabase(pool)

	authUsecase, err := auth.New(auth.NewOptions(
		repo,
		cfg.Auth.Secret,
		auth.WithTokenTTL(cfg.Auth.TokenTTL),
	))
	if err != nil {
		return fmt.Errorf("init auth usecase: %v", err)
	}

	notesUsecase, err := notes.New(notes.NewOptions(repo, tx))
	if err != nil {
		return fmt.Errorf("init notes usecase: %v", err)
	}

	collectionsUsecase, err := collections.New(collections.NewOptions(repo, tx))
	if err != nil {
		return fmt.Errorf("init collections usecase: %v", err)
	}

	aiCfg := ai.Config{
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	}
	integrationUsecase, err := integration.New(integration.NewOptions(
		repo,
		func(apiKey string) (integration.Generator, error) {
			return ai.New(aiCfg, apiKey)
		},
	))
	if err != nil {
		return fmt.Errorf("init integration usecase: %v", err)
	}

	handler, err := api.New(api.NewOptions(
		authUsecase,
		notesUsecase,
		collectionsUsecase,
		integrationUsecase,
	))
	if err != nil {
		return fmt.Errorf("init api handler: %v", err)
	}

	srv, err := httpx.New(httpx.NewOptions(
		cfg.HTTP.Addr,
		handler.Router(),
		httpx.WithLogger(slogx.Default()),
	))
	if err != nil {
		return fmt.Errorf("init http server: %v", err)
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return srv.Run(ctx) })

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("wait app stop: %v", err)
	}

	return nil
}
