// Command applydiscounts reprices every package at a percentage off its
// original price.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	"github.com/BruksfildServices01/skin-clinic/internal/cache"
	"github.com/BruksfildServices01/skin-clinic/internal/config"
	dbpkg "github.com/BruksfildServices01/skin-clinic/internal/db"
	infraRepo "github.com/BruksfildServices01/skin-clinic/internal/infra/repository"
	ucCatalog "github.com/BruksfildServices01/skin-clinic/internal/usecase/catalog"
)

func main() {
	percent := flag.Float64("discount", 20, "discount percentage (0-100)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logger.Error("database connection failed", slog.Any("err", err))
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := cache.Open(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warn("redis unavailable, cache not invalidated", slog.Any("err", err))
		store = cache.NewNoop()
	}

	dispatcher := audit.NewDispatcher(audit.New(db))
	repo := infraRepo.NewCatalogGormRepository(db)
	active := ucCatalog.NewActiveCatalog(repo, store, time.Duration(cfg.CacheTTLSec)*time.Second)
	uc := ucCatalog.NewApplyPackageDiscounts(repo, infraRepo.NewGormTransactor(db), active, dispatcher)

	n, err := uc.Execute(ctx, authz.System(), *percent)
	dispatcher.Close()
	if err != nil {
		logger.Error("discount failed", slog.Any("err", err))
		os.Exit(1)
	}
	logger.Info("packages repriced", slog.Int("updated", n), slog.Float64("discount", *percent))
}
