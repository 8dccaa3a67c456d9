// Command importcatalog loads services and packages from a JSON file, either
// a local path or an s3://bucket/key location.
package main

import (
	"context"
	"encoding/json"
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
	"github.com/BruksfildServices01/skin-clinic/internal/storage"
	ucCatalog "github.com/BruksfildServices01/skin-clinic/internal/usecase/catalog"
)

func main() {
	file := flag.String("file", "", "catalog JSON (path or s3://bucket/key)")
	clearFirst := flag.Bool("clear", false, "delete existing services and packages first")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *file == "" {
		logger.Error("--file is required")
		os.Exit(2)
	}

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
	source := storage.NewOpener(storage.S3Config{
		Region:    cfg.AWSRegion,
		AccessKey: cfg.AWSAccessKey,
		SecretKey: cfg.AWSSecretKey,
		Endpoint:  cfg.S3Endpoint,
	})
	active := ucCatalog.NewActiveCatalog(repo, store, time.Duration(cfg.CacheTTLSec)*time.Second)
	uc := ucCatalog.NewImportCatalog(repo, infraRepo.NewGormTransactor(db), source, active, dispatcher)

	report, err := uc.Execute(ctx, authz.System(), *file, *clearFirst)
	dispatcher.Close()
	if err != nil {
		logger.Error("import failed", slog.String("file", *file), slog.Any("err", err))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)
}
