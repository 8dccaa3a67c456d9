// Command createadmin seeds an admin account.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/BruksfildServices01/skin-clinic/internal/auth"
	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	"github.com/BruksfildServices01/skin-clinic/internal/config"
	dbpkg "github.com/BruksfildServices01/skin-clinic/internal/db"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

func main() {
	username := flag.String("username", "", "login name")
	password := flag.String("password", "", "password (min 8 characters)")
	email := flag.String("email", "", "contact email")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if *username == "" || len(*password) < 8 {
		logger.Error("--username and a --password of at least 8 characters are required")
		os.Exit(2)
	}

	cfg := config.Load()
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logger.Error("database connection failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := dbpkg.Migrate(db); err != nil {
		logger.Error("migration failed", slog.Any("err", err))
		os.Exit(1)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		logger.Error("hash failed", slog.Any("err", err))
		os.Exit(1)
	}

	u := models.User{
		Username:     *username,
		Email:        *email,
		PasswordHash: hash,
		Role:         string(authz.RoleAdmin),
		Active:       true,
	}
	if err := db.Create(&u).Error; err != nil {
		logger.Error("create user failed", slog.String("username", *username), slog.Any("err", err))
		os.Exit(1)
	}
	logger.Info("admin created", slog.Uint64("id", uint64(u.ID)), slog.String("username", u.Username))
}
