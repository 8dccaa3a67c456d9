package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	"github.com/BruksfildServices01/skin-clinic/internal/domain"
	rules "github.com/BruksfildServices01/skin-clinic/internal/domain/catalog"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
	"github.com/BruksfildServices01/skin-clinic/internal/storage"
	"github.com/BruksfildServices01/skin-clinic/internal/validators"
)

// ======================================================
// FILE FORMAT
// ======================================================

type ImportFile struct {
	Services []ImportService `json:"services" validate:"dive"`
	Packages []ImportPackage `json:"packages" validate:"dive"`
}

type ImportService struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Price            *float64 `json:"price" validate:"omitempty,gte=0"`
	Duration         *int     `json:"duration" validate:"omitempty,gt=0"`
	SessionsRequired *int     `json:"sessions_required" validate:"omitempty,gte=1"`
	IsActive         *bool    `json:"is_active"`
}

type ImportPackage struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Products      string   `json:"products"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	TotalSessions *int     `json:"total_sessions" validate:"omitempty,gte=1"`
}

type ImportReport struct {
	BatchID         string   `json:"batch_id"`
	ServicesCreated int      `json:"services_created"`
	ServicesUpdated int      `json:"services_updated"`
	PackagesCreated int      `json:"packages_created"`
	PackagesUpdated int      `json:"packages_updated"`
	PackagesSkipped []string `json:"packages_skipped"`
	PackagesPadded  []string `json:"packages_padded"`
	PackagesTrimmed []string `json:"packages_trimmed"`
}

// ======================================================
// USE CASE
// ======================================================

type ImportCatalog struct {
	repo     rules.Repository
	tx       domain.Transactor
	source   storage.Source
	catalog  *ActiveCatalog
	audit    *audit.Dispatcher
	validate *validator.Validate
}

func NewImportCatalog(
	repo rules.Repository,
	tx domain.Transactor,
	source storage.Source,
	catalog *ActiveCatalog,
	audit *audit.Dispatcher,
) *ImportCatalog {
	return &ImportCatalog{
		repo:     repo,
		tx:       tx,
		source:   source,
		catalog:  catalog,
		audit:    audit,
		validate: validators.New(),
	}
}

// Execute loads the file at location and upserts services and packages by
// name in a single transaction. With clear set, the existing catalog is
// removed first, inside the same transaction.
func (uc *ImportCatalog) Execute(ctx context.Context, actor authz.Actor, location string, clear bool) (*ImportReport, error) {
	if err := authz.Require(actor, authz.PermCatalogWrite); err != nil {
		return nil, err
	}

	rc, err := uc.source.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	file, err := uc.decode(rc)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{BatchID: uuid.NewString()}
	log := slog.With(slog.String("batch_id", report.BatchID))

	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if clear {
			log.WarnContext(ctx, "clearing existing services and packages")
			if err := uc.repo.ClearCatalog(ctx); err != nil {
				return err
			}
		}

		imported, err := uc.importServices(ctx, file.Services, report)
		if err != nil {
			return err
		}
		return uc.importPackages(ctx, log, file.Packages, imported, report)
	})
	if err != nil {
		return nil, err
	}

	uc.catalog.Invalidate(ctx)
	uc.audit.Dispatch(audit.Event{
		UserID:   actor.UserID,
		Action:   "catalog_imported",
		Entity:   "catalog",
		Metadata: report,
	})

	return report, nil
}

func (uc *ImportCatalog) decode(r io.Reader) (*ImportFile, error) {
	var file ImportFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, httperr.ErrBusinessMsg("invalid_import_file", fmt.Sprintf("Cannot parse import file: %v", err))
	}
	if err := uc.validate.Struct(file); err != nil {
		return nil, httperr.ErrBusinessMsg("invalid_import_file", err.Error())
	}
	return &file, nil
}

func (uc *ImportCatalog) importServices(ctx context.Context, rows []ImportService, report *ImportReport) ([]models.Service, error) {
	var out []models.Service

	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}

		s, err := uc.repo.FindServiceByName(ctx, name)
		created := httperr.IsNotFound(err)
		if err != nil && !created {
			return nil, err
		}
		if created {
			s = &models.Service{Name: name}
		}

		s.Description = row.Description
		s.Price = rules.Round2(valueOr(row.Price, 0))
		s.Duration = valueOr(row.Duration, rules.DefaultServiceDuration)
		s.SessionsRequired = valueOr(row.SessionsRequired, 1)
		s.IsActive = valueOr(row.IsActive, true)

		if err := uc.repo.SaveService(ctx, s); err != nil {
			return nil, err
		}
		if created {
			report.ServicesCreated++
		} else {
			report.ServicesUpdated++
		}
		out = append(out, *s)
	}
	return out, nil
}

func (uc *ImportCatalog) importPackages(
	ctx context.Context,
	log *slog.Logger,
	rows []ImportPackage,
	services []models.Service,
	report *ImportReport,
) error {

	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}

		price, ok := rules.PackagePrice(row.Price, row.Description)
		if !ok {
			log.WarnContext(ctx, "package has no price, skipping", slog.String("package", name))
			report.PackagesSkipped = append(report.PackagesSkipped, name)
			continue
		}

		description := row.Description
		if row.Products != "" {
			if description != "" {
				description += "\n\n"
			}
			description += "Products included: " + row.Products
		}

		p, err := uc.repo.FindPackageByName(ctx, name)
		created := httperr.IsNotFound(err)
		if err != nil && !created {
			return err
		}
		if created {
			p = &models.Package{Name: name}
		}

		original := rules.Round2(price)
		p.OriginalPrice = &original
		p.Price = rules.ApplyDiscount(original, rules.ImportDiscountPercent)
		p.Description = description
		p.TotalSessions = valueOr(row.TotalSessions, rules.DefaultPackageSessions)
		p.IsActive = true

		found := rules.MatchServices(description, services)
		linked := rules.FitPackageServices(found, services)
		switch {
		case len(found) < rules.MinPackageServices:
			report.PackagesPadded = append(report.PackagesPadded, name)
		case len(found) > rules.MaxPackageServices:
			report.PackagesTrimmed = append(report.PackagesTrimmed, name)
		}
		if err := rules.ValidatePackageServices(serviceIDs(linked)); err != nil {
			return httperr.ErrBusinessMsg("invalid_import_file",
				fmt.Sprintf("Package %q: not enough services in the file to link %d", name, rules.MinPackageServices))
		}

		if err := uc.repo.SavePackage(ctx, p, linked); err != nil {
			return err
		}
		if created {
			report.PackagesCreated++
		} else {
			report.PackagesUpdated++
		}
	}
	return nil
}

func serviceIDs(services []models.Service) []uint {
	ids := make([]uint, 0, len(services))
	for _, s := range services {
		ids = append(ids, s.ID)
	}
	return ids
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
