package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ERTG-BOTS/AchieverBot/internal/domain/repository"
)

// Stores owns the primary (staff, schedule) and secondary (ledgers, catalog) storages.
type Stores struct {
	Primary   *Storage
	Secondary *Storage
}

// StoresConfig describes how to reach both databases.
type StoresConfig struct {
	PrimaryDSN   string
	SecondaryDSN string
	Migrate      bool
}

// NewStores connects both storages, applying migrations first when requested.
func NewStores(ctx context.Context, cfg StoresConfig, logger *slog.Logger) (*Stores, error) {
	if cfg.Migrate {
		if err := Migrate(ctx, cfg.PrimaryDSN, PrimaryMigrations, logger); err != nil {
			return nil, err
		}
		if err := Migrate(ctx, cfg.SecondaryDSN, SecondaryMigrations, logger); err != nil {
			return nil, err
		}
	}

	primary, err := New(ctx, "primary", cfg.PrimaryDSN, logger)
	if err != nil {
		return nil, err
	}
	secondary, err := New(ctx, "secondary", cfg.SecondaryDSN, logger)
	if err != nil {
		primary.Close()
		return nil, err
	}
	return &Stores{Primary: primary, Secondary: secondary}, nil
}

// Repositories exposes both storages through the domain ports.
func (s *Stores) Repositories() repository.Stores {
	return repository.Stores{Primary: s.Primary, Secondary: s.Secondary}
}

// Close releases both pools.
func (s *Stores) Close() {
	if s.Primary != nil {
		s.Primary.Close()
	}
	if s.Secondary != nil {
		s.Secondary.Close()
	}
}

// HealthCheck pings both databases.
func (s *Stores) HealthCheck(ctx context.Context) error {
	var errs []error
	for _, st := range []*Storage{s.Primary, s.Secondary} {
		if st == nil {
			continue
		}
		if err := st.HealthCheck(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
