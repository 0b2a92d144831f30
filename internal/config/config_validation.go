package config

import "fmt"

func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is empty", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.Driver != DriverPostgres && cfg.Storage.DB.Driver != DriverSQLite {
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty dsn", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Sessions.TTL <= 0 {
		return fmt.Errorf("%w: session ttl must be positive", ErrInvalidStorageConfigs)
	}

	if cfg.Listing.PerPage <= 0 {
		return fmt.Errorf("%w: per page must be positive", ErrInvalidListingConfigs)
	}
	if cfg.Listing.Outline != OutlineBrief && cfg.Listing.Outline != OutlineLong {
		return fmt.Errorf("%w: unknown outline %q", ErrInvalidListingConfigs, cfg.Listing.Outline)
	}

	if cfg.Workers.SessionGCInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *StructuredConfig) validateClient() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
