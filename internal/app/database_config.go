package app

import (
	"strings"

	"github.com/hardik88t/projman/internal/database"
)

// StoreConfig converts DatabaseConfig into the database package representation.
func (c DatabaseConfig) StoreConfig() database.Config {
	cfg := database.Config{
		Driver: strings.TrimSpace(c.Driver),
		Path:   strings.TrimSpace(c.Path),
		DSN:    strings.TrimSpace(c.DSN),
	}

	switch strings.ToLower(cfg.Driver) {
	case "postgres", "postgresql":
		cfg.Host = c.Postgres.Host
		cfg.Port = c.Postgres.Port
		cfg.Name = c.Postgres.Database
		cfg.User = c.Postgres.Username
		cfg.Password = c.Postgres.Password
	case "mysql", "mariadb":
		cfg.Host = c.MySQL.Host
		cfg.Port = c.MySQL.Port
		cfg.Name = c.MySQL.Database
		cfg.User = c.MySQL.Username
		cfg.Password = c.MySQL.Password
	}

	return cfg
}
