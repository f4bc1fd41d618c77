package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitdash/internal/keyring"
	"github.com/julianstephens/habitdash/internal/logger"
	"github.com/julianstephens/habitdash/internal/storage/postgres"
	"github.com/julianstephens/habitdash/internal/storage/sqlite"
)

// LocationKeyring selects the PostgreSQL connection string held in
// HABITDASH_DB_CONNECTION or the OS keyring
const LocationKeyring = "keyring"

// IsPostgres reports whether location is a PostgreSQL URL rather than a file path
func IsPostgres(location string) bool {
	return strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://")
}

// Open returns the provider for location without connecting to it. Explicit
// PostgreSQL URLs must not embed a password; strings resolved from the
// environment or keyring may, since they never touch a config file.
func Open(location string) (Provider, error) {
	switch {
	case location == LocationKeyring:
		connStr, source, err := keyring.ResolveConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("no preferences connection string found, run 'habitdash keyring set' first")
			}
			return nil, err
		}
		if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, fmt.Errorf("connection string from %s: %w", source, err)
		}
		logger.Debug("Using PostgreSQL preferences", "source", source)
		return postgres.New(connStr), nil
	case IsPostgres(location):
		if _, err := postgres.ValidateConnString(location); err != nil {
			return nil, err
		}
		return postgres.New(location), nil
	default:
		return sqlite.NewStore(location), nil
	}
}
