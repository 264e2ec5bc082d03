// Package keyring keeps the PostgreSQL connection string out of config
// files by storing it in the OS credential store.
package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/daypad/internal/constants"
)

var (
	ErrNotFound           = errors.New("credentials not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	ErrEmptyConnString    = errors.New("connection string cannot be empty")
)

var lookupEnv = os.LookupEnv

// Vault is one service/user slot in the OS keyring.
type Vault struct {
	Service string
	User    string
}

// Default returns the slot daypad stores its database connection in.
func Default() Vault {
	return Vault{Service: constants.AppName, User: constants.DefaultKeyringUser}
}

func (v Vault) Get() (string, error) {
	secret, err := keyring.Get(v.Service, v.User)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return "", ErrNotFound
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

func (v Vault) Set(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return ErrEmptyConnString
	}
	if err := keyring.Set(v.Service, v.User, connStr); err != nil {
		return fmt.Errorf("store credentials in keyring: %w", err)
	}
	return nil
}

func (v Vault) Delete() error {
	err := keyring.Delete(v.Service, v.User)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	case err != nil:
		return fmt.Errorf("delete credentials from keyring: %w", err)
	}
	return nil
}

// Status reports whether the keyring answers at all and whether the slot
// holds a value.
type Status struct {
	Available bool
	Stored    bool
}

func (v Vault) Status() Status {
	_, err := keyring.Get(v.Service, v.User)
	switch {
	case err == nil:
		return Status{Available: true, Stored: true}
	case errors.Is(err, keyring.ErrNotFound):
		return Status{Available: true}
	default:
		return Status{}
	}
}

// Source names where a resolved connection string came from.
type Source string

const (
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
)

// Resolve returns the PostgreSQL connection string, preferring the
// DAYPAD_DB_CONNECTION environment variable over the keyring.
func (v Vault) Resolve() (string, Source, error) {
	if s, ok := lookupEnv(constants.EnvDBConnection); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s), SourceEnv, nil
	}
	s, err := v.Get()
	if err != nil {
		return "", "", err
	}
	return s, SourceKeyring, nil
}
