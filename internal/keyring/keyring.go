package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/praxable/praxable-cli/internal/constants"
	"github.com/praxable/praxable-cli/internal/validation"
)

// journalUser is the keyring entry holding a PostgreSQL journal DSN.
const journalUser = "journal-dsn"

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// KeySource says where a resolved API key came from.
type KeySource string

const (
	KeySourceArg     KeySource = "argument"
	KeySourceEnv     KeySource = "env"
	KeySourceKeyring KeySource = "keyring"
)

func get(user string) (string, error) {
	v, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

func set(user, value string) error {
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func del(user string) error {
	if err := keyring.Delete(constants.AppName, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetAPIKey retrieves the LLM API key from the OS keyring.
// Returns ErrNotFound if no key is stored.
func GetAPIKey() (string, error) {
	return get(constants.DefaultKeyringUser)
}

// SetAPIKey validates and stores the LLM API key in the OS keyring.
func SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if err := validation.APIKey(key); err != nil {
		return err
	}
	return set(constants.DefaultKeyringUser, key)
}

// DeleteAPIKey removes the LLM API key from the OS keyring.
func DeleteAPIKey() error {
	return del(constants.DefaultKeyringUser)
}

// ResolveAPIKey picks the API key from, in order, the explicit argument, the
// environment variable env, and the keyring.
func ResolveAPIKey(arg, env string) (string, KeySource, error) {
	if k := strings.TrimSpace(arg); k != "" {
		return k, KeySourceArg, nil
	}
	if k := strings.TrimSpace(os.Getenv(env)); k != "" {
		return k, KeySourceEnv, nil
	}
	k, err := GetAPIKey()
	if err != nil {
		return "", "", err
	}
	return k, KeySourceKeyring, nil
}

// GetJournalDSN retrieves a PostgreSQL journal connection string.
func GetJournalDSN() (string, error) {
	return get(journalUser)
}

// SetJournalDSN stores a PostgreSQL journal connection string.
func SetJournalDSN(dsn string) error {
	if dsn == "" {
		return errors.New("connection string cannot be empty")
	}
	return set(journalUser, dsn)
}

// DeleteJournalDSN removes the stored journal connection string.
func DeleteJournalDSN() error {
	return del(journalUser)
}

// Preview masks a secret down to its first and last four characters.
func Preview(secret string) string {
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
