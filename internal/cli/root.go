// Package cli holds the state shared by every praxable command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/praxable/praxable-cli/internal/api"
	"github.com/praxable/praxable-cli/internal/config"
	"github.com/praxable/praxable-cli/internal/keyring"
	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/output"
	"github.com/praxable/praxable-cli/internal/storage"
	"github.com/praxable/praxable-cli/internal/storage/postgres"
	"github.com/praxable/praxable-cli/internal/utils"
	"github.com/praxable/praxable-cli/internal/values"
)

// JournalFromKeyring as the journal setting reads the DSN from the OS keyring.
const JournalFromKeyring = "keyring"

// Context is passed to every command's Run method.
type Context struct {
	// Ctx is cancelled on SIGINT/SIGTERM.
	Ctx     context.Context
	Config  *config.Config
	Backend api.Backend
	Out     *output.Printer
	Now     func() time.Time
	// Source tags journal runs, "cli" or "tui".
	Source string

	journal storage.Provider
	loc     *time.Location
}

// Location resolves the configured timezone once.
func (c *Context) Location() *time.Location {
	if c.loc != nil {
		return c.loc
	}
	loc, err := c.Config.Location()
	if err != nil {
		logger.Warn("Falling back to local timezone", "timezone", c.Config.Timezone, "error", err)
		loc = time.Local
	}
	c.loc = loc
	return loc
}

// Today is the current date in the configured timezone.
func (c *Context) Today() string {
	return utils.Today(c.now().In(c.Location()))
}

func (c *Context) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Clock returns a now function pinned to the configured timezone.
func (c *Context) Clock() func() time.Time {
	return func() time.Time { return c.now().In(c.Location()) }
}

// JournalTarget resolves where the approval journal lives.
func (c *Context) JournalTarget() (string, error) {
	target := strings.TrimSpace(c.Config.Journal)
	if target == JournalFromKeyring {
		dsn, err := keyring.GetJournalDSN()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return "", errors.New("journal is set to keyring but no connection string is stored; use 'praxable keyring journal set'")
			}
			return "", err
		}
		if err := postgres.ValidateConnString(dsn, true); err != nil {
			return "", err
		}
		return dsn, nil
	}
	if storage.IsPostgres(target) {
		if err := postgres.ValidateConnString(target, false); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return "", fmt.Errorf("%w; store it with 'praxable keyring journal set' and set journal to %q", err, JournalFromKeyring)
			}
			return "", err
		}
	}
	return target, nil
}

// Journal opens the approval journal on first use, migrating it if needed.
func (c *Context) Journal() (storage.Provider, error) {
	if c.journal != nil {
		return c.journal, nil
	}
	target, err := c.JournalTarget()
	if err != nil {
		return nil, err
	}
	source := c.Source
	if source == "" {
		source = "cli"
	}
	j, err := storage.Open(target, source)
	if err != nil {
		return nil, fmt.Errorf("failed to open approval journal: %w", err)
	}
	c.journal = j
	return j, nil
}

// Close releases the journal if it was opened.
func (c *Context) Close() error {
	if c.journal == nil {
		return nil
	}
	err := c.journal.Close()
	c.journal = nil
	return err
}

// Selection builds a value selection from names given on the command line,
// keeping only names the backend knows. Unknown names are a validation error.
func (c *Context) Selection(names []string) (*values.Selector, error) {
	known, err := c.Backend.ListValues(c.Ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list values: %w", err)
	}
	return values.FromNames(known, names)
}
