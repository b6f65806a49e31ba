package system

import (
	"errors"
	"fmt"

	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/config"
	"github.com/praxable/praxable-cli/internal/keyring"
	"github.com/praxable/praxable-cli/internal/storage"
	"github.com/praxable/praxable-cli/internal/storage/postgres"
)

type KeyringCmd struct {
	APIKey  KeyringAPIKeyCmd  `cmd:"" name:"api-key" help:"Manage the LLM API key stored in the OS keyring."`
	Journal KeyringJournalCmd `cmd:"" help:"Manage a PostgreSQL journal connection string stored in the OS keyring."`
	Status  KeyringStatusCmd  `cmd:"" default:"1" help:"Check keyring availability and what is stored."`
}

type KeyringAPIKeyCmd struct {
	Set    KeyringAPIKeySetCmd    `cmd:"" help:"Store the API key."`
	Get    KeyringAPIKeyGetCmd    `cmd:"" help:"Show a preview of the stored key."`
	Delete KeyringAPIKeyDeleteCmd `cmd:"" help:"Remove the stored key."`
}

type KeyringAPIKeySetCmd struct {
	Key string `arg:"" help:"API key (starts with AIza)."`
}

func (cmd *KeyringAPIKeySetCmd) Run(ctx *cli.Context) error {
	if err := keyring.SetAPIKey(cmd.Key); err != nil {
		return err
	}
	ctx.Out.Success("API key stored in OS keyring")
	ctx.Out.Muted("Run 'praxable setup' to send it to the backend")
	return nil
}

type KeyringAPIKeyGetCmd struct{}

func (cmd *KeyringAPIKeyGetCmd) Run(ctx *cli.Context) error {
	key, err := keyring.GetAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring. Use 'praxable keyring api-key set' to store one")
		}
		return fmt.Errorf("failed to retrieve API key from keyring: %w", err)
	}
	ctx.Out.Println(keyring.Preview(key))
	return nil
}

type KeyringAPIKeyDeleteCmd struct{}

func (cmd *KeyringAPIKeyDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return err
	}
	ctx.Out.Success("API key deleted from OS keyring")
	return nil
}

type KeyringJournalCmd struct {
	Set    KeyringJournalSetCmd    `cmd:"" help:"Store the connection string."`
	Get    KeyringJournalGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
	Delete KeyringJournalDeleteCmd `cmd:"" help:"Remove the stored connection string."`
}

type KeyringJournalSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string."`
}

func (cmd *KeyringJournalSetCmd) Run(ctx *cli.Context) error {
	if !storage.IsPostgres(cmd.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}
	// The keyring is encrypted, so a password is allowed here.
	if err := postgres.ValidateConnString(cmd.ConnectionString, true); err != nil {
		return fmt.Errorf("invalid connection string: %w", err)
	}
	if err := keyring.SetJournalDSN(cmd.ConnectionString); err != nil {
		return err
	}
	ctx.Out.Success("Connection string stored in OS keyring")
	ctx.Out.Muted("Use it with: praxable config set journal %s", cli.JournalFromKeyring)
	return nil
}

type KeyringJournalGetCmd struct{}

func (cmd *KeyringJournalGetCmd) Run(ctx *cli.Context) error {
	dsn, err := keyring.GetJournalDSN()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'praxable keyring journal set' to store one")
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}
	ctx.Out.Println(config.RedactDSN(dsn))
	return nil
}

type KeyringJournalDeleteCmd struct{}

func (cmd *KeyringJournalDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteJournalDSN(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	ctx.Out.Success("Connection string deleted from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Out.Warn("OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.Out.Success("OS keyring is available")

	if _, err := keyring.GetAPIKey(); err == nil {
		ctx.Out.Success("API key is stored")
	} else {
		ctx.Out.Muted("ℹ No API key stored")
	}
	if _, err := keyring.GetJournalDSN(); err == nil {
		ctx.Out.Success("Journal connection string is stored")
	} else {
		ctx.Out.Muted("ℹ No journal connection string stored")
	}
	return nil
}
