package system

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/config"
	"github.com/praxable/praxable-cli/internal/keyring"
	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/validation"
)

// SetupCmd sends the LLM API key to the backend.
type SetupCmd struct {
	Key      string `arg:"" optional:"" help:"API key; read from PRAXABLE_LLM_API_KEY, the keyring or a prompt when omitted."`
	Remember bool   `help:"Also store the key in the OS keyring."`
	Status   bool   `help:"Only show whether the backend has a key."`
}

func (cmd *SetupCmd) resolveKey(ctx *cli.Context) (string, keyring.KeySource, error) {
	key, source, err := keyring.ResolveAPIKey(cmd.Key, config.EnvLLMAPIKey)
	if err == nil {
		return key, source, nil
	}
	if !errors.Is(err, keyring.ErrNotFound) && !errors.Is(err, keyring.ErrKeyringUnavailable) {
		return "", "", err
	}
	if !cli.Interactive() {
		return "", "", errors.New("no API key given; pass it as an argument or set " + config.EnvLLMAPIKey)
	}

	err = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("LLM API key").
			Description("Used by the backend to generate plans.").
			EchoMode(huh.EchoModePassword).
			Validate(validation.APIKey).
			Value(&key),
	)).Run()
	if err != nil {
		return "", "", err
	}
	return key, "prompt", nil
}

func (cmd *SetupCmd) Run(ctx *cli.Context) error {
	status, err := ctx.Backend.ConfigStatus(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to read backend configuration: %w", err)
	}
	if status.IsConfigured {
		preview := ""
		if status.KeyPreview != nil {
			preview = " (" + *status.KeyPreview + ")"
		}
		ctx.Out.Success("Backend already has an API key%s", preview)
	} else {
		ctx.Out.Warn("Backend has no API key configured")
	}
	if cmd.Status {
		return nil
	}

	key, source, err := cmd.resolveKey(ctx)
	if err != nil {
		return err
	}
	if err := validation.APIKey(key); err != nil {
		return err
	}

	if err := ctx.Backend.SetAPIKey(ctx.Ctx, key); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	logger.Info("API key sent to backend", "source", source)
	ctx.Out.Success("API key saved (%s)", keyring.Preview(key))

	if cmd.Remember && source != keyring.KeySourceKeyring {
		if err := keyring.SetAPIKey(key); err != nil {
			ctx.Out.Warn("Could not store the key in the keyring: %v", err)
		} else {
			ctx.Out.Muted("Key stored in OS keyring")
		}
	}
	return nil
}
