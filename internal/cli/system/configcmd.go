package system

import (
	"fmt"

	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/config"
	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/storage"
	"github.com/praxable/praxable-cli/internal/storage/postgres"
)

type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" default:"1" help:"Show the resolved configuration and where each value came from."`
	Get  ConfigGetCmd  `cmd:"" help:"Print one setting."`
	Set  ConfigSetCmd  `cmd:"" help:"Change a setting in the config file."`
	Path ConfigPathCmd `cmd:"" help:"Print the config file path."`
}

type configEntry struct {
	Key    string        `json:"key"`
	Value  string        `json:"value"`
	Source config.Source `json:"source"`
}

type ConfigShowCmd struct{}

func (cmd *ConfigShowCmd) Run(ctx *cli.Context) error {
	entries := make([]configEntry, 0, len(config.Keys))
	for _, k := range config.Keys {
		v, err := ctx.Config.Get(k)
		if err != nil {
			return err
		}
		entries = append(entries, configEntry{Key: k, Value: v, Source: ctx.Config.Sources[k]})
	}
	return ctx.Out.Emit(ctx.Ctx, entries, func() error {
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{e.Key, e.Value, string(e.Source)})
		}
		ctx.Out.Table([]string{"Key", "Value", "Source"}, rows)
		return nil
	})
}

type ConfigGetCmd struct {
	Key string `arg:"" help:"Setting name."`
}

func (cmd *ConfigGetCmd) Run(ctx *cli.Context) error {
	v, err := ctx.Config.Get(cmd.Key)
	if err != nil {
		return err
	}
	ctx.Out.Println(v)
	return nil
}

type ConfigSetCmd struct {
	Key   string `arg:"" help:"Setting name."`
	Value string `arg:"" help:"New value."`
}

// Run applies the change on top of the file layer only, so environment and
// flag overrides of this invocation are not persisted.
func (cmd *ConfigSetCmd) Run(ctx *cli.Context) error {
	path := config.Path(ctx.Config.ConfigDir)
	fileCfg := config.Default(ctx.Config.ConfigDir)
	if err := config.LoadFromFile(fileCfg, path); err != nil {
		return err
	}
	if cmd.Key == "journal" && storage.IsPostgres(cmd.Value) {
		if err := postgres.ValidateConnString(cmd.Value, false); err != nil {
			return fmt.Errorf("%w; store it with 'praxable keyring journal set' and set journal to %q", err, cli.JournalFromKeyring)
		}
	}
	if err := fileCfg.Set(cmd.Key, cmd.Value); err != nil {
		return err
	}
	if err := fileCfg.Validate(); err != nil {
		return err
	}
	if err := fileCfg.Save(path); err != nil {
		return err
	}
	logger.Info("Config updated", "key", cmd.Key)
	ctx.Out.Success("Set %s = %s", cmd.Key, cmd.Value)
	return nil
}

type ConfigPathCmd struct{}

func (cmd *ConfigPathCmd) Run(ctx *cli.Context) error {
	ctx.Out.Println(config.Path(ctx.Config.ConfigDir))
	return nil
}
