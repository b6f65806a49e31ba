package system

import (
	"fmt"

	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/storage"
)

// MigrateCmd creates or upgrades the approval journal schema.
type MigrateCmd struct {
	Status bool `help:"Only report the schema version."`
}

type migrateView struct {
	Location string `json:"location"`
	Current  int    `json:"current_version"`
	Latest   int    `json:"latest_version"`
	Pending  int    `json:"pending"`
}

func (cmd *MigrateCmd) Run(ctx *cli.Context) error {
	target, err := ctx.JournalTarget()
	if err != nil {
		return err
	}
	j := storage.New(target, "migrate")
	defer j.Close()

	if cmd.Status {
		if err := j.Load(); err != nil {
			if storage.IsNotInitialized(err) {
				ctx.Out.Muted("No journal at %s yet", j.Location())
				return nil
			}
			return err
		}
	} else {
		logger.Info("Migrating approval journal", "location", j.Location())
		if err := j.Init(); err != nil {
			return fmt.Errorf("failed to migrate journal: %w", err)
		}
	}

	status, err := j.SchemaStatus()
	if err != nil {
		return err
	}
	view := migrateView{
		Location: j.Location(),
		Current:  status.Current,
		Latest:   status.Latest,
		Pending:  len(status.Pending),
	}
	return ctx.Out.Emit(ctx.Ctx, view, func() error {
		if status.UpToDate() {
			ctx.Out.Success("Journal schema is up to date (version %d)", status.Current)
		} else {
			ctx.Out.Warn("Journal schema at version %d, latest is %d", status.Current, status.Latest)
		}
		ctx.Out.Muted("%s", view.Location)
		return nil
	})
}
