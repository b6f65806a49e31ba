package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/praxable/praxable-cli/internal/api"
	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/cli/activities"
	"github.com/praxable/praxable-cli/internal/cli/insights"
	"github.com/praxable/praxable-cli/internal/cli/plans"
	"github.com/praxable/praxable-cli/internal/cli/system"
	"github.com/praxable/praxable-cli/internal/cli/tasks"
	"github.com/praxable/praxable-cli/internal/cli/today"
	"github.com/praxable/praxable-cli/internal/cli/values"
	"github.com/praxable/praxable-cli/internal/config"
	"github.com/praxable/praxable-cli/internal/constants"
	apperrors "github.com/praxable/praxable-cli/internal/errors"
	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/output"
)

var CLI struct {
	Version   kong.VersionFlag
	ConfigDir string `help:"Directory holding config.yaml, logs and the default journal." type:"path" default:"${config_dir}" env:"PRAXABLE_CONFIG_DIR"`
	BaseURL   string `help:"Praxable backend URL." name:"base-url"`
	Timezone  string `help:"IANA timezone for dates and times."`
	Journal   string `help:"Approval journal: a sqlite path, a PostgreSQL DSN without password, or 'keyring'."`
	Debug     bool   `help:"Log debug output to stderr."`
	JSON      bool   `help:"Print JSON instead of text." name:"json"`
	JQ        string `help:"Filter JSON output with a jq expression." name:"jq"`

	Tui       system.TuiCmd              `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Today     today.TodayCmd             `cmd:"" help:"Show today's tasks, events and free time."`
	Dashboard today.DashboardCmd         `cmd:"" help:"Greeting, task count and next event at a glance."`
	Values    values.ValuesCmd           `cmd:"" help:"Manage core values."`
	Recommend activities.RecommendCmd    `cmd:"" help:"Recommend free-time activities for selected values."`
	Activity  activities.ActivityListCmd `cmd:"" name:"activities" help:"List known activities."`
	Plan      plans.PlanCmd              `cmd:"" help:"Generate and approve a day plan."`
	Approvals plans.ApprovalsCmd         `cmd:"" help:"Show recorded plan approval runs."`
	Task      tasks.TaskCmd              `cmd:"" help:"Log, list, complete and edit tasks."`
	Predict   insights.PredictCmd        `cmd:"" help:"Predict fulfillment for a task."`
	Analytics insights.AnalyticsCmd      `cmd:"" help:"Show value alignment analytics."`
	Remind    system.RemindCmd           `cmd:"" help:"Notify shortly before today's planned tasks."`
	Setup     system.SetupCmd            `cmd:"" help:"Configure the backend's LLM API key."`
	Keyring   system.KeyringCmd          `cmd:"" help:"Manage secrets in the OS keyring."`
	Config    system.ConfigCmd           `cmd:"" help:"Show or change settings."`
	Migrate   system.MigrateCmd          `cmd:"" help:"Create or upgrade the approval journal."`
	Doctor    system.DoctorCmd           `cmd:"" help:"Run health checks and diagnostics."`
}

func overrides() config.FlagOverrides {
	var o config.FlagOverrides
	if CLI.BaseURL != "" {
		o.BaseURL = &CLI.BaseURL
	}
	if CLI.Timezone != "" {
		o.Timezone = &CLI.Timezone
	}
	if CLI.Journal != "" {
		o.Journal = &CLI.Journal
	}
	if CLI.Debug {
		o.Debug = &CLI.Debug
	}
	return o
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Plan your day around what matters to you."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"config_dir": constants.DefaultConfigDir,
		},
	)

	configDir := config.ExpandHome(CLI.ConfigDir)
	cfg, err := config.Load(configDir, overrides())
	if err != nil {
		apperrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: configDir}); err != nil {
		apperrors.Fatal(err)
	}
	defer logger.Close()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	appCtx := &cli.Context{
		Ctx:     runCtx,
		Config:  cfg,
		Backend: api.New(api.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout}),
		Out:     output.New(os.Stdout, output.Options{JSON: CLI.JSON, JQ: CLI.JQ}),
		Source:  "cli",
	}

	err = ctx.Run(appCtx)
	_ = appCtx.Close()
	stop()
	if err != nil {
		apperrors.Fatal(err)
	}
}
