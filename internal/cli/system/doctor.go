package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/keyring"
	"github.com/praxable/praxable-cli/internal/storage"
)

type DoctorCmd struct{}

// checkResult is one line of the doctor report. Warnings never fail the run.
type checkResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

const (
	statusOK      = "ok"
	statusFail    = "fail"
	statusWarn    = "warning"
	statusSkipped = "skipped"
)

// errWarning wraps a check error that should be reported but not fail.
type errWarning struct{ msg string }

func (e errWarning) Error() string { return e.msg }

func warning(format string, args ...any) error {
	return errWarning{msg: fmt.Sprintf(format, args...)}
}

var nowFunc = time.Now

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	checks := []struct {
		name string
		fn   func(*cli.Context) error
	}{
		{"Configuration", checkConfig},
		{"Backend reachable", checkBackend},
		{"Backend API key", checkBackendKey},
		{"OS keyring", checkKeyring},
		{"Approval journal", checkJournal},
		{"Clock/timezone", checkClockTimezone},
	}

	results := make([]checkResult, 0, len(checks))
	hasError := false
	backendDown := false
	for _, c := range checks {
		if backendDown && c.name == "Backend API key" {
			results = append(results, checkResult{Name: c.name, Status: statusSkipped, Message: "backend not reachable"})
			continue
		}
		res := checkResult{Name: c.name, Status: statusOK}
		if err := c.fn(ctx); err != nil {
			var w errWarning
			if errors.As(err, &w) {
				res.Status = statusWarn
			} else {
				res.Status = statusFail
				hasError = true
				if c.name == "Backend reachable" {
					backendDown = true
				}
			}
			res.Message = err.Error()
		}
		results = append(results, res)
	}

	err := ctx.Out.Emit(ctx.Ctx, results, func() error {
		ctx.Out.Println("Running diagnostics...")
		ctx.Out.Println()
		for _, r := range results {
			switch r.Status {
			case statusOK:
				ctx.Out.Printf("✓ %s: OK\n", r.Name)
			case statusWarn:
				ctx.Out.Printf("⚠ %s: WARNING\n", r.Name)
				ctx.Out.Printf("   %s\n", r.Message)
			case statusSkipped:
				ctx.Out.Printf("⊘ %s: SKIPPED (%s)\n", r.Name, r.Message)
			default:
				ctx.Out.Printf("❌ %s: FAIL\n", r.Name)
				ctx.Out.Printf("   Error: %s\n", r.Message)
			}
		}
		ctx.Out.Println()
		if hasError {
			ctx.Out.Println("Diagnostics completed with errors.")
		} else {
			ctx.Out.Println("All diagnostics passed!")
		}
		return nil
	})
	if err != nil {
		return err
	}
	if hasError {
		return errors.New("one or more health checks failed")
	}
	return nil
}

func checkConfig(ctx *cli.Context) error {
	return ctx.Config.Validate()
}

func checkBackend(ctx *cli.Context) error {
	if _, err := ctx.Backend.ListValues(ctx.Ctx); err != nil {
		return fmt.Errorf("%s: %w", ctx.Config.BaseURL, err)
	}
	return nil
}

func checkBackendKey(ctx *cli.Context) error {
	status, err := ctx.Backend.ConfigStatus(ctx.Ctx)
	if err != nil {
		return err
	}
	if !status.IsConfigured {
		return warning("no API key configured; plan generation will fail. Run 'praxable setup'")
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return warning("OS keyring not available; API keys must come from arguments or the environment")
	}
	return nil
}

// checkJournal opens an existing journal without creating one.
func checkJournal(ctx *cli.Context) error {
	target, err := ctx.JournalTarget()
	if err != nil {
		return err
	}
	j := storage.New(target, "doctor")
	defer j.Close()

	if err := j.Load(); err != nil {
		if storage.IsNotInitialized(err) {
			return warning("no journal yet at %s; it is created on the first approval", j.Location())
		}
		return fmt.Errorf("failed to load journal: %w", err)
	}
	status, err := j.SchemaStatus()
	if err != nil {
		return err
	}
	if !status.UpToDate() {
		return fmt.Errorf("schema at version %d, latest is %d (%d pending); run 'praxable migrate'",
			status.Current, status.Latest, len(status.Pending))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	if _, err := ctx.Config.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", ctx.Config.Timezone, err)
	}
	now := nowFunc()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system clock appears to be wrong: %s", now.Format(time.RFC3339))
	}
	return nil
}
