// Package clitest builds command contexts wired to a fake backend.
package clitest

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/praxable/praxable-cli/internal/api"
	"github.com/praxable/praxable-cli/internal/api/apitest"
	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/config"
	"github.com/praxable/praxable-cli/internal/output"
)

// Today is the date every Env runs on.
const Today = "2025-03-10"

// Now is the fixed clock of every Env, 08:00 UTC on Today.
var Now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

// Env is a command context plus the fake backend and captured output.
type Env struct {
	Ctx    *cli.Context
	Server *apitest.Server
	Out    *bytes.Buffer
}

// New returns an Env printing text output.
func New(t testing.TB) *Env {
	return NewWithOutput(t, output.Options{})
}

// NewJSON returns an Env printing JSON, filtered by jq when set.
func NewJSON(t testing.TB, jq string) *Env {
	return NewWithOutput(t, output.Options{JSON: true, JQ: jq})
}

func NewWithOutput(t testing.TB, opts output.Options) *Env {
	t.Helper()
	interactive := cli.Interactive
	cli.Interactive = func() bool { return false }
	t.Cleanup(func() { cli.Interactive = interactive })

	srv := apitest.New(t)
	cfg := config.Default(t.TempDir())
	cfg.Timezone = "UTC"
	cfg.BaseURL = srv.URL

	var buf bytes.Buffer
	ctx := &cli.Context{
		Ctx:     context.Background(),
		Config:  cfg,
		Backend: api.New(api.Config{BaseURL: srv.URL}),
		Out:     output.New(&buf, opts),
		Now:     func() time.Time { return Now },
	}
	t.Cleanup(func() { _ = ctx.Close() })
	return &Env{Ctx: ctx, Server: srv, Out: &buf}
}
