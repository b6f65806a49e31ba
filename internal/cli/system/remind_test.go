package system

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/cli/clitest"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/reminder"
)

type notifyRecorder struct {
	titles []string
	bodies []string
}

func (n *notifyRecorder) Notify(_ context.Context, title, body string) error {
	n.titles = append(n.titles, title)
	n.bodies = append(n.bodies, body)
	return nil
}

func TestRemindCmdList(t *testing.T) {
	env := clitest.New(t)
	env.Server.Tasks = []models.TaskData{
		{ID: 1, Task: "Run", Date: clitest.Today, PlannedTime: "09:00", MoodBefore: 5},
		{ID: 2, Task: "Yesterday", Date: "2025-03-09", PlannedTime: "09:00", MoodBefore: 5},
		{ID: 3, Task: "Loose", Date: clitest.Today, MoodBefore: 5},
		// Out-of-range mood_before; the row still gets a reminder.
		{ID: 4, Task: "Call home", Date: clitest.Today, PlannedTime: "10:00"},
	}

	if err := (&RemindCmd{List: true}).Run(env.Ctx); err != nil {
		t.Fatalf("RemindCmd.Run() error = %v", err)
	}
	out := env.Out.String()
	for _, want := range []string{"Run", "Call home"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing today's task %q: %q", want, out)
		}
	}
	if strings.Contains(out, "Yesterday") || strings.Contains(out, "Loose") {
		t.Errorf("output has tasks that should be skipped: %q", out)
	}
}

func TestRemindCmdNothingToDo(t *testing.T) {
	env := clitest.New(t)
	if err := (&RemindCmd{}).Run(env.Ctx); err != nil {
		t.Fatalf("RemindCmd.Run() error = %v", err)
	}
	if !strings.Contains(env.Out.String(), "No upcoming tasks") {
		t.Errorf("output = %q", env.Out.String())
	}
}

func TestRemindCmdDeliversDueReminders(t *testing.T) {
	env := clitest.New(t)
	// Planned a minute from now, so the reminder is already inside the lead time.
	soon := time.Now().Add(time.Minute).In(env.Ctx.Location())
	env.Ctx.Now = time.Now
	env.Server.Tasks = []models.TaskData{
		{ID: 1, Task: "Stretch", Date: env.Ctx.Today(), PlannedTime: soon.Format("15:04"), MoodBefore: 5},
	}

	rec := &notifyRecorder{}
	orig := deliveryChain
	deliveryChain = func(*cli.Context) reminder.Notifier { return rec }
	defer func() { deliveryChain = orig }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	env.Ctx.Ctx = ctx

	if err := (&RemindCmd{Until: true}).Run(env.Ctx); err != nil {
		t.Fatalf("RemindCmd.Run() error = %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("timed out waiting for the reminder")
	}
	if len(rec.titles) != 1 || rec.titles[0] != reminder.Title {
		t.Fatalf("notifications = %v, want one %q", rec.titles, reminder.Title)
	}
	if !strings.Contains(rec.bodies[0], "Stretch") {
		t.Errorf("body = %q", rec.bodies[0])
	}
}

func TestRemindCmdSingleInstance(t *testing.T) {
	env := clitest.New(t)
	lock, err := reminder.Lock(env.Ctx.Config.ConfigDir)
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	defer lock.Unlock()

	if err := (&RemindCmd{List: true}).Run(env.Ctx); err == nil {
		t.Error("expected a second instance to be refused")
	}
}
