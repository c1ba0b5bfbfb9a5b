package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/tasklist"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Flip a task's completion flag" }
func (c *ToggleCmd) Usage() string     { return "taskman toggle <n|id>" }
func (c *ToggleCmd) NeedsAuth() bool   { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}

	mgr := tasklist.New(env.Tasks)
	if err := mgr.Load(ctx); err != nil {
		return fail(errOut, err)
	}

	task, err := resolveTask(mgr, args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	updated, err := mgr.Toggle(ctx, task.ID)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		state := "pending"
		if updated.Completed {
			state = "completed"
		}
		fmt.Fprintf(out, "ok (%s)\n", state)
	}
	return exitcode.Success
}
