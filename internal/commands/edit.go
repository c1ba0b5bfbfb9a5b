package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/tasklist"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command: a one-shot rename driven through
// the same begin/draft/save transitions the interactive UI uses.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"rename"} }
func (c *EditCmd) Synopsis() string  { return "Rename a task" }
func (c *EditCmd) Usage() string     { return "taskman edit <n|id> <title...>" }
func (c *EditCmd) NeedsAuth() bool   { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: title required")
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

	if err := mgr.BeginEdit(task.ID); err != nil {
		return fail(errOut, err)
	}
	mgr.SetDraft(strings.Join(args[1:], " "))
	if _, err := mgr.SaveEdit(ctx); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
