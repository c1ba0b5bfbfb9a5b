package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/tasklist"
	"taskman/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd launches the interactive terminal UI.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return nil }
func (c *UICmd) Synopsis() string  { return "Interactive task list" }
func (c *UICmd) Usage() string     { return "taskman ui [common flags]" }
func (c *UICmd) NeedsAuth() bool   { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	filter, err := tasklist.ParseFilter(cfg.DefaultFilter())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	mgr := tasklist.New(env.Tasks)
	mgr.SetFilter(filter)
	username, _ := env.Session.Username()

	if err := tui.Run(ctx, mgr, username); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
