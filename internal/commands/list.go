package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/output"
	"taskman/internal/tasklist"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct {
	filter string
}

// SetFilter sets the filter name (for testing).
func (c *ListCmd) SetFilter(name string) {
	c.filter = name
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "taskman list [--filter all|completed|pending]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	name := c.filter
	if name == "" {
		name = cfg.DefaultFilter()
	}
	filter, err := tasklist.ParseFilter(name)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	mgr := tasklist.New(env.Tasks)
	if err := mgr.Load(ctx); err != nil {
		return fail(errOut, err)
	}
	mgr.SetFilter(filter)

	visible := mgr.Visible()
	for i, t := range visible {
		output.FormatTask(out, i+1, t)
	}

	if !cfg.Quiet {
		if len(visible) == 0 {
			fmt.Fprintln(out, "no tasks")
		}
		done := 0
		for _, t := range mgr.Tasks() {
			if t.Completed {
				done++
			}
		}
		output.FormatProgress(out, done, mgr.Len(), mgr.CompletionRatio())
	}
	return exitcode.Success
}
