package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/config"
	"taskman/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskman help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskman                                        List tasks
  taskman list [common flags] [--filter all|completed|pending]
  taskman add [common flags] <title...>
  taskman toggle [common flags] <n|id>           (alias: done)
  taskman edit [common flags] <n|id> <title...>  (alias: rename)
  taskman rm [common flags] <n|id>               (alias: delete)
  taskman ui [common flags]                      Interactive mode
  taskman register [common flags] [--password <pass>] <username>
  taskman login [common flags] [--password <pass>] <username>
  taskman logout [common flags]
  taskman whoami [common flags]
  taskman help
  taskman version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  TASKMAN_API_URL  Task API base URL (default http://localhost:5000/api)
`
