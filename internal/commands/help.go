package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }
func (c *HelpCmd) Access() Access    { return NoTasks }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todo                                           List all tasks
  todo list [common flags] [--all|--open|--done] List tasks
  todo ls [common flags] [--all|--open|--done]
  todo add [common flags] <description...>
  todo create [common flags] <description...>
  todo done [common flags] <n...>
  todo complete [common flags] <n...>
  todo rm [common flags] <n...>
  todo delete [common flags] <n...>
  todo export [common flags] [--format md|html] [--out <path>] [--title <title>]
  todo shell [common flags]                      Edit tasks line by line
  todo ui [common flags]                         Full-screen editor
  todo push [common flags] [--list <list-name>]  Copy tasks to Google Tasks
  todo pull [common flags] [--list <list-name>]  Append open Google Tasks
  todo lists [common flags]                      Print Google Tasks lists
  todo login [common flags]
  todo logout [common flags]
  todo help
  todo version

Common flags:
  --config <dir>   Override config directory
  --file <path>    Override the task file
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
