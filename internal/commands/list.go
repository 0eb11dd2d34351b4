package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todo` (no args) and `todo list`.
type ListCmd struct {
	all  bool
	open bool
	done bool
}

// SetFilter sets the open/done filters (for testing).
func (c *ListCmd) SetFilter(open, done bool) {
	c.all = false
	c.open = open
	c.done = done
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todo list [--all | --open | --done]" }
func (c *ListCmd) NeedsAuth() bool   { return false }
func (c *ListCmd) Access() Access    { return ReadTasks }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.all, "all", false, "")
	fs.BoolVar(&c.open, "open", false, "")
	fs.BoolVar(&c.done, "done", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if (c.all && (c.open || c.done)) || (c.open && c.done) {
		fmt.Fprintln(errOut, "error: --all, --open and --done are mutually exclusive")
		return exitcode.UserError
	}

	shown := 0
	// Numbers are positions in the full list so they can be passed to done/rm.
	for i, t := range env.Tasks.All() {
		if (c.open && t.Completed) || (c.done && !t.Completed) {
			continue
		}
		output.FormatTask(out, i+1, t)
		shown++
	}

	if cfg.Quiet {
		return exitcode.Success
	}
	if shown == 0 {
		fmt.Fprintln(out, "no tasks found")
		return exitcode.Success
	}
	output.FormatSummary(out, env.Tasks.Tasks())
	return exitcode.Success
}
