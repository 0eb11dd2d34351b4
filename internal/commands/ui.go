package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/session"
	"todo/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return nil }
func (c *UICmd) Synopsis() string  { return "Open the full-screen task editor" }
func (c *UICmd) Usage() string     { return "todo ui [common flags]" }
func (c *UICmd) NeedsAuth() bool   { return false }
func (c *UICmd) Access() Access    { return ReadTasks }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	var storage session.Storage
	if env.File != nil {
		storage = env.File
	}
	saved, err := tui.Run(ctx, session.New(env.Tasks, storage), env.In, out)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if saved && !cfg.Quiet {
		fmt.Fprintln(out, "tasks saved")
	}
	return exitcode.Success
}
