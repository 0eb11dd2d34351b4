package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/log"
)

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command.
type PushCmd struct {
	listName string
}

// SetListName sets the target list (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy local tasks to Google Tasks" }
func (c *PushCmd) Usage() string     { return "todo push [common flags] [--list <list-name>]" }
func (c *PushCmd) NeedsAuth() bool   { return true }
func (c *PushCmd) Access() Access    { return ReadTasks }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	list, err := remoteList(ctx, cfg, env.Remote, c.listName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	pushed := 0
	for _, t := range env.Tasks.Tasks() {
		remote, err := env.Remote.CreateTask(ctx, list.ID, t.Description)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.BackendError
		}
		if t.Completed {
			if err := env.Remote.CompleteTask(ctx, list.ID, remote.ID); err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				return exitcode.BackendError
			}
		}
		pushed++
	}
	log.Debugf("push: %d tasks to list %s", pushed, list.ID)

	if !cfg.Quiet {
		fmt.Fprintf(out, "pushed %d tasks\n", pushed)
	}
	return exitcode.Success
}
