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
	Register(&ListsCmd{})
}

// ListsCmd implements the lists command. It prints the remote lists that
// push and pull accept for --list.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Print Google Tasks lists" }
func (c *ListsCmd) Usage() string     { return "todo lists [common flags]" }
func (c *ListsCmd) NeedsAuth() bool   { return true }
func (c *ListsCmd) Access() Access    { return NoTasks }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	lists, err := env.Remote.ListLists(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	for _, list := range lists {
		output.FormatListName(out, list)
	}
	return exitcode.Success
}
