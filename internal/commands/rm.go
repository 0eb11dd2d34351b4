package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"slices"

	"todo/internal/config"
	"todo/internal/exitcode"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete tasks" }
func (c *RmCmd) Usage() string     { return "todo rm <n...>" }
func (c *RmCmd) NeedsAuth() bool   { return false }
func (c *RmCmd) Access() Access    { return WriteTasks }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	nums, err := ParseTaskNumbers(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := checkRange(nums, env.Tasks.Len()); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// Numbers refer to positions before any deletion, so remove from the back.
	slices.Sort(nums)
	slices.Reverse(nums)
	for _, n := range nums {
		if err := env.Tasks.Delete(n - 1); err != nil {
			fmt.Fprintf(errOut, "error: task number out of range: %d\n", n)
			return exitcode.UserError
		}
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
