package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/log"
	"todo/internal/service"
)

func init() {
	Register(&PullCmd{})
}

// PullCmd implements the pull command.
type PullCmd struct {
	listName string
}

// SetListName sets the source list (for testing).
func (c *PullCmd) SetListName(name string) {
	c.listName = name
}

func (c *PullCmd) Name() string      { return "pull" }
func (c *PullCmd) Aliases() []string { return nil }
func (c *PullCmd) Synopsis() string  { return "Append open Google Tasks to the local list" }
func (c *PullCmd) Usage() string     { return "todo pull [common flags] [--list <list-name>]" }
func (c *PullCmd) NeedsAuth() bool   { return true }
func (c *PullCmd) Access() Access    { return WriteTasks }

func (c *PullCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
}

func (c *PullCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	list, err := remoteList(ctx, cfg, env.Remote, c.listName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	// Fetch everything before touching the local list so a failed pull
	// leaves it unchanged.
	var titles []string
	for page := 1; ; page++ {
		tasks, err := env.Remote.ListOpenTasks(ctx, list.ID, page)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.BackendError
		}
		for _, t := range tasks {
			// A newline would split the task across two lines of the file.
			title := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(t.Title, "\r", " "), "\n", " "))
			if title != "" {
				titles = append(titles, title)
			}
		}
		if len(tasks) < service.PageSize {
			break
		}
	}

	for _, title := range titles {
		if _, err := env.Tasks.Add(title); err != nil {
			log.Warnf("pull: skipping %q: %v", title, err)
		}
	}
	log.Debugf("pull: %d tasks from list %s", len(titles), list.ID)

	if !cfg.Quiet {
		fmt.Fprintf(out, "pulled %d tasks\n", len(titles))
	}
	return exitcode.Success
}
