package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	path   string
	title  string
}

// SetOptions sets the flag values (for testing).
func (c *ExportCmd) SetOptions(format, path, title string) {
	c.format = format
	c.path = path
	c.title = title
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Export tasks as Markdown or HTML" }
func (c *ExportCmd) Usage() string {
	return "todo export [--format md|html] [--out <path>] [--title <title>]"
}
func (c *ExportCmd) NeedsAuth() bool { return false }
func (c *ExportCmd) Access() Access  { return ReadTasks }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", output.FormatMarkdown, "")
	fs.StringVar(&c.path, "out", "", "")
	fs.StringVar(&c.title, "title", "Tasks", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	title := c.title
	if title == "" {
		title = "Tasks"
	}

	if c.path == "" {
		if err := output.Export(out, c.format, title, env.Tasks.Tasks()); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return exitcode.Success
	}

	// Validate the format before creating the file.
	if err := output.Export(io.Discard, c.format, title, nil); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	f, err := os.Create(c.path)
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to create %s: %v\n", c.path, err)
		return exitcode.StorageError
	}
	if err := output.Export(f, c.format, title, env.Tasks.Tasks()); err != nil {
		f.Close()
		fmt.Fprintf(errOut, "error: failed to write %s: %v\n", c.path, err)
		return exitcode.StorageError
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(errOut, "error: failed to write %s: %v\n", c.path, err)
		return exitcode.StorageError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
