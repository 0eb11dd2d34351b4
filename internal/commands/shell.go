package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/log"
	"todo/internal/output"
	"todo/internal/session"
)

func init() {
	Register(&ShellCmd{})
}

// ShellCmd implements the shell command: a line-oriented edit session.
// Nothing is written until the user types save.
type ShellCmd struct{}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return nil }
func (c *ShellCmd) Synopsis() string  { return "Edit tasks interactively" }
func (c *ShellCmd) Usage() string     { return "todo shell [common flags]" }
func (c *ShellCmd) NeedsAuth() bool   { return false }
func (c *ShellCmd) Access() Access    { return ReadTasks }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	var storage session.Storage
	if env.File != nil {
		storage = env.File
	}
	sess := session.New(env.Tasks, storage)

	scanner := bufio.NewScanner(env.In)
	prompt := func() {
		if !cfg.Quiet {
			fmt.Fprint(out, "> ")
		}
	}

	prompt()
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		cmd, rest, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		rest = strings.TrimSpace(rest)

		switch cmd {
		case "":
		case "add":
			if _, err := sess.Add(rest); err != nil {
				fmt.Fprintf(out, "warning: %s\n", session.Warning(err))
			}
		case "done", "complete":
			if err := sess.Complete(selection(rest)); err != nil {
				fmt.Fprintf(out, "warning: %s\n", session.Warning(err))
			}
		case "rm", "delete":
			if err := sess.Delete(selection(rest)); err != nil {
				fmt.Fprintf(out, "warning: %s\n", session.Warning(err))
			}
		case "list", "ls":
			printSession(out, sess)
		case "save":
			if err := sess.Save(); err != nil {
				fmt.Fprintf(out, "warning: %s\n", session.Warning(err))
				break
			}
			if !cfg.Quiet {
				fmt.Fprintln(out, "tasks saved")
			}
			return exitcode.Success
		case "quit", "exit":
			return c.quit(sess)
		case "help", "?":
			fmt.Fprint(out, shellHelp)
		default:
			fmt.Fprintf(out, "unknown command: %s (type help)\n", cmd)
		}
		prompt()
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return c.quit(sess)
}

func (c *ShellCmd) quit(sess *session.Session) int {
	if sess.Dirty() {
		log.Infof("shell: discarding unsaved changes")
	}
	return exitcode.Success
}

// selection maps a 1-based task number to a list index. Anything that is not
// a number maps to NoSelection, which the session reports as a warning.
func selection(arg string) int {
	n, err := ParseTaskNumber(strings.Fields(arg))
	if err != nil {
		return session.NoSelection
	}
	return n - 1
}

func printSession(out io.Writer, sess *session.Session) {
	tasks := sess.Tasks()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "no tasks found")
		return
	}
	for i, t := range tasks {
		output.FormatTask(out, i+1, t)
	}
}

const shellHelp = `Commands:
  add <description>   Add a task
  done <n>            Mark task n completed
  rm <n>              Delete task n
  list                Show tasks
  save                Save and exit
  quit                Exit without saving
`
