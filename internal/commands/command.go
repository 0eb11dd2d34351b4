// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/service"
	"todo/internal/task"
	"todo/internal/taskfile"
)

// Access declares what a command needs from the task file.
type Access int

const (
	// NoTasks commands never touch the task file.
	NoTasks Access = iota

	// ReadTasks commands get the loaded list; the dispatcher never saves it.
	// Interactive sessions use this and save on an explicit save command.
	ReadTasks

	// WriteTasks commands get the loaded list and the dispatcher saves it
	// after a successful run.
	WriteTasks
)

// Env carries what the dispatcher prepared for a command.
type Env struct {
	// Tasks is the loaded list. Nil when Access() is NoTasks.
	Tasks *task.List

	// File is where Tasks was loaded from.
	File *taskfile.File

	// Remote is the remote backend. Nil unless NeedsAuth() is true.
	Remote service.Service

	// In is the input of interactive commands.
	In io.Reader
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command talks to the remote backend.
	NeedsAuth() bool

	// Access returns how the command uses the task file.
	Access() Access

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int
}
