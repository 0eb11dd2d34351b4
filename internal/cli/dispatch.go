// Package cli parses the command line and dispatches to registered commands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/log"
	"todo/internal/service"
	"todo/internal/session"
	"todo/internal/taskfile"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory

	// Stdin feeds interactive commands. Defaults to os.Stdin.
	Stdin io.Reader
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
		Stdin:    os.Stdin,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var file string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&file, "file", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return flagError(err, errOut)
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if file != "" {
		cfg.TasksFile = file
	}

	log.Init(cfg.LogLevel)
	if debug {
		log.SetLevel(log.Debug)
	}
	log.Debugf("dispatch: %s (config %s, tasks %s)", cmd.Name(), cfg.Dir, cfg.TasksFile)

	env := &commands.Env{In: d.Stdin}

	if cmd.NeedsAuth() {
		svc, code := d.remote(ctx, cfg, errOut)
		if code != exitcode.Success {
			return code
		}
		env.Remote = svc
	}

	if cmd.Access() != commands.NoTasks {
		env.File = taskfile.New(cfg.TasksFile)
		tasks, err := env.File.Load()
		if err != nil {
			fmt.Fprintf(errOut, "warning: %s\n", session.Warning(err))
			// Saving a partial list would drop the lines that could not be read.
			if cmd.Access() == commands.WriteTasks {
				fmt.Fprintf(errOut, "error: not saving over %s after a load failure\n", env.File.Path)
				return exitcode.StorageError
			}
		}
		env.Tasks = tasks
	}

	code := cmd.Run(ctx, cfg, env, positionalArgs, out, errOut)
	if code != exitcode.Success || cmd.Access() != commands.WriteTasks {
		return code
	}

	if err := env.File.Save(env.Tasks); err != nil {
		var cause error = err
		var perr *taskfile.PersistenceError
		if errors.As(err, &perr) {
			cause = perr.Err
		}
		fmt.Fprintf(errOut, "error: could not save tasks: %v\n", cause)
		return exitcode.StorageError
	}
	return exitcode.Success
}

// remote builds the backend for commands that need auth.
func (d *Dispatcher) remote(ctx context.Context, cfg *config.Config, errOut io.Writer) (service.Service, int) {
	if d.factory == nil {
		fmt.Fprintln(errOut, "error: no remote backend configured")
		return nil, exitcode.BackendError
	}

	svc, err := d.factory(ctx, cfg)
	if err != nil {
		var authErr *service.AuthError
		if errors.As(err, &authErr) {
			fmt.Fprintf(errOut, "error: %s\n", authErr.Msg)
			return nil, exitcode.AuthError
		}
		if strings.Contains(err.Error(), "token") || strings.Contains(err.Error(), "auth") {
			fmt.Fprintf(errOut, "error: auth error: %s\n", err)
			return nil, exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: backend error: %s\n", err)
		return nil, exitcode.BackendError
	}
	return svc, exitcode.Success
}

func flagError(err error, errOut io.Writer) int {
	errStr := err.Error()

	if name, ok := strings.CutPrefix(errStr, "flag needs an argument: "); ok {
		fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", name)
		return exitcode.UserError
	}

	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
	return exitcode.UserError
}
