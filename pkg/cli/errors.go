package cli

import (
	"errors"
	"fmt"
)

// Exit codes returned by the tagviz command.
const (
	ExitOK      = 0
	ExitFailure = 1 // A command ran and reported problems
	ExitConfig  = 2 // The configuration could not be loaded
)

// ConfigError reports configuration that could not be loaded or applied.
// Source names where the problem is: a file path, "environment", or a key.
type ConfigError struct {
	Source string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError wraps err as a configuration problem at source.
func NewConfigError(source string, err error) *ConfigError {
	return &ConfigError{Source: source, Err: err}
}

// CommandError is returned by a subcommand that ran but failed.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// NewCommandError attributes err to the named subcommand.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{Command: command, Err: err}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var cfgErr *ConfigError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &cfgErr):
		return ExitConfig
	}
	return ExitFailure
}
