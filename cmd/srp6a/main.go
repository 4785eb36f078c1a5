// Package main provides the srp6a CLI tool for working with SRP-6a credentials.
//
// The srp6a CLI computes registration verifiers, lists the built-in groups
// and runs an in-process handshake to check that a configuration works end
// to end.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fzdarsky/srp6a/internal/cli/clicontext"
	"github.com/fzdarsky/srp6a/internal/cli/commands"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Parse global flags and extract command
	args, command, err := parseGlobalFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		printUsage()
		os.Exit(1)
	}

	// Handle special commands
	switch command {
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("srp6a version %s\n", version)
		os.Exit(0)
	}

	// Route to command implementations
	switch command {
	case "verifier":
		commands.NewVerifierCommand().Execute(args)
	case "selftest":
		commands.NewSelftestCommand().Execute(args)
	case "groups":
		commands.NewGroupsCommand().Execute(args)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command '%s'\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// parseGlobalFlags processes global flags and returns remaining args and the command.
// Global flags can appear anywhere in the argument list.
// Examples:
//
//	srp6a --config srp6a.yaml selftest          (before command)
//	srp6a selftest --no-color --group custom     (after command)
//	srp6a verifier --username alice --config=f   (at the end)
func parseGlobalFlags(args []string) ([]string, string, error) {
	remainingArgs := make([]string, 0, len(args))
	var command string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// Check for global flags
		switch {
		case arg == "--no-color":
			clicontext.SetNoColor(true)
			continue
		case arg == "--config" || arg == "-c":
			if i+1 >= len(args) {
				return nil, "", fmt.Errorf("flag %s requires a path", arg)
			}
			i++
			clicontext.SetConfigPath(args[i])
			continue
		case strings.HasPrefix(arg, "--config="):
			clicontext.SetConfigPath(strings.TrimPrefix(arg, "--config="))
			continue
		}

		// First non-flag argument is the command; --help and --version too
		if command == "" && (!isFlag(arg) || isSpecial(arg)) {
			command = arg
			continue
		}

		// All other arguments are passed to the command
		remainingArgs = append(remainingArgs, arg)
	}

	return remainingArgs, command, nil
}

// isFlag returns true if the argument looks like a flag (starts with -).
func isFlag(arg string) bool {
	return len(arg) > 0 && arg[0] == '-'
}

// isSpecial reports whether arg is a top-level help or version flag.
func isSpecial(arg string) bool {
	switch arg {
	case "--help", "-h", "--version", "-v":
		return true
	}
	return false
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `srp6a - SRP-6a client credential tool

Usage:
  srp6a <command> [flags]

Available Commands:
  verifier     Compute the registration verifier for a user
  selftest     Run a complete handshake against an in-process server
  groups       List the built-in RFC 5054 groups

Global Flags:
  --help, -h         Show help information
  --version, -v      Show version information
  --config, -c PATH  Load configuration from a YAML file
  --no-color         Disable colored output

Environment:
  SRP6A_GROUP, SRP6A_HASH, SRP6A_KDF, SRP6A_KDF_ITERATIONS,
  SRP6A_LOG_LEVEL, SRP6A_LOG_FORMAT override the configuration file.

Examples:
  # Register a user (prompts for username and password)
  srp6a verifier

  # Register a user with the parameters from a config file
  srp6a --config srp6a.yaml verifier --username alice

  # Check that a configuration works end to end
  srp6a selftest --group rfc5054-3072 --hash sha512

  # List groups and their multipliers for SHA-1
  srp6a groups --hash sha1

For detailed help on a specific command, run:
  srp6a <command> --help

`)
}
