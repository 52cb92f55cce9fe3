// Package commands implements the debug client's REPL commands.
package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"checkers/internal/client/display"
)

// ErrExit is returned by Execute when the user asked to leave
var ErrExit = errors.New("exit")

// Command defines a client command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Group       string
	Handler     func(*Session, []string) error
}

// Registry maps command names and short names to commands
type Registry struct {
	session  *Session
	commands map[string]*Command
	order    []*Command
}

func NewRegistry(session *Session) *Registry {
	r := &Registry{
		session:  session,
		commands: make(map[string]*Command),
	}

	r.registerGameCommands()
	r.registerDebugCommands()

	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Group:       "Utility",
		Handler:     r.helpHandler,
	})
	r.Register(&Command{
		Name:        "exit",
		ShortName:   "x",
		Description: "Exit the client",
		Usage:       "exit",
		Group:       "Utility",
		Handler: func(s *Session, _ []string) error {
			display.Detail.Fprintln(s.Out, "Goodbye!")
			return ErrExit
		},
	})

	return r
}

func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
	r.order = append(r.order, cmd)
}

// Execute runs one input line. A trailing -v turns on verbose output for
// that command. Command errors are printed; only ErrExit is returned.
func (r *Registry) Execute(input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	verbose := false
	if parts[len(parts)-1] == "-v" {
		verbose = true
		parts = parts[:len(parts)-1]
		if len(parts) == 0 {
			return nil
		}
	}

	cmd, exists := r.commands[strings.ToLower(parts[0])]
	if !exists {
		display.Failure.Fprintf(r.session.Out, "Unknown command: %s\n", parts[0])
		fmt.Fprintln(r.session.Out, "Type 'help' for available commands")
		return nil
	}

	r.session.Verbose = verbose
	r.session.Client.SetVerbose(verbose)

	err := cmd.Handler(r.session, parts[1:])
	if errors.Is(err, ErrExit) {
		return err
	}
	if err != nil {
		display.Failure.Fprintf(r.session.Out, "Error: %v\n", err)
	}
	return nil
}

func (r *Registry) helpHandler(s *Session, args []string) error {
	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Fprintf(s.Out, "\n%s - %s\n", display.Detail.Sprint(cmd.Name), cmd.Description)
		if cmd.ShortName != "" {
			fmt.Fprintf(s.Out, "Short form: %s\n", display.Detail.Sprint(cmd.ShortName))
		}
		fmt.Fprintf(s.Out, "Usage: %s\n", cmd.Usage)
		return nil
	}

	groups := make(map[string][]*Command)
	var names []string
	for _, cmd := range r.order {
		if _, seen := groups[cmd.Group]; !seen {
			names = append(names, cmd.Group)
		}
		groups[cmd.Group] = append(groups[cmd.Group], cmd)
	}
	sort.Strings(names)

	display.Heading.Fprintln(s.Out, "\nAvailable Commands:")
	for _, group := range names {
		display.Notice.Fprintf(s.Out, "\n%s Commands:\n", group)
		for _, cmd := range groups[group] {
			short := ""
			if cmd.ShortName != "" {
				short = "[" + display.Detail.Sprint(cmd.ShortName) + "] "
			}
			fmt.Fprintf(s.Out, "  %s%-10s %s\n", short, cmd.Name, cmd.Description)
		}
	}

	fmt.Fprintln(s.Out, "\nType 'help <command>' for detailed usage")
	fmt.Fprintln(s.Out, "Add '-v' to any command for verbose output")
	return nil
}
