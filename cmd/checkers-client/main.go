// Package main implements an interactive debugging client for the checkers
// server API.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"checkers/internal/client/api"
	"checkers/internal/client/commands"
	"checkers/internal/client/display"
	"checkers/internal/core"

	"github.com/chzyer/readline"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "Checkers server base URL")
	history := flag.String("history", ".checkers_history", "Readline history file (empty disables)")
	flag.Parse()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("checkers"),
		HistoryFile:     *history,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		display.Failure.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rl.Close()

	out := rl.Stdout()
	s := commands.NewSession(api.New(*apiURL, out), out, os.Stdin)
	s.Ask = func(prompt string) (string, error) {
		rl.SetPrompt(prompt)
		line, err := rl.Readline()
		return strings.TrimSpace(line), err
	}

	display.Heading.Fprintln(out, "Checkers Debug Client")
	display.Detail.Fprintf(out, "API: %s\n", s.Client.BaseURL)
	fmt.Fprint(out, "Type 'help' for commands\n\n")

	registry := commands.NewRegistry(s)

	for {
		rl.SetPrompt(buildPrompt(s))

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		if err := registry.Execute(line); errors.Is(err, commands.ErrExit) {
			break
		}
	}
}

// buildPrompt shows the current game, whose turn it is and whether a
// human or the computer moves next
func buildPrompt(s *commands.Session) string {
	prompt := "checkers"
	if s.CurrentGame != "" {
		id := s.CurrentGame
		if len(id) > 8 {
			id = id[:8]
		}
		prompt += display.Notice.Sprint(" [") + id + display.Notice.Sprint("]")
	}

	if st := s.State; st != nil {
		kind := "h"
		if (st.Turn == core.SideRed.Symbol() && st.Players.Red.IsComputer()) ||
			(st.Turn == core.SideBlack.Symbol() && st.Players.Black.IsComputer()) {
			kind = "c"
		}
		prompt += fmt.Sprintf(" - Turn:%s(%s)", display.SideName(st.Turn), kind)
		if st.State != core.StateOngoing.String() {
			prompt += " " + st.State
		}
	}

	return display.Prompt(prompt)
}
