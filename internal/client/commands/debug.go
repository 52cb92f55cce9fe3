package commands

import (
	"fmt"
	"strings"
	"time"

	"checkers/internal/client/display"
)

func (r *Registry) registerDebugCommands() {
	for _, cmd := range []*Command{
		{Name: "health", ShortName: ".", Description: "Check server health", Usage: "health", Handler: healthHandler},
		{Name: "url", ShortName: "/", Description: "Show or set API base URL", Usage: "url [apiUrl]", Handler: urlHandler},
		{Name: "raw", ShortName: ":", Description: "Send raw API request", Usage: "raw <method> <path> [json-body]", Handler: rawRequestHandler},
		{Name: "dump", Description: "Dump session state as Go values", Usage: "dump", Handler: dumpHandler},
	} {
		cmd.Group = "Debug"
		r.Register(cmd)
	}
}

func healthHandler(s *Session, args []string) error {
	resp, err := s.Client.Health()
	if err != nil {
		return err
	}

	display.Detail.Fprintln(s.Out, "Server Health:")
	fmt.Fprintf(s.Out, "  Status:  %s\n", resp.Status)
	fmt.Fprintf(s.Out, "  Time:    %s\n", time.Unix(resp.Time, 0).Format("2006-01-02 15:04:05"))
	fmt.Fprintf(s.Out, "  Storage: %s\n", resp.Storage)
	fmt.Fprintf(s.Out, "  Games:   %d\n", resp.Games)
	return nil
}

func urlHandler(s *Session, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(s.Out, "Current API URL: %s\n", s.Client.BaseURL)
		return nil
	}

	u := args[0]
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "http://" + u
	}
	s.Client.SetBaseURL(u)

	display.Detail.Fprintf(s.Out, "API URL set to: %s\n", s.Client.BaseURL)
	return nil
}

func rawRequestHandler(s *Session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: raw <method> <path> [json-body]")
	}

	body := ""
	if len(args) > 2 {
		body = strings.Join(args[2:], " ")
	}

	verbose := s.Client.Verbose
	s.Client.SetVerbose(true)
	defer s.Client.SetVerbose(verbose)

	return s.Client.RawRequest(strings.ToUpper(args[0]), args[1], body)
}

func dumpHandler(s *Session, args []string) error {
	fmt.Fprintf(s.Out, "Game: %q  Last move count: %d\n", s.CurrentGame, s.LastMoveCount)
	if s.State == nil {
		display.Notice.Fprintln(s.Out, "No game state cached")
		return nil
	}
	display.Dump(s.Out, s.State)
	return nil
}
