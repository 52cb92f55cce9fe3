// Package main runs a checkers game in the terminal against the built-in
// random player or another human.
package main

import (
	"flag"
	"os"

	"checkers/internal/cli"
	"checkers/internal/engine"
	"checkers/internal/service"
	clitransport "checkers/internal/transport/cli"
)

func main() {
	seed := flag.Int64("seed", 0, "Random seed for computer moves (0 = time based)")
	flag.Parse()

	svc := service.New(nil)
	defer svc.Close()

	finder := engine.New(nil)
	if *seed != 0 {
		finder = engine.NewSeeded(*seed)
	}

	view := cli.NewTerminal(os.Stdin, os.Stdout)
	handler := clitransport.New(svc, view, finder)

	view.ShowWelcome()
	handler.Run()
}
