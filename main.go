// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/powerset/command"
	"github.com/hashicorp/powerset/version"
	"github.com/mitchellh/cli"
)

// defaultCommand runs when the first argument names no command, so that
// "powerset 1 2 3" enumerates its arguments.
const defaultCommand = "enumerate"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// create context to handle signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ui := &cli.BasicUi{
		Reader:      os.Stdin,
		Writer:      stdout,
		ErrorWriter: stderr,
	}
	meta := command.Meta{Ctx: ctx, Ui: ui, Stdout: stdout, LogOutput: stderr}

	commands := map[string]cli.CommandFactory{
		"enumerate": func() (cli.Command, error) {
			return &command.EnumerateCommand{Meta: meta}, nil
		},
		"count": func() (cli.Command, error) {
			return &command.CountCommand{Meta: meta}, nil
		},
		"version": func() (cli.Command, error) {
			return &command.VersionCommand{Ui: ui, Version: version.GetHumanVersion()}, nil
		},
	}

	c := cli.NewCLI("powerset", version.GetHumanVersion())
	c.Args = withDefaultCommand(args, commands)
	c.Commands = commands
	c.HelpWriter = stdout
	c.ErrorWriter = stderr

	exitCode, err := c.Run()
	if err != nil {
		fmt.Fprintf(stderr, "Error executing CLI: %v\n", err)
		return 1
	}
	return exitCode
}

// withDefaultCommand prefixes args with the default command unless they
// already start with a known command or a top level help or version flag.
func withDefaultCommand(args []string, commands map[string]cli.CommandFactory) []string {
	if len(args) == 0 {
		return args
	}

	switch args[0] {
	case "-h", "-help", "--help", "-v", "-version", "--version":
		return args
	}
	if _, ok := commands[args[0]]; ok {
		return args
	}

	return append([]string{defaultCommand}, args...)
}
