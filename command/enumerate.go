// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"strings"

	"github.com/hashicorp/powerset/printer"
	"github.com/hashicorp/powerset/telemetry"
)

type EnumerateCommand struct {
	Meta
}

// Help should return long-form help text that includes the command-line
// usage, a brief few sentences explaining the function of the command,
// and the complete list of flags the command accepts.
func (c *EnumerateCommand) Help() string {
	helpText := `
Usage: powerset enumerate [options] <item> [<item> ...]

  Prints every subset of the given items, one per line. Subsets are ordered
  by their membership bit mask, where bit i selects the item at position i,
  and members keep their input order. At most 31 items are supported.
` + commonHelp
	return strings.TrimSpace(helpText)
}

// Synopsis should return a one-line, short synopsis of the command.
// This should be less than 50 characters ideally.
func (c *EnumerateCommand) Synopsis() string {
	return "Prints every subset of the given items"
}

// Run should run the actual command with the given CLI instance and
// command-line arguments. It should return the exit status when it is
// finished.
func (c *EnumerateCommand) Run(args []string) int {
	cfg, items, err := c.readConfig("enumerate", args)
	if err != nil {
		c.Ui.Error(err.Error())
		c.Ui.Error("Run 'powerset enumerate -help' for more information.")
		return 1
	}

	logger := c.newLogger(cfg)

	reporter, err := telemetry.Setup(cfg.Telemetry)
	if err != nil {
		logger.Error("failed to setup telemetry", "error", err)
		return 1
	}

	enumerator, opts, err := c.prepare(cfg, items, logger)
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	p := printer.New(c.stdout(), opts.Format)
	_, runErr := enumerator.Run(c.ctx(), p.Print)

	// Flush whatever was rendered, even when the walk stopped early.
	if err := p.Flush(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		logger.Error("enumeration failed", "error", runErr)
		return 1
	}

	c.reportTelemetry(logger, reporter)
	return 0
}
