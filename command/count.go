// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"fmt"
	"strings"

	"github.com/hashicorp/powerset/powerset"
	"github.com/hashicorp/powerset/telemetry"
)

type CountCommand struct {
	Meta
}

func (c *CountCommand) Help() string {
	helpText := `
Usage: powerset count [options] <item> [<item> ...]

  Prints the number of subsets that "powerset enumerate" would emit for the
  same options and items, without rendering them.
` + commonHelp
	return strings.TrimSpace(helpText)
}

func (c *CountCommand) Synopsis() string {
	return "Counts the subsets that would be printed"
}

func (c *CountCommand) Run(args []string) int {
	cfg, items, err := c.readConfig("count", args)
	if err != nil {
		c.Ui.Error(err.Error())
		c.Ui.Error("Run 'powerset count -help' for more information.")
		return 1
	}

	logger := c.newLogger(cfg)

	reporter, err := telemetry.Setup(cfg.Telemetry)
	if err != nil {
		logger.Error("failed to setup telemetry", "error", err)
		return 1
	}

	enumerator, _, err := c.prepare(cfg, items, logger)
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	stats, err := enumerator.Run(c.ctx(), func(*powerset.Subset) error { return nil })
	if err != nil {
		logger.Error("enumeration failed", "error", err)
		return 1
	}

	fmt.Fprintln(c.stdout(), stats.Accepted)
	c.reportTelemetry(logger, reporter)
	return 0
}
