// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/powerset/config"
	flaghelper "github.com/hashicorp/powerset/helper/flag"
	"github.com/hashicorp/powerset/helper/ptr"
	"github.com/hashicorp/powerset/powerset"
	"github.com/hashicorp/powerset/telemetry"
	"github.com/hashicorp/powerset/version"
	"github.com/mitchellh/cli"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Meta contains the fields shared by the enumeration commands.
type Meta struct {
	Ctx context.Context
	Ui  cli.Ui

	// Stdout receives the command results. Defaults to os.Stdout.
	Stdout io.Writer

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer
}

// commonHelp documents the options shared by the enumeration commands.
const commonHelp = `
Options:

  Options must precede the items.

  -a
    Render each subset as an array literal, for example ["a", "b"] or [1, 2].
    The default renders members separated by a single space.

  -E
    Exclude the empty subset. By default it is included.

  -i
    Treat items as integers. Items must be unsigned decimal numbers.

  -m=<num>
    Only emit subsets with at most <num> items. Must not exceed 31.

  -s=<num>
    Only emit subsets whose items add up to exactly <num>. Implies -i.

  -config=<path>
    The path to either a single config file or a directory of config files.
    May be specified multiple times; later files take precedence.

  -log-level=<level>
    Specify the verbosity level of logs written to stderr. Valid values
    include TRACE, DEBUG, INFO, WARN and ERROR. The default is WARN.

  -log-json
    Output logs in a JSON format. The default is false.
`

func (m *Meta) ctx() context.Context {
	if m.Ctx == nil {
		return context.Background()
	}
	return m.Ctx
}

func (m *Meta) stdout() io.Writer {
	if m.Stdout == nil {
		return os.Stdout
	}
	return m.Stdout
}

func (m *Meta) logOutput() io.Writer {
	if m.LogOutput == nil {
		return os.Stderr
	}
	return m.LogOutput
}

// readConfig parses args, merges the result over any config files and
// returns the final configuration along with the positional items.
func (m *Meta) readConfig(name string, args []string) (*config.Config, []string, error) {
	var configPath []string

	// cmdConfig is used to store any passed CLI flags.
	cmdConfig := &config.Config{
		Output:    &config.Output{},
		Filter:    &config.Filter{},
		Telemetry: &config.Telemetry{},
	}

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	// Specify our top level CLI flags.
	flags.Var((*flaghelper.StringFlag)(&configPath), "config", "")
	flags.StringVar(&cmdConfig.LogLevel, "log-level", "", "")
	flags.BoolVar(&cmdConfig.LogJson, "log-json", false, "")

	// Specify our enumeration flags.
	flags.Var((flaghelper.FuncBoolVar)(func(b bool) error {
		if b {
			cmdConfig.Output.Format = powerset.FormatArray.String()
		} else {
			cmdConfig.Output.Format = powerset.FormatSpace.String()
		}
		return nil
	}), "a", "")
	flags.Var((flaghelper.FuncBoolVar)(func(b bool) error {
		cmdConfig.Output.IncludeEmpty = ptr.Of(!b)
		return nil
	}), "E", "")
	flags.Var((flaghelper.FuncBoolVar)(func(b bool) error {
		if b {
			cmdConfig.Mode = powerset.ModeInteger.String()
		} else {
			cmdConfig.Mode = powerset.ModeString.String()
		}
		return nil
	}), "i", "")
	flags.Var((flaghelper.FuncDigitsVar)(func(v int64) error {
		cmdConfig.Filter.MaxItems = ptr.Of(int(min(v, math.MaxInt32)))
		return nil
	}), "m", "")
	flags.Var((flaghelper.FuncDigitsVar)(func(v int64) error {
		cmdConfig.Filter.Sum = ptr.Of(v)
		return nil
	}), "s", "")

	if err := flags.Parse(args); err != nil {
		return nil, nil, classifyFlagError(err)
	}

	// Validate config values from flags.
	if err := cmdConfig.Validate(); err != nil {
		return nil, nil, err
	}

	fileConfig, err := config.LoadPaths(configPath)
	if err != nil {
		return nil, nil, err
	}

	merged := fileConfig.Merge(cmdConfig)
	if err := merged.Validate(); err != nil {
		return nil, nil, err
	}

	return merged, flags.Args(), nil
}

// classifyFlagError maps the errors produced by the flag package onto the
// option error kinds. The flag package only reports failures as formatted
// strings, so the message prefixes below are relied upon and pinned by tests.
func classifyFlagError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}

	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "invalid boolean value "):
		// Switches such as -a take no argument; -a=foo is a misuse of the
		// option itself.
		return fmt.Errorf("%w: %s", powerset.ErrInvalidOption, msg)
	case strings.HasPrefix(msg, "flag provided but not defined: "):
		return fmt.Errorf("%w: %s", powerset.ErrInvalidOption,
			strings.TrimPrefix(msg, "flag provided but not defined: "))
	case strings.HasPrefix(msg, "flag needs an argument: "):
		return fmt.Errorf("%w: %s", powerset.ErrMissingOptionArgument,
			strings.TrimPrefix(msg, "flag needs an argument: "))
	case strings.HasPrefix(msg, "invalid value "):
		return fmt.Errorf("%w: %s", powerset.ErrNonIntegerOptionArgument, msg)
	default:
		return fmt.Errorf("%w: %s", powerset.ErrInvalidOption, msg)
	}
}

// newLogger creates the command logger from the merged configuration.
func (m *Meta) newLogger(cfg *config.Config) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       "powerset",
		Level:      hclog.LevelFromString(cfg.LogLevel),
		JSONFormat: cfg.LogJson,
		Output:     m.logOutput(),
	})
}

// prepare builds the collection and enumerator described by cfg and items.
// Every input problem is detected here, before anything is emitted.
func (m *Meta) prepare(cfg *config.Config, items []string, logger hclog.Logger) (*powerset.Enumerator, powerset.Options, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, opts, err
	}

	collection, err := powerset.Build(items, opts.Mode)
	if err != nil {
		return nil, opts, err
	}

	logConfig(logger, opts, collection.Len())

	e, err := powerset.NewEnumerator(collection, opts, logger)
	if err != nil {
		return nil, opts, err
	}
	return e, opts, nil
}

// logConfig writes a summary of the run configuration at debug level.
func logConfig(logger hclog.Logger, opts powerset.Options, n int) {
	if !logger.IsDebug() {
		return
	}

	info := map[string]string{
		"version":       version.GetHumanVersion(),
		"items":         fmt.Sprint(n),
		"mode":          opts.Mode.String(),
		"format":        opts.Format.String(),
		"include empty": fmt.Sprint(opts.IncludeEmpty),
		"max items":     "unbounded",
		"sum":           "disabled",
	}
	if opts.MaxItems != nil {
		info["max items"] = fmt.Sprint(*opts.MaxItems)
	}
	if opts.Sum != nil {
		info["sum"] = fmt.Sprint(*opts.Sum)
	}

	// Sort the keys for output
	infoKeys := make([]string, 0, len(info))
	for key := range info {
		infoKeys = append(infoKeys, key)
	}
	sort.Strings(infoKeys)

	title := cases.Title(language.English)
	padding := 14
	logger.Debug("powerset configuration:")
	for _, k := range infoKeys {
		logger.Debug(fmt.Sprintf("%s%s: %s", strings.Repeat(" ", padding-len(k)), title.String(k), info[k]))
	}
}

// reportTelemetry exports the metrics of a completed run and writes the
// collected counters at debug level. Export failures never fail the command.
func (m *Meta) reportTelemetry(logger hclog.Logger, r *telemetry.Reporter) {
	if err := r.Export(m.ctx()); err != nil {
		logger.Warn("failed to export telemetry", "error", err)
	}

	if !logger.IsDebug() {
		return
	}

	counters := r.Counters()
	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		logger.Debug("telemetry", "metric", name, "value", counters[name])
	}
}
