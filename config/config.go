// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	errHelper "github.com/hashicorp/powerset/helper/error"
	"github.com/hashicorp/powerset/helper/file"
	"github.com/hashicorp/powerset/helper/ptr"
	"github.com/hashicorp/powerset/powerset"
	"github.com/mitchellh/copystructure"
	"github.com/mitchellh/go-homedir"
)

// Config is the overall configuration of a powerset run. Values are built up
// from Default, then any configuration files, then command line flags.
type Config struct {

	// LogLevel is the level of the logs to emit.
	LogLevel string `hcl:"log_level,optional"`

	// LogJson enables log output in JSON format.
	LogJson bool `hcl:"log_json,optional"`

	// Mode is how input items are interpreted, either "string" or
	// "integer".
	Mode string `hcl:"mode,optional"`

	// Output is the configuration used to render subsets.
	Output *Output `hcl:"output,block"`

	// Filter is the configuration of the subset filters.
	Filter *Filter `hcl:"filter,block"`

	// Telemetry is the configuration used to setup metrics collection.
	Telemetry *Telemetry `hcl:"telemetry,block"`
}

// Output controls how accepted subsets are rendered.
type Output struct {

	// Format is either "space" or "array".
	Format string `hcl:"format,optional"`

	// IncludeEmpty controls whether the empty subset is emitted.
	IncludeEmpty *bool `hcl:"include_empty,optional"`
}

// Filter holds the optional subset filters.
type Filter struct {

	// MaxItems is the largest cardinality emitted.
	MaxItems *int `hcl:"max_items,optional"`

	// Sum is the required total of the included integer values. Setting it
	// forces integer mode.
	Sum *int64 `hcl:"sum,optional"`
}

// Telemetry holds the user specified configuration for metrics collection.
type Telemetry struct {

	// DisableHostname specifies if metric keys should be prefixed with the
	// local hostname.
	DisableHostname bool `hcl:"disable_hostname,optional"`

	// StatsiteAddr specifies the address of a statsite server to forward
	// metrics data to.
	StatsiteAddr string `hcl:"statsite_address,optional"`

	// StatsdAddr specifies the address of a statsd server to forward metrics
	// to.
	StatsdAddr string `hcl:"statsd_address,optional"`

	// DogStatsDAddr specifies the address of a DataDog statsd server to
	// forward metrics to.
	DogStatsDAddr string `hcl:"dogstatsd_address,optional"`

	// DogStatsDTags specifies a list of global tags that will be added to all
	// telemetry packets sent to DogStatsD.
	DogStatsDTags []string `hcl:"dogstatsd_tags,optional"`

	// PrometheusPushgateway is the address of a Prometheus Pushgateway which
	// receives the metrics of the run once it completes.
	PrometheusPushgateway string `hcl:"prometheus_pushgateway,optional"`

	// PrometheusTextfile is a path the metrics of the run are written to in
	// the Prometheus text format, for use with a textfile collector.
	PrometheusTextfile string `hcl:"prometheus_textfile,optional"`

	// DefaultLabels are added to every emitted metric.
	DefaultLabels map[string]string `hcl:"default_labels,optional"`
}

// PrometheusEnabled reports whether any Prometheus output is configured.
func (t *Telemetry) PrometheusEnabled() bool {
	return t != nil && (t.PrometheusPushgateway != "" || t.PrometheusTextfile != "")
}

const (
	// defaultLogLevel keeps stderr quiet unless something is wrong.
	defaultLogLevel = "warn"

	defaultMode   = "string"
	defaultFormat = "space"
)

// Default is used to generate a new default configuration.
func Default() *Config {
	return &Config{
		LogLevel: defaultLogLevel,
		Mode:     defaultMode,
		Output: &Output{
			Format:       defaultFormat,
			IncludeEmpty: ptr.Of(true),
		},
		Filter:    &Filter{},
		Telemetry: &Telemetry{},
	}
}

// Merge is used to merge two configurations. Values set in b take precedence
// and neither input is modified.
func (c *Config) Merge(b *Config) *Config {
	if c == nil {
		return b.copy()
	}

	result := c.copy()
	if b == nil {
		return result
	}

	if b.LogLevel != "" {
		result.LogLevel = b.LogLevel
	}
	if b.LogJson {
		result.LogJson = true
	}
	if b.Mode != "" {
		result.Mode = b.Mode
	}

	if b.Output != nil {
		result.Output = result.Output.merge(b.Output)
	}

	if b.Filter != nil {
		result.Filter = result.Filter.merge(b.Filter)
	}

	if b.Telemetry != nil {
		result.Telemetry = result.Telemetry.merge(b.Telemetry)
	}

	return result
}

func (c *Config) copy() *Config {
	if c == nil {
		return nil
	}

	i, err := copystructure.Copy(c)
	if err != nil {
		panic(err.Error())
	}
	return i.(*Config)
}

// Validate checks every configured value and returns all the problems found.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.LogLevel != "" && hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		result = multierror.Append(result, fmt.Errorf("invalid log_level %q", c.LogLevel))
	}

	if c.Mode != "" {
		if _, err := powerset.ParseMode(c.Mode); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if c.Output != nil {
		result = multierror.Append(result, c.Output.validate())
	}

	if c.Filter != nil {
		result = multierror.Append(result, c.Filter.validate())
	}

	return errHelper.FormattedMultiError(result)
}

// Options freezes the configuration into the options used by a single
// enumeration. The configuration should be validated first.
func (c *Config) Options() (powerset.Options, error) {
	var opts powerset.Options

	mode, err := powerset.ParseMode(c.Mode)
	if err != nil {
		return opts, err
	}
	opts.Mode = mode
	opts.IncludeEmpty = true

	if c.Output != nil {
		if c.Output.Format != "" {
			format, err := powerset.ParseFormat(c.Output.Format)
			if err != nil {
				return opts, err
			}
			opts.Format = format
		}
		if c.Output.IncludeEmpty != nil {
			opts.IncludeEmpty = *c.Output.IncludeEmpty
		}
	}

	if c.Filter != nil {
		if c.Filter.MaxItems != nil {
			opts.MaxItems = ptr.Of(*c.Filter.MaxItems)
		}
		if c.Filter.Sum != nil {
			opts.Sum = ptr.Of(*c.Filter.Sum)
			opts.Mode = powerset.ModeInteger
		}
	}

	return opts, nil
}

func (o *Output) merge(b *Output) *Output {
	if o == nil {
		return b
	}

	result := *o

	if b.Format != "" {
		result.Format = b.Format
	}
	if b.IncludeEmpty != nil {
		result.IncludeEmpty = ptr.Of(*b.IncludeEmpty)
	}

	return &result
}

func (o *Output) validate() *multierror.Error {
	var result *multierror.Error

	if o.Format != "" {
		if _, err := powerset.ParseFormat(o.Format); err != nil {
			result = multierror.Append(result, fmt.Errorf("output -> %v", err))
		}
	}
	return result
}

func (f *Filter) merge(b *Filter) *Filter {
	if f == nil {
		return b
	}

	result := *f

	if b.MaxItems != nil {
		result.MaxItems = ptr.Of(*b.MaxItems)
	}
	if b.Sum != nil {
		result.Sum = ptr.Of(*b.Sum)
	}

	return &result
}

func (f *Filter) validate() *multierror.Error {
	var result *multierror.Error

	if f.MaxItems != nil {
		switch {
		case *f.MaxItems < 0:
			result = multierror.Append(result, errors.New("filter -> max_items must not be negative"))
		case *f.MaxItems > powerset.MaxItems:
			result = multierror.Append(result, fmt.Errorf("filter -> %w: max_items %d must not exceed %d",
				powerset.ErrItemLimitExceeded, *f.MaxItems, powerset.MaxItems))
		}
	}
	if f.Sum != nil && *f.Sum < 0 {
		result = multierror.Append(result, errors.New("filter -> sum must not be negative"))
	}
	return result
}

func (t *Telemetry) merge(b *Telemetry) *Telemetry {
	if t == nil {
		return b
	}

	result := *t

	if b.DisableHostname {
		result.DisableHostname = true
	}
	if b.StatsiteAddr != "" {
		result.StatsiteAddr = b.StatsiteAddr
	}
	if b.StatsdAddr != "" {
		result.StatsdAddr = b.StatsdAddr
	}
	if b.DogStatsDAddr != "" {
		result.DogStatsDAddr = b.DogStatsDAddr
	}
	if b.DogStatsDTags != nil {
		result.DogStatsDTags = append(result.DogStatsDTags, b.DogStatsDTags...)
	}
	if b.PrometheusPushgateway != "" {
		result.PrometheusPushgateway = b.PrometheusPushgateway
	}
	if b.PrometheusTextfile != "" {
		result.PrometheusTextfile = b.PrometheusTextfile
	}
	if len(b.DefaultLabels) != 0 {
		labels := make(map[string]string, len(t.DefaultLabels)+len(b.DefaultLabels))
		for k, v := range t.DefaultLabels {
			labels[k] = v
		}
		for k, v := range b.DefaultLabels {
			labels[k] = v
		}
		result.DefaultLabels = labels
	}

	return &result
}

func parseFile(file string, cfg *Config) error {
	return hclsimple.DecodeFile(file, nil, cfg)
}

// LoadPaths loads every path in order on top of the default configuration.
// All invalid files are reported together.
func LoadPaths(paths []string) (*Config, error) {
	cfg := Default()

	var validationErr *multierror.Error

	for _, path := range paths {
		current, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("error loading configuration from %s: %w", path, err)
		}

		if err := current.Validate(); err != nil {
			errPrefix := fmt.Sprintf("%s:", path)
			validationErr = multierror.Append(validationErr, multierror.Prefix(err, errPrefix))

			// Continue looping so we can validate other files.
			continue
		}

		cfg = cfg.Merge(current)
	}

	if validationErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validationErr)
	}

	return cfg, nil
}

// Load loads the configuration at the given path, regardless if its a file or
// directory.
func Load(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	fi, err := os.Stat(expanded)
	if err != nil {
		return nil, err
	}

	if fi.IsDir() {
		return loadDir(expanded)
	}

	cleaned := filepath.Clean(expanded)

	cfg := &Config{}
	if err := parseFile(cleaned, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %v", cleaned, err)
	}
	return cfg, nil
}

// loadDir loads all the configurations in the given directory in alphabetical
// order.
func loadDir(dir string) (*Config, error) {

	files, err := file.GetFileListFromDir(dir, ".hcl", ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to load config directory: %v", err)
	}

	// Fast-path if we have no files
	if len(files) == 0 {
		return &Config{}, nil
	}

	sort.Strings(files)

	var result *Config
	for _, f := range files {

		cfg := &Config{}

		if err := parseFile(f, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file %s: %v", f, err)
		}

		if result == nil {
			result = cfg
		} else {
			result = result.Merge(cfg)
		}
	}

	return result, nil
}
