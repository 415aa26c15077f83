// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/powerset/config"
	"github.com/hashicorp/powerset/helper/ptr"
	"github.com/hashicorp/powerset/powerset"
	"github.com/mitchellh/cli"
	"github.com/shoenig/test/must"
)

func TestMeta_readConfig(t *testing.T) {
	defaultConfig := config.Default()

	testCases := []struct {
		name      string
		args      []string
		want      *config.Config
		wantItems []string
	}{
		{
			name:      "no flags",
			args:      []string{"a", "b"},
			want:      defaultConfig,
			wantItems: []string{"a", "b"},
		},
		{
			name: "top level flags",
			args: []string{
				"-log-level", "DEBUG",
				"-log-json",
				"x",
			},
			want: defaultConfig.Merge(&config.Config{
				LogLevel: "DEBUG",
				LogJson:  true,
			}),
			wantItems: []string{"x"},
		},
		{
			name: "output flags",
			args: []string{"-a", "-E", "1"},
			want: defaultConfig.Merge(&config.Config{
				Output: &config.Output{
					Format:       "array",
					IncludeEmpty: ptr.Of(false),
				},
			}),
			wantItems: []string{"1"},
		},
		{
			name: "filter flags",
			args: []string{"-i", "-m", "2", "-s=7", "3", "4"},
			want: defaultConfig.Merge(&config.Config{
				Mode: "integer",
				Filter: &config.Filter{
					MaxItems: ptr.Of(2),
					Sum:      ptr.Of(int64(7)),
				},
			}),
			wantItems: []string{"3", "4"},
		},
		{
			name:      "flags stop at the first item",
			args:      []string{"-E", "a", "-m", "1"},
			want:      defaultConfig.Merge(&config.Config{Output: &config.Output{IncludeEmpty: ptr.Of(false)}}),
			wantItems: []string{"a", "-m", "1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := &Meta{Ui: cli.NewMockUi()}
			got, items, err := m.readConfig("test", tc.args)
			must.NoError(t, err)

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("unexpected config (-want +got):\n%s", diff)
			}
			must.Eq(t, tc.wantItems, items)
		})
	}
}

func TestMeta_readConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "powerset.hcl")
	must.NoError(t, os.WriteFile(path, []byte(`
mode = "integer"
output {
  format = "array"
}
filter {
  max_items = 4
}
`), 0o600))

	m := &Meta{Ui: cli.NewMockUi()}
	got, items, err := m.readConfig("test", []string{"-config", path, "-m", "1", "5"})
	must.NoError(t, err)

	must.Eq(t, "integer", got.Mode)
	must.Eq(t, "array", got.Output.Format)
	must.Eq(t, 1, *got.Filter.MaxItems)
	must.Eq(t, []string{"5"}, items)
}

func TestMeta_readConfigErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want error
	}{
		{
			name: "unknown option",
			args: []string{"-x", "a"},
			want: powerset.ErrInvalidOption,
		},
		{
			name: "missing argument",
			args: []string{"-m"},
			want: powerset.ErrMissingOptionArgument,
		},
		{
			name: "non integer argument",
			args: []string{"-m", "abc", "a"},
			want: powerset.ErrNonIntegerOptionArgument,
		},
		{
			name: "negative argument",
			args: []string{"-s", "-1", "a"},
			want: powerset.ErrNonIntegerOptionArgument,
		},
		{
			name: "invalid switch value",
			args: []string{"-a=foo", "a"},
			want: powerset.ErrInvalidOption,
		},
		{
			name: "bad flag syntax",
			args: []string{"---E", "a"},
			want: powerset.ErrInvalidOption,
		},
		{
			name: "limit exceeded",
			args: []string{"-m", "40", "a"},
			want: powerset.ErrItemLimitExceeded,
		},
		{
			name: "limit far exceeded",
			args: []string{"-m", "99999999999", "a"},
			want: powerset.ErrItemLimitExceeded,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := &Meta{Ui: cli.NewMockUi()}
			_, _, err := m.readConfig("test", tc.args)
			must.ErrorIs(t, err, tc.want)
		})
	}
}

func TestClassifyFlagError(t *testing.T) {
	must.ErrorIs(t, classifyFlagError(flag.ErrHelp), flag.ErrHelp)
	must.ErrorIs(t, classifyFlagError(errors.New("something odd")), powerset.ErrInvalidOption)

	err := classifyFlagError(errors.New("flag provided but not defined: -z"))
	must.ErrorIs(t, err, powerset.ErrInvalidOption)
	must.EqError(t, err, "invalid option: -z")
}

// TestClassifyFlagError_Messages runs real flag sets so a change in the flag
// package wording shows up as a misclassified error.
func TestClassifyFlagError_Messages(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want error
	}{
		{
			name: "undefined flag",
			args: []string{"-z"},
			want: powerset.ErrInvalidOption,
		},
		{
			name: "missing value",
			args: []string{"-n"},
			want: powerset.ErrMissingOptionArgument,
		},
		{
			name: "invalid value",
			args: []string{"-n", "x"},
			want: powerset.ErrNonIntegerOptionArgument,
		},
		{
			name: "invalid boolean value",
			args: []string{"-b=maybe"},
			want: powerset.ErrInvalidOption,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			flags := flag.NewFlagSet("test", flag.ContinueOnError)
			flags.SetOutput(io.Discard)
			flags.Int64("n", 0, "")
			flags.Bool("b", false, "")

			err := flags.Parse(tc.args)
			must.Error(t, err)

			classified := classifyFlagError(err)
			must.ErrorIs(t, classified, tc.want)
			if tc.want != powerset.ErrInvalidOption {
				must.False(t, errors.Is(classified, powerset.ErrInvalidOption))
			}
		})
	}
}
