// Package cli implements the seqgen command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.llib.dev/frameless/pkg/env"
	"go.llib.dev/frameless/pkg/errorkit"

	"go.llib.dev/seqgen/pkg/archive"
)

const (
	ErrNoArchive     errorkit.Error = "no archive given, use --archive or SEQGEN_ARCHIVE"
	ErrInvalidFormat errorkit.Error = "invalid output format"
)

// Env holds the defaults taken from the environment.
type Env struct {
	Archive string `env:"SEQGEN_ARCHIVE"`
	Limit   int    `env:"SEQGEN_LIMIT" default:"1000"`
	Format  string `env:"SEQGEN_FORMAT" default:"auto" enum:"auto;text;json;"`
}

func LoadEnv() (Env, error) {
	var e Env
	if err := env.Load(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// New makes the root command.
func New(e Env) *cobra.Command {
	root := &cobra.Command{
		Use:           "seqgen",
		Short:         "Generate instruction sequences from test templates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		generateCommand(e),
		runsCommand(e),
		showCommand(e),
	)
	return root
}

type archiveFlags struct {
	path string
}

func (f *archiveFlags) register(cmd *cobra.Command, e Env) {
	cmd.Flags().StringVar(&f.path, "archive", e.Archive, "path of the archive database")
}

func (f *archiveFlags) open() (*archive.Archive, error) {
	if f.path == "" {
		return nil, ErrNoArchive
	}
	return archive.Open(f.path)
}

type formatFlags struct {
	format string
}

func (f *formatFlags) register(cmd *cobra.Command, e Env) {
	cmd.Flags().StringVar(&f.format, "format", e.Format, "output format: auto, text or json")
}

// printer resolves the auto format by checking whether the output is a terminal.
func (f *formatFlags) printer(cmd *cobra.Command) (*printer, error) {
	out := cmd.OutOrStdout()
	switch f.format {
	case formatText, formatJSON:
		return &printer{out: out, format: f.format}, nil
	case formatAuto, "":
		format := formatJSON
		if file, ok := out.(*os.File); ok && isTerminal(file) {
			format = formatText
		}
		return &printer{out: out, format: format}, nil
	default:
		return nil, ErrInvalidFormat.F("%q", f.format)
	}
}

func closeArchive(a *archive.Archive, err *error) {
	if cerr := a.Close(); cerr != nil {
		*err = errorkit.Merge(*err, fmt.Errorf("closing archive: %w", cerr))
	}
}
