package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/bumplog/internal/changelog"
	clierrors "github.com/ariel-frischer/bumplog/internal/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func newCurrentCmd(opts *globalOptions) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Print the version the next bump would start from",
		Long: `Print the first vX.Y.Z token in the changelog without modifying it.
This is the version "bumplog bump" increments.`,
		Example: `  bumplog current
  bumplog current --plain --changelog docs/CHANGELOG.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCurrent(cmd, opts, plain)
		},
	}
	cmd.GroupID = GroupInfo
	cmd.Flags().BoolVar(&plain, "plain", false, "Plain output (no colors)")

	return cmd
}

func runCurrent(cmd *cobra.Command, opts *globalOptions, plain bool) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	v, err := changelog.CurrentVersion(cfg.ChangelogPath)
	if err != nil {
		switch {
		case changelog.IsNoVersion(err):
			fmt.Fprintln(cmd.OutOrStdout(), NoVersionMessage)
			return NewExitError(ExitNoVersion)
		case changelog.IsFileError(err):
			return exitWith(ExitFileAccess, clierrors.ChangelogAccess(cfg.ChangelogPath, err))
		default:
			return exitWith(ExitFileAccess, clierrors.Wrap(err, clierrors.Runtime))
		}
	}

	opts.logger.Debug("current version", zap.String("path", cfg.ChangelogPath), zap.Stringer("version", v))

	out := cmd.OutOrStdout()
	return changelog.FormatVersion(v, out, changelog.FormatOptions{Plain: plain || !isTerminal(out)})
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
