// Package cli implements the bumplog command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	clierrors "github.com/ariel-frischer/bumplog/internal/errors"
	"github.com/ariel-frischer/bumplog/internal/git"
	"github.com/ariel-frischer/bumplog/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Command groups
const (
	GroupRelease = "release"
	GroupInfo    = "info"
)

// globalOptions holds persistent flags and per-run state shared by all commands.
type globalOptions struct {
	changelogPath string
	configPath    string
	debug         bool

	logger *zap.Logger
	now    func() time.Time
}

// NewRootCmd builds a fresh bumplog command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(time.Now)
}

func newRootCmd(now func() time.Time) *cobra.Command {
	opts := &globalOptions{logger: zap.NewNop(), now: now}
	rootFlags := &bumpFlags{}

	rootCmd := &cobra.Command{
		Use:   "bumplog",
		Short: "Bump the patch version in CHANGELOG.md",
		Long: `bumplog increments the patch component of the first vX.Y.Z token in
CHANGELOG.md and inserts a dated entry right after the "# Changelog" heading.

Run without a subcommand it performs the bump, so it can be dropped into a
release workflow as a single step. Exit status is 0 on success and 1 when the
changelog contains no version.`,
		Example: `  # Bump CHANGELOG.md in the current directory
  bumplog

  # Preview without writing
  bumplog bump --dry-run

  # Bump and tag the release commit
  bumplog bump --tag`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.logger = logging.New(opts.debug, cmd.ErrOrStderr())
			git.SetDebugLogger(logging.Printf(opts.logger))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
			git.SetDebugLogger(nil)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBump(cmd, opts, rootFlags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.changelogPath, "changelog", "f", "", "Changelog file (default from config: CHANGELOG.md)")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Project config file (default .bumplog.yml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Debug logging to stderr")
	addBumpFlags(rootCmd, rootFlags)
	rootCmd.SetFlagErrorFunc(flagError)

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupInfo, Title: "Information Commands:"},
	)

	rootCmd.AddCommand(
		newBumpCmd(opts),
		newCurrentCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// flagError reports flag parse errors with the usage line of the failing command.
// Subcommands inherit it from the root.
func flagError(cmd *cobra.Command, err error) error {
	return exitWith(ExitInvalidArguments, clierrors.NewArgumentErrorWithUsage(
		err.Error(),
		cmd.UseLine(),
		fmt.Sprintf("Run '%s --help' for the list of flags", cmd.CommandPath()),
	))
}

// Run executes the command tree with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return exitCode(cmd.Execute(), stderr)
}

// Execute runs bumplog against the process arguments and standard streams.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// exitCode reports err on stderr, if needed, and maps it to an exit code.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return ExitSuccess
	}

	code := ExitInvalidArguments
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
		if exitErr.Err == nil {
			return code
		}
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(stderr, cliErr)
		return code
	}

	// Remaining errors come from cobra argument parsing.
	fmt.Fprintf(stderr, "Error: %v\n", err)
	fmt.Fprintln(stderr, "Run 'bumplog --help' for usage.")
	return code
}
