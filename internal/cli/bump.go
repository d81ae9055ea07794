package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ariel-frischer/bumplog/internal/changelog"
	"github.com/ariel-frischer/bumplog/internal/config"
	clierrors "github.com/ariel-frischer/bumplog/internal/errors"
	"github.com/ariel-frischer/bumplog/internal/git"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NoVersionMessage is printed on stdout when the changelog has no version token.
const NoVersionMessage = "No version found in changelog!"

// bumpFlags are the flags accepted by both the root command and `bump`.
type bumpFlags struct {
	dryRun        bool
	message       string
	tag           bool
	tagMessage    string
	strictHeading bool
	inPlace       bool
}

func addBumpFlags(cmd *cobra.Command, f *bumpFlags) {
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print the bumped changelog instead of writing it")
	cmd.Flags().StringVarP(&f.message, "message", "m", "", "Entry description (default from config)")
	cmd.Flags().BoolVar(&f.tag, "tag", false, "Create a git tag for the new version after writing")
	cmd.Flags().StringVar(&f.tagMessage, "tag-message", "", "Annotated tag message (implies --tag)")
	cmd.Flags().BoolVar(&f.strictHeading, "strict-heading", false, "Fail when the changelog heading is missing")
	cmd.Flags().BoolVar(&f.inPlace, "in-place", false, "Truncate and rewrite the file directly instead of temp file + rename")
}

func newBumpCmd(opts *globalOptions) *cobra.Command {
	f := &bumpFlags{}

	cmd := &cobra.Command{
		Use:   "bump",
		Short: "Increment the patch version and add a dated entry",
		Long: `Increment the patch component of the first vX.Y.Z token in the changelog
and insert a new entry after the "# Changelog" heading:

  ## v1.2.4 (2024-01-15)
  - Minor update, auto-version bump for release

Only the first version token is read; later ones are ignored. Running bump
twice adds two entries. When no version exists the file is left untouched,
"No version found in changelog!" is printed and the exit status is 1.`,
		Example: `  bumplog bump
  bumplog bump --changelog docs/CHANGELOG.md
  bumplog bump -m "Dependency updates" --tag`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBump(cmd, opts, f)
		},
	}
	cmd.GroupID = GroupRelease
	addBumpFlags(cmd, f)

	return cmd
}

// loadConfig loads the layered configuration and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: opts.configPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, exitWith(ExitInvalidArguments, clierrors.ConfigParseError(err))
	}

	if opts.changelogPath != "" {
		cfg.ChangelogPath = opts.changelogPath
	}
	return cfg, nil
}

// applyBumpFlags layers explicitly set bump flags over the configuration.
func applyBumpFlags(cmd *cobra.Command, cfg *config.Configuration, f *bumpFlags) {
	flags := cmd.Flags()
	if flags.Changed("message") {
		cfg.EntryMessage = f.message
	}
	if f.strictHeading {
		cfg.StrictHeading = true
	}
	if f.inPlace {
		cfg.AtomicWrite = false
	}
	if f.tag {
		cfg.GitTag = true
	}
	if flags.Changed("tag-message") {
		cfg.GitTag = true
		cfg.TagMessage = f.tagMessage
	}
}

func runBump(cmd *cobra.Command, opts *globalOptions, f *bumpFlags) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	applyBumpFlags(cmd, cfg, f)

	bumpOpts := cfg.BumpOptions()
	bumpOpts.DryRun = f.dryRun
	bumpOpts.Now = opts.now

	log := opts.logger.With(zap.String("path", cfg.ChangelogPath))
	tagging := cfg.GitTag && !f.dryRun
	if tagging {
		if err := checkTaggable(cfg); err != nil {
			return err
		}
	}

	log.Debug("bumping changelog",
		zap.Stringer("write_mode", bumpOpts.WriteMode),
		zap.Bool("dry_run", bumpOpts.DryRun),
		zap.Bool("strict_heading", bumpOpts.StrictHeading))

	res, err := changelog.BumpFile(cfg.ChangelogPath, bumpOpts)
	if err != nil {
		return bumpError(cmd, cfg, err)
	}

	log.Debug("version bumped",
		zap.Stringer("previous", res.Previous),
		zap.Stringer("next", res.Next),
		zap.String("date", res.Entry.Date))
	if !res.HeadingFound {
		log.Warn("heading not found, changelog content left unchanged", zap.String("heading", cfg.Heading))
	}

	out := cmd.OutOrStdout()
	if f.dryRun {
		fmt.Fprint(out, res.Content)
		_ = changelog.FormatTransition(res, cmd.ErrOrStderr(), changelog.FormatOptions{Plain: !isTerminal(cmd.ErrOrStderr())})
	}
	fmt.Fprintf(out, "Bumped version to %s\n", res.Next)

	if tagging {
		return tagRelease(cfg, res.Next, opts)
	}
	return nil
}

// bumpError maps changelog errors to exit codes and user-facing output.
func bumpError(cmd *cobra.Command, cfg *config.Configuration, err error) error {
	var (
		noVersion *changelog.NoVersionError
		noHeading *changelog.HeadingNotFoundError
		fileErr   *changelog.FileError
	)

	switch {
	case errors.As(err, &noVersion):
		fmt.Fprintln(cmd.OutOrStdout(), NoVersionMessage)
		return NewExitError(ExitNoVersion)
	case errors.As(err, &noHeading):
		return exitWith(ExitHeadingNotFound, clierrors.HeadingNotFound(noHeading.Heading, cfg.ChangelogPath))
	case errors.As(err, &fileErr):
		return exitWith(ExitFileAccess, clierrors.ChangelogAccess(fileErr.Path, err))
	default:
		return exitWith(ExitFileAccess, clierrors.Wrap(err, clierrors.Runtime))
	}
}

// checkTaggable fails before anything is written when the release cannot
// be tagged: no repository, or the next version's tag already exists.
// Missing or version-less changelogs are left to the bump itself.
func checkTaggable(cfg *config.Configuration) error {
	dir := filepath.Dir(cfg.ChangelogPath)
	if !git.IsGitRepository(dir) {
		return exitWith(ExitGitTag, clierrors.GitNotRepository(fmt.Errorf("no repository found from %s", dir)))
	}

	current, err := changelog.CurrentVersion(cfg.ChangelogPath)
	if err != nil {
		return nil
	}
	next := current.BumpPatch().String()

	exists, err := git.TagExists(dir, next)
	if err != nil {
		return exitWith(ExitGitTag, clierrors.GitTagFailed(next, err))
	}
	if exists {
		return exitWith(ExitGitTag, clierrors.GitTagExists(next))
	}
	return nil
}

// tagRelease commits the bumped changelog and tags that commit.
func tagRelease(cfg *config.Configuration, v changelog.SemVer, opts *globalOptions) error {
	tag := v.String()

	hash, err := git.CommitFile(cfg.ChangelogPath, git.CommitOptions{
		Message: "Release " + tag,
		Now:     opts.now,
	})
	if err != nil {
		return exitWith(ExitGitTag, clierrors.GitCommitFailed(cfg.ChangelogPath, err))
	}

	if _, err := git.CreateTag(filepath.Dir(cfg.ChangelogPath), tag, git.TagOptions{Message: cfg.TagMessage, Now: opts.now}); err != nil {
		return exitWith(ExitGitTag, clierrors.GitTagFailed(tag, err))
	}

	opts.logger.Debug("tagged release", zap.String("tag", tag), zap.Stringer("commit", hash))
	return nil
}
