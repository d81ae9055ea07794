package config

import "github.com/ariel-frischer/bumplog/internal/changelog"

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# bumplog configuration
# Environment variables (BUMPLOG_<KEY>) override these values; flags override both.

changelog_path: CHANGELOG.md          # Changelog file, relative to the working directory
heading: "# Changelog"                # New entries are inserted right after this line
entry_message: "Minor update, auto-version bump for release"
atomic_write: true                    # Write via temp file + rename (false = truncate in place)
strict_heading: false                 # Fail when the heading is missing instead of a silent no-op

# Git tagging
git_tag: false                        # Tag HEAD with the new version after bumping
tag_message: ""                       # Non-empty creates an annotated tag
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_path": "CHANGELOG.md",
		"heading":        changelog.DefaultHeading,
		"entry_message":  changelog.DefaultDescription,
		"atomic_write":   true,
		"strict_heading": false,
		"git_tag":        false,
		"tag_message":    "",
	}
}
