package config

// ProjectConfigPath returns the path to the project-level config file.
// This is always .bumplog.yml relative to the current directory.
func ProjectConfigPath() string {
	return ".bumplog.yml"
}

// LegacyProjectConfigPath returns the path to the legacy project-level JSON config file.
func LegacyProjectConfigPath() string {
	return ".bumplog.json"
}
