package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfigValues(t *testing.T) {
	valid := func() Configuration {
		return Configuration{
			ChangelogPath: "CHANGELOG.md",
			Heading:       "# Changelog",
			EntryMessage:  "Minor update",
		}
	}

	tests := map[string]struct {
		mutate    func(*Configuration)
		wantField string
	}{
		"valid": {
			mutate: func(*Configuration) {},
		},
		"empty changelog path": {
			mutate:    func(c *Configuration) { c.ChangelogPath = "  " },
			wantField: "changelog_path",
		},
		"empty heading": {
			mutate:    func(c *Configuration) { c.Heading = "" },
			wantField: "heading",
		},
		"multi-line heading": {
			mutate:    func(c *Configuration) { c.Heading = "# A\n# B" },
			wantField: "heading",
		},
		"heading with trailing newline": {
			mutate: func(c *Configuration) { c.Heading = "# Changelog\n" },
		},
		"multi-line entry message": {
			mutate:    func(c *Configuration) { c.EntryMessage = "one\ntwo" },
			wantField: "entry_message",
		},
		"empty entry message falls back to default": {
			mutate: func(c *Configuration) { c.EntryMessage = "" },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := ValidateConfigValues(&cfg, "test.yml")
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestValidateYAMLSyntaxFromBytes(t *testing.T) {
	tests := map[string]struct {
		data    string
		wantErr bool
	}{
		"valid":      {data: "heading: \"# Changelog\"\n"},
		"empty":      {data: "   \n"},
		"bad indent": {data: "a: 1\n b: 2\n", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := ValidateYAMLSyntaxFromBytes([]byte(tt.data), "cfg.yml")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Positive(t, ve.Line)
		})
	}
}

func TestValidateYAMLSyntax_MissingFile(t *testing.T) {
	assert.NoError(t, ValidateYAMLSyntax(filepath.Join(t.TempDir(), "absent.yml")))
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "f.yml:3:4: bad", (&ValidationError{FilePath: "f.yml", Line: 3, Column: 4, Message: "bad"}).Error())
	assert.Equal(t, "f.yml: field 'heading': is required", (&ValidationError{FilePath: "f.yml", Field: "heading", Message: "is required"}).Error())
	assert.Equal(t, "f.yml: bad", (&ValidationError{FilePath: "f.yml", Message: "bad"}).Error())
}
