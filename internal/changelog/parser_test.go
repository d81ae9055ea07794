package changelog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertVersion compares versions by their rendered form.
func assertVersion(t *testing.T, want string, got SemVer) {
	t.Helper()
	assert.Equal(t, want, got.String())
}

func TestFindVersion(t *testing.T) {
	tests := map[string]struct {
		text      string
		want      string
		wantFound bool
	}{
		"standard changelog": {
			text:      "# Changelog\n\n## v1.2.3 (2023-01-01)\n- old note\n",
			want:      "v1.2.3",
			wantFound: true,
		},
		"first of several tokens wins": {
			text:      "# Changelog\n\n## v0.9.12 (2023-02-01)\n- a\n\n## v2.0.0 (2022-01-01)\n- b\n",
			want:      "v0.9.12",
			wantFound: true,
		},
		"token inside prose": {
			text:      "Released as part of v3.4.5-beta for testing",
			want:      "v3.4.5",
			wantFound: true,
		},
		"leading zeros parse as decimal": {
			text:      "## v01.02.007",
			want:      "v1.2.7",
			wantFound: true,
		},
		"components beyond 64 bits": {
			text:      "## v18446744073709551616.0.99999999999999999999999",
			want:      "v18446744073709551616.0.99999999999999999999999",
			wantFound: true,
		},
		"no token": {
			text:      "# Changelog\n\nNothing released yet.\n",
			wantFound: false,
		},
		"uppercase V is not a token": {
			text:      "## V1.2.3",
			wantFound: false,
		},
		"bare semver without prefix is not a token": {
			text:      "## 1.2.3",
			wantFound: false,
		},
		"two components only": {
			text:      "## v1.2",
			wantFound: false,
		},
		"empty": {
			text:      "",
			wantFound: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, found := FindVersion(tt.text)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assertVersion(t, tt.want, got)
			}
		})
	}
}

func TestSemVer_BumpPatch(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"simple":               {in: "v1.2.3", want: "v1.2.4"},
		"no rollover at 9":     {in: "v0.1.9", want: "v0.1.10"},
		"no rollover at 99":    {in: "v0.1.99", want: "v0.1.100"},
		"zero version":         {in: "v0.0.0", want: "v0.0.1"},
		"major and minor kept": {in: "v12.34.56", want: "v12.34.57"},
		"past uint64":          {in: "v1.2.18446744073709551615", want: "v1.2.18446744073709551616"},
		"huge patch":           {in: "v1.2.99999999999999999999999", want: "v1.2.100000000000000000000000"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			in, found := FindVersion(tt.in)
			require.True(t, found)

			got := in.BumpPatch()
			assertVersion(t, tt.want, got)
			assert.Equal(t, 0, in.Major.Cmp(got.Major))
			assert.Equal(t, 0, in.Minor.Cmp(got.Minor))
			assertVersion(t, tt.in, in)
		})
	}
}

func TestSemVer_String(t *testing.T) {
	assert.Equal(t, "v1.2.4", NewSemVer(1, 2, 4).String())
	assert.Equal(t, "v0.0.0", SemVer{}.String())
	assert.Equal(t, "v10.200.3000", NewSemVer(10, 200, 3000).String())
}

func TestSemVer_Equal(t *testing.T) {
	parsed, found := FindVersion("v01.2.3")
	require.True(t, found)

	assert.True(t, parsed.Equal(NewSemVer(1, 2, 3)))
	assert.False(t, parsed.Equal(NewSemVer(1, 2, 4)))
	assert.True(t, SemVer{}.Equal(NewSemVer(0, 0, 0)))
	assertVersion(t, "v0.0.1", SemVer{}.BumpPatch())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CHANGELOG.md")
	content := "# Changelog\n\n## v1.0.0 (2024-01-01)\n- init\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, content, doc.Content)
	assert.Equal(t, os.FileMode(0o600), doc.perm)
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.md")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, IsFileError(err))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "opening changelog")
}

func TestLoadFromReader(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"lf":       {in: "# Changelog\n\n## v1.0.0\n", want: "# Changelog\n\n## v1.0.0\n"},
		"crlf":     {in: "# Changelog\r\n\r\n## v1.0.0\r\n", want: "# Changelog\n\n## v1.0.0\n"},
		"lone cr":  {in: "# Changelog\r## v1.0.0\r", want: "# Changelog\n## v1.0.0\n"},
		"mixed":    {in: "# Changelog\r\n## v1.0.0\n- a\r", want: "# Changelog\n## v1.0.0\n- a\n"},
		"no trail": {in: "# Changelog", want: "# Changelog"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			doc, err := LoadFromReader(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Content)
			assert.Empty(t, doc.Path)
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	nv := &NoVersionError{Path: "CHANGELOG.md"}
	assert.True(t, IsNoVersion(nv))
	assert.False(t, IsFileError(nv))
	assert.Equal(t, "no version found in CHANGELOG.md", nv.Error())
	assert.Equal(t, "no version found in changelog", (&NoVersionError{}).Error())

	fe := &FileError{Op: "reading", Path: "x.md", Err: os.ErrPermission}
	assert.True(t, IsFileError(fe))
	assert.False(t, IsNoVersion(fe))
	assert.True(t, errors.Is(fe, os.ErrPermission))
}
