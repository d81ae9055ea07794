package changelog

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"regexp"
	"strings"
)

// versionPattern matches the first vX.Y.Z token anywhere in the text.
var versionPattern = regexp.MustCompile(`v(\d+)\.(\d+)\.(\d+)`)

// NoVersionError is returned when the changelog contains no vX.Y.Z token.
type NoVersionError struct {
	Path string
}

func (e *NoVersionError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("no version found in %s", e.Path)
	}
	return "no version found in changelog"
}

// FileError reports a failure to open, read or write the changelog file.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s changelog %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Document is the raw text of a changelog file.
type Document struct {
	Path    string
	Content string
	perm    os.FileMode
}

// Load reads the whole changelog file at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Op: "opening", Path: path, Err: err}
	}
	defer f.Close()

	doc, err := LoadFromReader(f)
	if err != nil {
		return nil, &FileError{Op: "reading", Path: path, Err: err}
	}
	doc.Path = path

	if info, err := f.Stat(); err == nil {
		doc.perm = info.Mode().Perm()
	}

	return doc, nil
}

// LoadFromReader reads a changelog from an io.Reader.
// Line endings are normalized to "\n" ("\r\n" and lone "\r" both become "\n"),
// so a saved document always uses LF.
// The returned Document has no path and cannot be saved until one is set.
func LoadFromReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Document{Content: normalizeNewlines(string(data))}, nil
}

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	return newlineReplacer.Replace(s)
}

// FindVersion returns the first vX.Y.Z token in text.
// The bool is false when no token exists.
func FindVersion(text string) (SemVer, bool) {
	m := versionPattern.FindStringSubmatch(text)
	if m == nil {
		return SemVer{}, false
	}
	return semVerFromGroups(m[1], m[2], m[3]), true
}

// semVerFromGroups parses the digit groups of a matched token.
// The pattern only admits ASCII digits, so parsing cannot fail.
func semVerFromGroups(major, minor, patch string) SemVer {
	var parts [3]*big.Int
	for i, g := range []string{major, minor, patch} {
		parts[i], _ = new(big.Int).SetString(g, 10)
	}
	return SemVer{Major: parts[0], Minor: parts[1], Patch: parts[2]}
}

// IsNoVersion reports whether err is, or wraps, a NoVersionError.
func IsNoVersion(err error) bool {
	var nv *NoVersionError
	return errors.As(err, &nv)
}

// IsFileError reports whether err is, or wraps, a FileError.
func IsFileError(err error) bool {
	var fe *FileError
	return errors.As(err, &fe)
}
