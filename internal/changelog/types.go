package changelog

import (
	"fmt"
	"math/big"
	"time"
)

const (
	// DefaultHeading is the top-level heading line new entries are inserted after.
	DefaultHeading = "# Changelog"

	// DefaultDescription is the bullet written under every generated entry.
	DefaultDescription = "Minor update, auto-version bump for release"

	// DateLayout formats entry dates as ISO-8601 calendar dates (YYYY-MM-DD).
	DateLayout = "2006-01-02"
)

// SemVer is a major.minor.patch triple read from a vX.Y.Z token.
// Components have no upper bound. Pre-release and build metadata are not supported.
// A nil component reads as zero.
type SemVer struct {
	Major *big.Int
	Minor *big.Int
	Patch *big.Int
}

// NewSemVer builds a SemVer from fixed-size components.
func NewSemVer(major, minor, patch uint64) SemVer {
	return SemVer{
		Major: new(big.Int).SetUint64(major),
		Minor: new(big.Int).SetUint64(minor),
		Patch: new(big.Int).SetUint64(patch),
	}
}

// String renders the version with its "v" prefix and no padding, e.g. "v1.2.4".
func (v SemVer) String() string {
	return fmt.Sprintf("v%s.%s.%s", component(v.Major), component(v.Minor), component(v.Patch))
}

// Equal reports whether v and o have the same components.
func (v SemVer) Equal(o SemVer) bool {
	return component(v.Major).Cmp(component(o.Major)) == 0 &&
		component(v.Minor).Cmp(component(o.Minor)) == 0 &&
		component(v.Patch).Cmp(component(o.Patch)) == 0
}

// BumpPatch returns v with its patch component incremented by one.
// Major and minor never change; there is no rollover and no limit.
// v itself is not modified.
func (v SemVer) BumpPatch() SemVer {
	return SemVer{
		Major: new(big.Int).Set(component(v.Major)),
		Minor: new(big.Int).Set(component(v.Minor)),
		Patch: new(big.Int).Add(component(v.Patch), big.NewInt(1)),
	}
}

func component(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}
	return x
}

// Entry is a generated changelog section for a single bumped version.
type Entry struct {
	Version     SemVer
	Date        string
	Description string
}

// NewEntry builds an entry stamped with date's calendar day.
// An empty description falls back to DefaultDescription.
func NewEntry(v SemVer, date time.Time, description string) Entry {
	if description == "" {
		description = DefaultDescription
	}
	return Entry{
		Version:     v,
		Date:        date.Format(DateLayout),
		Description: description,
	}
}

// WriteMode selects how a Document is persisted.
type WriteMode int

const (
	// WriteAtomic writes a sibling temp file and renames it over the original.
	WriteAtomic WriteMode = iota
	// WriteInPlace truncates the original file and writes through the same path.
	WriteInPlace
)

// String returns the config name of the write mode.
func (m WriteMode) String() string {
	switch m {
	case WriteAtomic:
		return "atomic"
	case WriteInPlace:
		return "in-place"
	default:
		return "unknown"
	}
}

// BumpOptions controls a single bump run.
type BumpOptions struct {
	// Heading is the heading line (without trailing newline) the entry goes after.
	// Empty means DefaultHeading.
	Heading string
	// Description is the entry bullet text. Empty means DefaultDescription.
	Description string
	// StrictHeading turns a missing heading into a HeadingNotFoundError
	// instead of a silent no-op insertion.
	StrictHeading bool
	// DryRun computes the result without writing the file (BumpFile only).
	DryRun bool
	// WriteMode selects how BumpFile persists the document.
	WriteMode WriteMode
	// Now returns the current time. Nil means time.Now.
	Now func() time.Time
}

func (o BumpOptions) heading() string {
	if o.Heading == "" {
		return DefaultHeading
	}
	return o.Heading
}

func (o BumpOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// Result describes the outcome of a bump.
type Result struct {
	Previous SemVer
	Next     SemVer
	Entry    Entry
	// HeadingFound is false when the heading was absent and the content
	// was left unchanged.
	HeadingFound bool
	// Content is the full changelog text after insertion.
	Content string
}
