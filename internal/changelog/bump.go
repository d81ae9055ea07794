package changelog

import (
	"errors"
	"fmt"
)

// HeadingNotFoundError is returned in strict mode when the changelog
// lacks the heading that new entries are inserted after.
type HeadingNotFoundError struct {
	Heading string
}

func (e *HeadingNotFoundError) Error() string {
	return fmt.Sprintf("heading %q not found in changelog", e.Heading)
}

// Bump computes the bumped changelog text without touching the filesystem.
//
// The first vX.Y.Z token in text is the bump source. Its patch component is
// incremented and a dated entry is inserted after the first heading line.
// Returns NoVersionError when text has no version token.
func Bump(text string, opts BumpOptions) (*Result, error) {
	prev, found := FindVersion(text)
	if !found {
		return nil, &NoVersionError{}
	}

	next := prev.BumpPatch()

	entry := NewEntry(next, opts.now(), opts.Description)
	content, ok := InsertAfterHeading(text, opts.heading(), entry.Render())
	if !ok && opts.StrictHeading {
		return nil, &HeadingNotFoundError{Heading: opts.heading()}
	}

	return &Result{
		Previous:     prev,
		Next:         next,
		Entry:        entry,
		HeadingFound: ok,
		Content:      content,
	}, nil
}

// BumpFile loads the changelog at path, bumps it and writes it back.
// With opts.DryRun the file is never written. On any error the file is
// left untouched, except for a failure during the write itself.
func BumpFile(path string, opts BumpOptions) (*Result, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}

	res, err := Bump(doc.Content, opts)
	if err != nil {
		var nv *NoVersionError
		if errors.As(err, &nv) {
			nv.Path = path
		}
		return nil, err
	}

	if opts.DryRun {
		return res, nil
	}

	doc.Content = res.Content
	if err := doc.Save(opts.WriteMode); err != nil {
		return nil, err
	}

	return res, nil
}
