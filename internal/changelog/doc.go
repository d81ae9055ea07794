// Package changelog bumps the patch version recorded in a markdown CHANGELOG.
//
// This package implements:
//   - Locating the first vX.Y.Z token in the changelog text
//   - Incrementing its patch component
//   - Rendering a dated entry and inserting it after the "# Changelog" heading
//   - Rewriting the changelog file, in place or via temp file + rename
//
// The document is treated as plain text. Only the first version token and the
// first heading occurrence are ever considered; nothing else in the file is
// parsed or validated.
package changelog
