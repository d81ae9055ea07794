package changelog

// CurrentVersion returns the first version token in the changelog at path
// without modifying the file.
func CurrentVersion(path string) (SemVer, error) {
	doc, err := Load(path)
	if err != nil {
		return SemVer{}, err
	}

	v, found := FindVersion(doc.Content)
	if !found {
		return SemVer{}, &NoVersionError{Path: path}
	}
	return v, nil
}
