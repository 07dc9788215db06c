package domain

import (
	"path"
	"slices"
	"strings"
)

// DefaultYAMLExtensions are the extensions the YAML checker matches when the
// config does not override them. ".yml" is absent so existing setups keep
// linting the same files; repositories opt in through "extensions".
var DefaultYAMLExtensions = []string{".yaml"}

// Extension returns the extension of file: the suffix of its base name
// starting at the last ".", or "" if there is none. A leading dot on its own
// (".yamllint") is a name, not an extension.
func Extension(file string) string {
	base := path.Base(file)
	base = strings.TrimLeft(base, ".")
	idx := strings.LastIndexByte(base, '.')
	if idx < 0 {
		return ""
	}
	return base[idx:]
}

// FilterByExtension returns the files whose extension exactly matches one
// of exts. Matching is case-sensitive. Order and duplicates are preserved and
// the input slice is never modified.
func FilterByExtension(files []string, exts []string) []string {
	var matched []string
	for _, f := range files {
		ext := Extension(f)
		if ext == "" {
			continue
		}
		if slices.Contains(exts, ext) {
			matched = append(matched, f)
		}
	}
	return matched
}
