// Package fonts supplies TTF data for the UI: the embedded Go fonts by default, or a
// font file found under assets/fonts by name.
package fonts

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Exts are the font file extensions considered when scanning.
var Exts = []string{".ttf", ".otf"}

// Embedded font names accepted by Load.
const (
	Regular = "go-regular"
	Bold    = "go-bold"
)

// BaseDirs returns candidate base directories for fonts (relative to process cwd).
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// Embedded returns the TTF data of an embedded font, or nil for unknown names.
func Embedded(name string) []byte {
	switch name {
	case "", Regular:
		return goregular.TTF
	case Bold:
		return gobold.TTF
	}
	return nil
}

// Load returns TTF data for nameOrPath: an embedded font name, a file path, or a
// search term resolved with FindFont. The second result is the source it came from.
func Load(nameOrPath string) ([]byte, string, error) {
	nameOrPath = strings.TrimSpace(nameOrPath)
	if data := Embedded(nameOrPath); data != nil {
		if nameOrPath == "" {
			nameOrPath = Regular
		}
		return data, nameOrPath, nil
	}
	if data, err := os.ReadFile(nameOrPath); err == nil {
		return data, nameOrPath, nil
	}
	for _, term := range SearchCandidates(nameOrPath) {
		_, full, err := FindFont(term)
		if err != nil {
			continue
		}
		data, err := os.ReadFile(full)
		if err != nil {
			return nil, "", err
		}
		return data, full, nil
	}
	return nil, "", os.ErrNotExist
}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf").
// Paths use forward slashes. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range Exts {
			if ext == e {
				rel, err := filepath.Rel(dir, path)
				if err != nil {
					return err
				}
				out = append(out, filepath.ToSlash(rel))
				return nil
			}
		}
		return nil
	})
	return out, err
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// SearchCandidates returns search terms to try in order.
// Example: "Inter/Inter-Regular.ttf" -> ["Inter/Inter-Regular.ttf", "Inter", "Inter/Inter", "Inter/Inter-Regular"].
func SearchCandidates(pathOrName string) []string {
	seen := map[string]bool{pathOrName: true}
	candidates := []string{pathOrName}
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			candidates = append(candidates, s)
		}
	}
	// First path segment
	if i := strings.IndexAny(pathOrName, "/\\"); i > 0 {
		add(pathOrName[:i])
	}
	// Family before the style suffix
	if i := strings.Index(pathOrName, "-"); i > 0 {
		add(pathOrName[:i])
	}
	base := pathOrName
	for _, ext := range Exts {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			add(base[:len(base)-len(ext)])
			break
		}
	}
	return candidates
}

// FindFont searches dirs (BaseDirs when none given) for a font file whose path contains
// search, ignoring case, spaces, dashes and underscores. It prefers a "Regular" file.
func FindFont(search string, dirs ...string) (relPath string, fullPath string, err error) {
	norm := normalizeForMatch(search)
	if norm == "" {
		return "", "", os.ErrNotExist
	}
	if len(dirs) == 0 {
		dirs = BaseDirs()
	}
	var candidates []struct{ rel, full string }
	for _, base := range dirs {
		list, walkErr := ScanDir(base)
		if walkErr != nil || len(list) == 0 {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				full := filepath.Join(base, filepath.FromSlash(rel))
				candidates = append(candidates, struct{ rel, full string }{rel, full})
			}
		}
	}
	if len(candidates) == 0 {
		return "", "", os.ErrNotExist
	}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c.rel), "regular") {
			return c.rel, c.full, nil
		}
	}
	return candidates[0].rel, candidates[0].full, nil
}
