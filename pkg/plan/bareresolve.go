package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// resolveBareFilename resolves filePath relative to baseDir. A path that
// already carries a separator (or is absolute) is trusted as-is. A bare
// filename is checked at baseDir's root first, then — only if missing
// there — the tree is walked (skipping .git) for a unique match; an
// ambiguous or absent match leaves the original path untouched. Grounded
// on original_source/contextforge/utils/fs.py's resolve_filename.
func resolveBareFilename(baseDir, filePath string) (string, []string) {
	var logs []string
	if filePath == "" {
		return filePath, logs
	}
	if filepath.IsAbs(filePath) || strings.ContainsAny(filePath, "/\\") {
		return filePath, logs
	}

	if _, err := os.Stat(filepath.Join(baseDir, filePath)); err == nil {
		return filePath, logs
	}

	logs = append(logs, fmt.Sprintf("file %q not found at root, searching codebase", filePath))

	var found []string
	_ = filepath.WalkDir(baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		if !d.IsDir() && d.Name() == filePath {
			rel, relErr := filepath.Rel(baseDir, path)
			if relErr == nil {
				found = append(found, filepath.ToSlash(rel))
			}
		}
		return nil
	})

	switch len(found) {
	case 1:
		logs = append(logs, fmt.Sprintf("found unique match %q, updating path", found[0]))
		return found[0], logs
	case 0:
		return filePath, logs
	default:
		logs = append(logs, fmt.Sprintf("multiple candidates for %q: %v, keeping original path due to ambiguity", filePath, found))
		return filePath, logs
	}
}
