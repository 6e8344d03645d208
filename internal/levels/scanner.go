package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry represents a discoverable level file
type Entry struct {
	Name string // level name from the file
	Path string
}

// Scan lists the valid level files in dir, sorted by name. A missing
// directory yields no entries; files that fail to load are skipped and
// returned in the skipped list so the caller can report them.
func Scan(dir string) (entries []Entry, skipped []error, err error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read levels directory: %w", err)
	}

	for _, f := range files {
		// Skip directories and hidden files
		name := f.Name()
		if f.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(name), ".json") {
			continue
		}

		path := filepath.Join(dir, name)
		lvl, err := Load(path)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		entries = append(entries, Entry{Name: lvl.Name, Path: path})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Path < entries[j].Path
	})
	return entries, skipped, nil
}
