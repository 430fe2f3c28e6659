package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/photomat/photomat/internal/utils"
)

// DiscoverImages expands a mix of file and directory paths into a sorted,
// de-duplicated list of supported image files. Directories are walked
// recursively.
func DiscoverImages(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string

	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", p, err)
		}
		if !info.IsDir() {
			if !utils.IsSupportedImage(p) {
				return nil, fmt.Errorf("unsupported image file: %s", p)
			}
			add(p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && utils.IsSupportedImage(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
	}

	sort.Strings(out)
	return out, nil
}
