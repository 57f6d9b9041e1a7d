// Package source finds access log files and copies them to the archive.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoFiles is returned by List when the directory has no matching files.
var ErrNoFiles = errors.New("no matching log files")

// List returns the paths of regular files in dir whose name starts with
// prefix, sorted by name.
func List(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("source: read dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("source: %s in %s: %w", prefix, dir, ErrNoFiles)
	}
	sort.Strings(paths)
	return paths, nil
}

// Matches reports whether name is a candidate log file name for prefix.
func Matches(name, prefix string) bool {
	return strings.HasPrefix(filepath.Base(name), prefix)
}

// Archive copies src into dir, overwriting any file of the same name, and
// returns the destination path. dir is created if needed.
func Archive(src, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("source: mkdir %s: %w", dir, err)
	}
	dst := filepath.Join(dir, filepath.Base(src))

	same, err := samePath(src, dst)
	if err != nil {
		return "", err
	}
	if same {
		return dst, nil
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("source: open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("source: create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", fmt.Errorf("source: copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("source: close %s: %w", dst, err)
	}
	return dst, nil
}

// samePath reports whether src and dst name the same existing file.
func samePath(src, dst string) (bool, error) {
	si, err := os.Stat(src)
	if err != nil {
		return false, fmt.Errorf("source: stat %s: %w", src, err)
	}
	di, err := os.Stat(dst)
	if err != nil {
		return false, nil
	}
	return os.SameFile(si, di), nil
}
