// Package discover expands command line arguments into the list of .vmg files to convert
package discover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/match"
)

// DefaultPattern selects archive files inside directory arguments
const DefaultPattern = "*.vmg"

var ErrUnsupportedPath = errors.New("not a regular file or directory")

// Expand returns the files named by args, in argument order.
// A directory contributes its non-hidden entries whose name matches pattern,
// sorted by name; subdirectories are not descended into.
func Expand(args []string, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		switch {
		case info.IsDir():
			found, err := list(arg, pattern)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
		case info.Mode().IsRegular():
			files = append(files, arg)
		default:
			return nil, fmt.Errorf("%s: %w", arg, ErrUnsupportedPath)
		}
	}

	return files, nil
}

func list(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !match.Match(name, pattern) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}
