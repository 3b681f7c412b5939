package utils

import (
	"path/filepath"
	"strings"
)

func PadRightToSameLength(strs ...*string) {
	if len(strs) < 2 {
		return
	}

	maxLen := 0
	for _, sptr := range strs {
		if len(*sptr) > maxLen {
			maxLen = len(*sptr)
		}
	}

	for _, sptr := range strs {
		if len(*sptr) < maxLen {
			*sptr = *sptr + strings.Repeat(" ", maxLen-len(*sptr))
		}
	}
}

// TildePath shortens paths under home to ~/...
func TildePath(path, home string) string {
	if home == "" || home == "/" {
		return path
	}
	if path == home {
		return "~"
	}
	rel, err := filepath.Rel(home, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.Join("~", rel)
}
