package utils

import (
	"path/filepath"
	"strings"
)

const maxExtLen = 10

// SafeExt returns a lowercased file extension restricted to [a-z0-9],
// usable in a storage key. The original file name is display data only
// and is never used to build a path.
func SafeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) < 2 || len(ext) > maxExtLen {
		return ""
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return ""
		}
	}
	return ext
}
