package util

import (
	"os"
)

func IsFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false // e.g., file doesn't exist
	}
	return info.Mode().IsRegular()
}
