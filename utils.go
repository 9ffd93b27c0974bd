package main

import (
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// expandPath expands a leading tilde and environment variables.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~") {
		if p, err := homedir.Expand(path); err == nil {
			path = p
		}
	}
	return os.ExpandEnv(path)
}
