// Package lang maps a file path to one of the grammars internal/tsadapter
// knows how to parse.
package lang

import (
	"path/filepath"
	"strings"
)

type ID string

const (
	Plain ID = "plain"
	Go    ID = "go"
	JSON  ID = "json"
	Zig   ID = "zig"
)

var extMap = map[string]ID{
	".go":    Go,
	".json":  JSON,
	".jsonc": JSON,
	".json5": JSON,
	".zig":   Zig,

	".md":   Plain,
	".txt":  Plain,
	".ini":  Plain,
	".conf": Plain,
}

var fileMap = map[string]ID{
	"go.mod":            Go,
	"go.sum":            Plain,
	"package-lock.json": JSON,
	"Makefile":          Plain,
	"Dockerfile":        Plain,
	".gitignore":        Plain,
	".editorconfig":     Plain,
}

// Detect chooses a grammar from a file's base name, falling back to its
// lowercased extension, then Plain.
func Detect(path string) ID {
	base := filepath.Base(path)
	if id, ok := fileMap[base]; ok {
		return id
	}
	ext := strings.ToLower(filepath.Ext(base))
	if id, ok := extMap[ext]; ok {
		return id
	}
	return Plain
}
