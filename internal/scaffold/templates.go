package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
)

//go:embed all:templates/lit-element
var templatesFS embed.FS

// DefaultTemplate returns the LitElement template compiled into the binary.
func DefaultTemplate() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates/lit-element")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	return sub
}

// TemplateFromDir returns the template rooted at dir on disk.
func TemplateFromDir(dir string) (fs.FS, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}
