package platform

import (
	"io/fs"
	"os"
	"runtime"
)

// Default permission bits for generated output.
const (
	FilePerm fs.FileMode = 0644
	ExecPerm fs.FileMode = 0755
	DirPerm  fs.FileMode = 0755
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// OutputMode returns the mode for a file rendered from a template file with
// mode src. Template sources are often read-only (embedded files report 0444),
// so only the executable bit is carried over.
func OutputMode(src fs.FileMode) fs.FileMode {
	if src.Perm()&0111 != 0 {
		return ExecPerm
	}
	return FilePerm
}
