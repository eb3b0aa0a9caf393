package fsutil

import (
	"io"
	"os"
	"syscall"
)

const (
	DirPerms = syscall.S_IRWXU | syscall.S_IRGRP | syscall.S_IXGRP |
		syscall.S_IROTH | syscall.S_IXOTH
	PrivateDirPerms  = syscall.S_IRWXU
	PrivateFilePerms = syscall.S_IRUSR | syscall.S_IWUSR
	PublicFilePerms  = PrivateFilePerms | syscall.S_IRGRP | syscall.S_IROTH
)

// CopyFile will copy the contents of the file named sourceFilename to the
// file named destFilename, creating it with the specified mode if needed.
// The file is copied to a temporary file in the same directory first and
// then renamed, so that partial writes are never visible.
func CopyFile(destFilename, sourceFilename string, mode os.FileMode) error {
	return copyFile(destFilename, sourceFilename, mode)
}

// CopyTree will copy the directory tree rooted at sourceDir to destDir,
// preserving regular files, directories and symlinks.
func CopyTree(destDir, sourceDir string) error {
	return copyTree(destDir, sourceDir)
}

// ReadLines will read lines from the reader, stripping trailing newlines.
// Empty lines are dropped.
func ReadLines(reader io.Reader) ([]string, error) {
	return readLines(reader)
}

// ReadFileLines is a convenience wrapper around ReadLines which opens and
// reads the specified file.
func ReadFileLines(filename string) ([]string, error) {
	return readFileLines(filename)
}
