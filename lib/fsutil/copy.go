package fsutil

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

func copyFile(destFilename, sourceFilename string, mode os.FileMode) error {
	sourceFile, err := os.Open(sourceFilename)
	if err != nil {
		return err
	}
	defer sourceFile.Close()
	if mode == 0 {
		fi, err := sourceFile.Stat()
		if err != nil {
			return err
		}
		mode = fi.Mode() & os.ModePerm
	}
	return copyToFile(destFilename, mode, sourceFile)
}

func copyToFile(destFilename string, perm os.FileMode,
	reader io.Reader) error {
	tmpFilename := destFilename + "~"
	destFile, err := os.OpenFile(tmpFilename,
		os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	defer os.Remove(tmpFilename)
	defer destFile.Close()
	if _, err := io.Copy(destFile, reader); err != nil {
		return err
	}
	if err := destFile.Close(); err != nil {
		return err
	}
	return os.Rename(tmpFilename, destFilename)
}

func copyTree(destDir, sourceDir string) error {
	file, err := os.Open(sourceDir)
	if err != nil {
		return err
	}
	names, err := file.Readdirnames(-1)
	file.Close()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(destDir, DirPerms); err != nil {
		return err
	}
	for _, name := range names {
		sourcePath := filepath.Join(sourceDir, name)
		destPath := filepath.Join(destDir, name)
		fi, err := os.Lstat(sourcePath)
		if err != nil {
			return err
		}
		switch {
		case fi.Mode().IsDir():
			if err := copyTree(destPath, sourcePath); err != nil {
				return err
			}
		case fi.Mode().IsRegular():
			err := copyFile(destPath, sourcePath, fi.Mode()&os.ModePerm)
			if err != nil {
				return err
			}
		case fi.Mode()&os.ModeSymlink != 0:
			target, err := os.Readlink(sourcePath)
			if err != nil {
				return err
			}
			os.Remove(destPath)
			if err := os.Symlink(target, destPath); err != nil {
				return err
			}
		}
	}
	return nil
}

func readLines(reader io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(reader)
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 1 {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

func readFileLines(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return readLines(file)
}
