package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// ErrFileExists is returned when a scaffold file already exists and force is
// not set.
var ErrFileExists = errors.New("file already exists")

// WriteScaffoldFile writes content to relativePath below baseDir.
//
// The path must stay inside baseDir. Parent directories are created. An
// existing file is only replaced when force is set.
func WriteScaffoldFile(baseDir, relativePath string, content []byte, force bool) (string, error) {
	if baseDir == "" {
		return "", errors.New("base directory is required")
	}
	if relativePath == "" {
		return "", errors.New("output path is required")
	}

	cleanRel := filepath.Clean(relativePath)
	if filepath.IsAbs(cleanRel) || cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path %q must be relative to %s", relativePath, baseDir)
	}

	fullPath := filepath.Join(baseDir, cleanRel)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	// #nosec G304 -- fullPath is validated to stay under baseDir.
	file, err := os.OpenFile(fullPath, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) || errors.Is(err, syscall.EEXIST) {
			return "", fmt.Errorf("%w: %s", ErrFileExists, fullPath)
		}
		return "", fmt.Errorf("write output file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if _, err := file.Write(content); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}
	return fullPath, nil
}

// Eject copies the files of t into dir/<name> so it can be customized and
// picked up through template.paths.
func Eject(t *Template, dir string, force bool) ([]string, error) {
	var written []string
	err := fs.WalkDir(t.Files, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(t.Files, p)
		if err != nil {
			return err
		}
		full, err := WriteScaffoldFile(dir, filepath.Join(t.Name, filepath.FromSlash(p)), data, force)
		if err != nil {
			return err
		}
		written = append(written, full)
		return nil
	})
	return written, err
}
