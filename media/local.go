package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PublicPrefix is the URL prefix uploaded files are served under.
const PublicPrefix = "/uploads"

// LocalStore lays out uploaded files below Dir.
type LocalStore struct {
	Dir string
}

// Prepare returns the path to save an upload to and the public URL it will be served from.
// The sub-directory is created if needed.
func (s LocalStore) Prepare(subdir, filename string) (savePath, publicURL string, err error) {
	dir := filepath.Join(s.Dir, subdir)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", "", fmt.Errorf("failed to create upload folder: %w", err)
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	base = strings.ReplaceAll(base, " ", "_")
	name := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)

	return filepath.Join(dir, name), PublicPrefix + "/" + filepath.ToSlash(filepath.Join(subdir, name)), nil
}

// Remove deletes the file behind a public URL. Missing files are ignored.
func (s LocalStore) Remove(publicURL string) error {
	rel := strings.TrimPrefix(publicURL, PublicPrefix+"/")
	if rel == publicURL || strings.Contains(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, filepath.FromSlash(rel)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
