package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SaveBookImage stores an uploaded book image under mediaDir/books/ with a
// generated filename and returns the path relative to the media root.
func SaveBookImage(mediaDir string, file *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(file.Filename)
	rel := filepath.Join("books", uuid.NewString()+ext)
	dst := filepath.Join(mediaDir, rel)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return filepath.ToSlash(rel), nil
}

// RemoveBookImage deletes a stored image. A missing file is not an error.
func RemoveBookImage(mediaDir, rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(mediaDir, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
