package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var ErrObjectNotFound = errors.New("stored object not found")

// Store keeps uploaded attachment files on disk under a flat directory.
// Objects are named by a fresh UUID plus the original extension, so the
// user-supplied filename never touches the filesystem.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes one uploaded file and returns its object name.
func (s *Store) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	objectName := uuid.New().String() + filepath.Ext(file.Filename)
	dst, err := os.Create(filepath.Join(s.dir, objectName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return objectName, nil
}

// Path resolves an object name to its on-disk path, refusing names that
// escape the store directory.
func (s *Store) Path(objectName string) (string, error) {
	if objectName == "" || objectName != filepath.Base(objectName) {
		return "", ErrObjectNotFound
	}
	path := filepath.Join(s.dir, objectName)
	if _, err := os.Stat(path); err != nil {
		return "", ErrObjectNotFound
	}
	return path, nil
}

// Remove deletes a stored object. Missing objects are not an error; the
// row is gone either way.
func (s *Store) Remove(objectName string) error {
	if objectName == "" || objectName != filepath.Base(objectName) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, objectName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
