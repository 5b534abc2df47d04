package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PhotoStorage przechowuje pliki pod <uid>/<rrrr>/<mm>/<dd>/<token>.<ext>.
type PhotoStorage struct {
	basePath string
}

func NewPhotoStorage(basePath string) (*PhotoStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, err
	}
	return &PhotoStorage{basePath: basePath}, nil
}

// resolve odrzuca ścieżki wychodzące poza basePath.
func (ps *PhotoStorage) resolve(uid, relPath string) (string, error) {
	absBase, err := filepath.Abs(ps.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(ps.basePath, uid, filepath.FromSlash(relPath)))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes storage root")
	}

	return absPath, nil
}

func (ps *PhotoStorage) Save(uid, relPath string, data io.Reader) error {
	filePath, err := ps.resolve(uid, relPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(file, data); err != nil {
		file.Close()
		os.Remove(filePath)
		return err
	}

	if err := file.Close(); err != nil {
		os.Remove(filePath)
		return err
	}

	return nil
}

func (ps *PhotoStorage) Get(uid, relPath string) (io.ReadCloser, error) {
	filePath, err := ps.resolve(uid, relPath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("photo %s/%s not found: %w", uid, relPath, err)
		}
		return nil, err
	}

	return file, nil
}

func (ps *PhotoStorage) Delete(uid, relPath string) error {
	filePath, err := ps.resolve(uid, relPath)
	if err != nil {
		return err
	}

	err = os.Remove(filePath)
	if os.IsNotExist(err) {
		return nil
	}

	return err
}
