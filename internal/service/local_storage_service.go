package service

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"dms-web-server/internal/util"
)

// LocalStorageService : хранение тел файлов на локальном диске
// Ключ объекта становится путём относительно корневой директории
type LocalStorageService struct {
	baseDir string
}

func NewLocalStorageService(baseDir string) (*LocalStorageService, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, util.LogError("[LocalStorage] не удалось создать директорию", err)
	}
	return &LocalStorageService{baseDir: baseDir}, nil
}

func (s *LocalStorageService) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return util.LogError("[LocalStorage] не удалось создать директорию файла", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return util.LogError("[LocalStorage] не удалось создать файл", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, body); err != nil {
		return util.LogError("[LocalStorage] не удалось записать файл", err)
	}
	return nil
}

func (s *LocalStorageService) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if err != nil {
		return nil, util.LogError("[LocalStorage] не удалось открыть файл", err)
	}
	return file, nil
}

func (s *LocalStorageService) Delete(ctx context.Context, key string) error {
	if err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(key))); err != nil {
		return util.LogError("[LocalStorage] не удалось удалить файл", err)
	}
	return nil
}
