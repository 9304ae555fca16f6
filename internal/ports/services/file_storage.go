package services

import "context"

// FileStorage загружает локальные файлы в объектное хранилище.
// Upload обязан удалить временный файл на всех путях выхода, включая ошибочный.
type FileStorage interface {
	Upload(ctx context.Context, localPath string) (string, error)
}
