package httputil

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const errMsgFailedToSaveUpload = "failed to save uploaded file"

// SaveTempUpload сохраняет multipart файл во временный каталог и возвращает
// путь к нему. Дальнейшая судьба файла - ответственность вызывающего: слой
// хранилища удаляет временный файл после загрузки.
func SaveTempUpload(ctx fiber.Ctx, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	path := filepath.Join(os.TempDir(), uuid.New().String()+ext)

	if err := ctx.SaveFile(file, path); err != nil {
		return "", fmt.Errorf("%s: %w", errMsgFailedToSaveUpload, err)
	}
	return path, nil
}
