// Package storage содержит адаптер загрузки файлов в S3-совместимое хранилище.
package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"inkpost/internal/config"
	svc "inkpost/internal/ports/services"
	"inkpost/pkg/logger"
)

const (
	errMsgFailedToOpenFile   = "failed to open local file"
	errMsgFailedToPutObject  = "failed to put object"
	errMsgFailedToLoadConfig = "failed to load aws config"

	defaultContentType = "application/octet-stream"
)

// objectPutter описывает используемое подмножество клиента S3.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage реализует интерфейс FileStorage поверх S3-совместимого хранилища.
type S3Storage struct {
	client        objectPutter
	bucket        string
	publicBaseURL string
}

// NewS3Storage создает клиент хранилища по конфигурации.
func NewS3Storage(ctx context.Context, cfg *config.StorageConfig) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errMsgFailedToLoadConfig, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &S3Storage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.GetPublicBaseURL(), "/"),
	}, nil
}

// newStorageKey возвращает уникальный ключ объекта, сгруппированный по дате.
func newStorageKey(localPath string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("uploads/%d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), strings.ToLower(filepath.Ext(localPath)))
}

func contentTypeFor(localPath string) string {
	if ct := mime.TypeByExtension(filepath.Ext(localPath)); ct != "" {
		return ct
	}
	return defaultContentType
}

// Upload загружает локальный файл и возвращает публичный URL объекта.
// Временный файл удаляется на всех путях выхода.
func (s *S3Storage) Upload(ctx context.Context, localPath string) (string, error) {
	log := logger.Log(ctx).With(zap.String("storage", "s3"), zap.String("method", "Upload"))

	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			log.Warn(ctx, "failed to remove temporary file", zap.String("path", localPath), zap.Error(err))
		}
	}()

	file, err := os.Open(localPath)
	if err != nil {
		log.Error(ctx, errMsgFailedToOpenFile, zap.String("path", localPath), zap.Error(err))
		return "", fmt.Errorf("%s: %w", errMsgFailedToOpenFile, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Warn(ctx, "failed to close local file", zap.Error(err))
		}
	}()

	key := newStorageKey(localPath)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentTypeFor(localPath)),
	})
	if err != nil {
		log.Error(ctx, errMsgFailedToPutObject, zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%s: %w", errMsgFailedToPutObject, err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, key)
	log.Debug(ctx, "object uploaded", zap.String("key", key), zap.String("url", url))

	return url, nil
}

// проверка соответствия интерфейсу.
var _ svc.FileStorage = (*S3Storage)(nil)
