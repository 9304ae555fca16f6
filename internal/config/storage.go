package config

// StorageConfig содержит настройки объектного хранилища (S3-совместимого).
type StorageConfig struct {
	Region        string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	Endpoint      string `yaml:"endpoint" env:"S3_ENDPOINT" env-default:"http://localhost:9000"`
	Bucket        string `yaml:"bucket" env:"S3_BUCKET" env-default:"inkpost-media"`
	AccessKey     string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey     string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	PublicBaseURL string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
}

// GetPublicBaseURL возвращает базовый URL для публичных ссылок на объекты.
func (s *StorageConfig) GetPublicBaseURL() string {
	if s.PublicBaseURL != "" {
		return s.PublicBaseURL
	}
	return s.Endpoint
}
