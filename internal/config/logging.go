package config

import (
	"inkpost/pkg/logger"
)

// LoggingConfig содержит настройки логирования и режим работы сервиса.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"LOGGER_MODE" env-default:"development"`
}

// GetEnvironment преобразует строку режима в logger.Environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}

// IsProduction сообщает, работает ли сервис в production-режиме. От этого
// зависят флаги cookie и вывод трассировок стека в ответах об ошибках.
func (l *LoggingConfig) IsProduction() bool {
	return l.Mode == "production"
}
