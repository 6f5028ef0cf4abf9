package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log = logrus.New()

// Init инициализирует глобальный логгер из LOG_LEVEL и LOG_FORMAT.
// Вызывается один раз в main и в TestMain пакетов, которые пишут логи.
func Init() {
	Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// Configure пересоздает логгер с явными уровнем и форматом.
// Неизвестный уровень превращается в "info".
func Configure(logLevel, logFormat string) {
	log := logrus.New()

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	// "json" - для продакшена и сбора логов, иначе текст для разработки
	if strings.ToLower(logFormat) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	log.SetOutput(os.Stdout)
	Log = log
}

// WithComponent - логгер с полем component
func WithComponent(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
