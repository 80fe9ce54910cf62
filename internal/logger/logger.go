package logger

import (
	"os"
	"strings"

	"github.com/SketchShifter/warbler_backend/internal/config"

	"github.com/sirupsen/logrus"
)

// Init ログ出力の形式とレベルを設定
func Init(cfg config.LogConfig) {
	logrus.SetOutput(os.Stdout)

	if strings.ToLower(cfg.Format) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.Warnf("不明なログレベルです (%s)、infoを使用します", cfg.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
