package logger

import (
	"io"
	"os"

	"github.com/dushixiang/ejpatch/internal/config"
	"github.com/go-errors/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New 创建日志：控制台输出到 stderr，配置了文件名时同时按大小滚动写入 JSON 日志
func New(c config.LogConfig) (*zap.Logger, error) {
	return NewWithWriter(c, os.Stderr)
}

// NewWithWriter 同 New，控制台输出写入 w
func NewWithWriter(c config.LogConfig, w io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, errors.WrapPrefix(err, "无效的日志级别", 0)
	}

	consoleConfig := zap.NewDevelopmentEncoderConfig()
	consoleConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleConfig), zapcore.AddSync(w), level),
	}

	if c.Filename != "" {
		rotate := &lumberjack.Logger{
			Filename:   c.Filename,
			MaxSize:    c.MaxSize,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAge,
			Compress:   c.Compress,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotate),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...)).With(zap.String("run", uuid.NewString())), nil
}
