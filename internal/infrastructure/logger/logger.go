package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xiebiao/bookstore-catalog/internal/infrastructure/config"
)

// New 根据日志配置创建zap Logger
// 设计说明:
// 1. json格式使用生产环境编码器,console格式使用开发环境编码器(带颜色级别)
// 2. 时间统一为ISO8601,键名固定为timestamp/level/name/msg/caller
// 3. Error及以上级别附带堆栈
// 返回的flush函数在进程退出前调用,刷新缓冲的日志
func New(cfg config.LogConfig) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(defaultString(cfg.Level, "info"))
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}

	ws, closeOutput, err := openOutput(cfg.Output)
	if err != nil {
		return nil, nil, err
	}

	core := zapcore.NewCore(newEncoder(cfg.Format), ws, level)
	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if cfg.EnableCaller {
		opts = append(opts, zap.AddCaller())
	}
	logger := zap.New(core, opts...)

	flush := func() {
		_ = logger.Sync()
		closeOutput()
	}
	return logger, flush, nil
}

func newEncoder(format string) zapcore.Encoder {
	if strings.EqualFold(format, "console") {
		encCfg := zap.NewDevelopmentEncoderConfig()
		applyKeys(&encCfg)
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encCfg)
	}
	encCfg := zap.NewProductionEncoderConfig()
	applyKeys(&encCfg)
	return zapcore.NewJSONEncoder(encCfg)
}

func applyKeys(encCfg *zapcore.EncoderConfig) {
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.LevelKey = "level"
	encCfg.NameKey = "name"
	encCfg.MessageKey = "msg"
	encCfg.CallerKey = "caller"
	encCfg.StacktraceKey = "stacktrace"
}

// openOutput stdout | stderr | 文件路径(追加写入)
func openOutput(output string) (zapcore.WriteSyncer, func(), error) {
	switch strings.ToLower(output) {
	case "", "stdout":
		return zapcore.Lock(os.Stdout), func() {}, nil
	case "stderr":
		return zapcore.Lock(os.Stderr), func() {}, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return zapcore.Lock(f), func() { _ = f.Close() }, nil
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
