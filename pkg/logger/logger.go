package logger

import (
	"os"
	"path/filepath"

	"tradegate/conf"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 基于zap的全局logger，日志文件使用lumberjack滚动切割

var log *zap.Logger

func init() {
	// 未调用InitLogger前使用开发配置，保证测试环境下也能打日志
	log, _ = zap.NewDevelopment(zap.AddCallerSkip(1))
}

// InitLogger 根据配置初始化全局logger
func InitLogger(cfg *conf.LogConfig, appName string) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04:05.000"
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeFormat)
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	fileName := cfg.FileName
	if fileName == "" {
		fileName = filepath.Join("logs", appName+".log")
	}

	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  cfg.LocalTime,
	})
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, level),
	}
	if cfg.Console {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stdout), level))
	}

	log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
}

// Pair 构造一个日志键值对
func Pair(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { log.Fatal(msg, fields...) }

func Debugf(format string, args ...interface{}) { log.Sugar().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { log.Sugar().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { log.Sugar().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { log.Sugar().Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { log.Sugar().Fatalf(format, args...) }

// Sync 刷新缓冲的日志
func Sync() error {
	return log.Sync()
}
