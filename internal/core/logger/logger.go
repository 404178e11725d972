// Package logger 构造服务使用的 zap 日志，并把 gin / 标准库日志收拢到同一出口
package logger

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileRotate 日志文件切割；Enable=false 时只写 stdout
type FileRotate struct {
	Enable     bool
	Filename   string // 如 logs/skillswap.log
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// 每秒同一条消息前 100 条照写，之后每 100 条取 1
const (
	sampleTick       = time.Second
	sampleFirst      = 100
	sampleThereafter = 100
)

// New 只输出到 stdout
func New(level string, json bool) (*zap.Logger, func()) {
	return NewWithRotate(level, json, FileRotate{})
}

// NewWithRotate json=false 时用带颜色的控制台格式并开启 Development
func NewWithRotate(level string, json bool, rotate FileRotate) (*zap.Logger, func()) {
	lvl := parseLevel(level)
	enc := encoderFor(json)

	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.Lock(os.Stdout), lvl)}
	if ws, ok := rotateSink(rotate); ok {
		cores = append(cores, zapcore.NewCore(enc, ws, lvl))
	}
	core := zapcore.NewSamplerWithOptions(zapcore.NewTee(cores...), sampleTick, sampleFirst, sampleThereafter)

	opts := []zap.Option{zap.AddCaller()}
	if !json {
		opts = append(opts, zap.Development())
	}
	l := zap.New(core, opts...)
	return l, func() { _ = l.Sync() }
}

func parseLevel(s string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func encoderFor(json bool) zapcore.Encoder {
	if json {
		ec := zap.NewProductionEncoderConfig()
		ec.TimeKey = "ts"
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		ec.EncodeCaller = zapcore.ShortCallerEncoder
		return zapcore.NewJSONEncoder(ec)
	}
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	ec.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func rotateSink(r FileRotate) (zapcore.WriteSyncer, bool) {
	if !r.Enable || r.Filename == "" {
		return nil, false
	}
	lj := &lumberjack.Logger{
		Filename:   r.Filename,
		MaxSize:    max(1, r.MaxSizeMB),
		MaxBackups: max(0, r.MaxBackups),
		MaxAge:     max(0, r.MaxAgeDays),
		Compress:   r.Compress,
	}
	// lumberjack 没有 Sync，AddSync 补一个空实现
	return zapcore.AddSync(lj), true
}

// lineWriter 把按行写入的文本转成一条日志，供 gin.DefaultWriter 使用
type lineWriter struct {
	l   *zap.Logger
	lvl zapcore.Level
}

func (w lineWriter) Write(p []byte) (int, error) {
	if ce := w.l.Check(w.lvl, strings.TrimRight(string(p), "\r\n")); ce != nil {
		ce.Write()
	}
	return len(p), nil
}

func ToWriter(l *zap.Logger, level zapcore.Level) io.Writer {
	return lineWriter{l: l, lvl: level}
}

// ToStdLogger 给 http.Server.ErrorLog 用
func ToStdLogger(l *zap.Logger, level zapcore.Level) (*log.Logger, error) {
	return zap.NewStdLogAt(l, level)
}

// RedirectStdLog 返回的函数恢复原来的标准库输出
func RedirectStdLog(l *zap.Logger, level zapcore.Level) func() {
	undo, err := zap.RedirectStdLogAt(l, level)
	if err != nil {
		return func() {}
	}
	return undo
}
