package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 日志配置
type Config struct {
	Level      string
	Encoding   string // console | json
	Caller     bool
	Stacktrace bool
}

var (
	mu     sync.RWMutex
	sugar  = zap.NewNop().Sugar()
	levels = map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
)

// DefaultConfig 默认日志配置
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Encoding:   "console",
		Caller:     true,
		Stacktrace: false,
	}
}

// Init 初始化全局日志，输出到标准输出
func Init(cfg *Config) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level, ok := levels[cfg.Level]
	if !ok {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if cfg.Encoding == "json" {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)

	opts := []zap.Option{zap.AddCallerSkip(1)}
	if cfg.Caller {
		opts = append(opts, zap.AddCaller())
	}
	if cfg.Stacktrace {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	mu.Lock()
	sugar = zap.New(core, opts...).Sugar()
	mu.Unlock()
}

// Set 替换全局日志实例，测试中使用 zaptest/observer
func Set(l *zap.Logger) {
	mu.Lock()
	sugar = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
	mu.Unlock()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// Debug 调试日志
func Debug(msg string, keysAndValues ...interface{}) {
	get().Debugw(msg, normalize(keysAndValues)...)
}

// Info 信息日志
func Info(msg string, keysAndValues ...interface{}) {
	get().Infow(msg, normalize(keysAndValues)...)
}

// Warn 警告日志
func Warn(msg string, keysAndValues ...interface{}) {
	get().Warnw(msg, normalize(keysAndValues)...)
}

// Error 错误日志
func Error(msg string, err error, keysAndValues ...interface{}) {
	kv := normalize(keysAndValues)
	if err != nil {
		kv = append([]interface{}{"error", err.Error()}, kv...)
	}
	get().Errorw(msg, kv...)
}

// Sync 刷新缓冲
func Sync() {
	_ = get().Sync()
}

// normalize pads an odd key/value list so zap never reports it as a DPANIC.
func normalize(kv []interface{}) []interface{} {
	if len(kv)%2 == 1 {
		return append(kv, "")
	}
	return kv
}
