package logger

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ServiceEnv struct {
	Platform string
	Service  string
	Env      string
}

type LogConfig struct {
	Path       string
	LogLevel   string
	ServiceEnv ServiceEnv
}

var (
	mu     sync.RWMutex
	log    = otelzap.New(zap.NewNop())
	writer *lumberjack.Logger
)

// Init replaces the no-op logger with a console core and a rotating JSON file core.
func Init(conf *LogConfig) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(conf.LogLevel)); err != nil {
		fmt.Printf("unknown log level %q, fallback to info\n", conf.LogLevel)
		level = zapcore.InfoLevel
	}

	encConf := zap.NewProductionEncoderConfig()
	encConf.EncodeTime = zapcore.ISO8601TimeEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encConf), zapcore.Lock(os.Stdout), level),
	}

	var w *lumberjack.Logger
	if conf.Path != "" {
		w = &lumberjack.Logger{
			Filename:   conf.Path,
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     30,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encConf), zapcore.AddSync(w), level))
	}

	zl := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).With(
		zap.String("platform", conf.ServiceEnv.Platform),
		zap.String("service", conf.ServiceEnv.Service),
		zap.String("env", conf.ServiceEnv.Env),
	)

	mu.Lock()
	defer mu.Unlock()
	log = otelzap.New(zl, otelzap.WithMinLevel(level))
	writer = w
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	_ = log.Sync()
	if writer != nil {
		_ = writer.Close()
		writer = nil
	}
}

func get(ctx context.Context) otelzap.LoggerWithCtx {
	mu.RLock()
	defer mu.RUnlock()
	if ctx == nil {
		ctx = context.Background()
	}
	return log.Ctx(ctx)
}

func Debugf(ctx context.Context, format string, args ...any) {
	get(ctx).Debug(fmt.Sprintf(format, args...))
}

func Infof(ctx context.Context, format string, args ...any) {
	get(ctx).Info(fmt.Sprintf(format, args...))
}

func Warnf(ctx context.Context, format string, args ...any) {
	get(ctx).Warn(fmt.Sprintf(format, args...))
}

func Errorf(ctx context.Context, format string, args ...any) {
	get(ctx).Error(fmt.Sprintf(format, args...))
}

func Fatalf(ctx context.Context, format string, args ...any) {
	get(ctx).Fatal(fmt.Sprintf(format, args...))
}
