package logger

import "go.uber.org/zap"

// No-op until Init runs, so library code can log unconditionally.
var log = zap.NewNop().Sugar()

// Init configures the process-wide logger. When logPath is non-empty the
// same lines are appended there in addition to stderr, so runs triggered by
// the scheduler stay inspectable after the terminal is gone.
func Init(logPath string) {
	cfg := zap.NewDevelopmentConfig()
	if logPath != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, logPath)
	}
	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	log = l.Sugar()
}

func Info(msg string, kv ...interface{}) {
	log.Infow(msg, kv...)
}

func Warn(msg string, kv ...interface{}) {
	log.Warnw(msg, kv...)
}

func Error(msg string, kv ...interface{}) {
	log.Errorw(msg, kv...)
}

// Sync flushes buffered log entries. Called on shutdown.
func Sync() {
	_ = log.Sync()
}
