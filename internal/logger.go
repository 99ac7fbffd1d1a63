package internal

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pay24/entity"
	"pay24/services"
)

// Logger implements services.LogHandler on top of zap. Warnings and
// errors are additionally persisted to the audit log collection when a
// database is attached; persistence failures are ignored so logging can
// never take the service down.
type Logger struct {
	log      *zap.Logger
	module   string
	database services.Database
}

// NewLogger builds a named logger. Debug mode switches to the
// development encoder and enables Debug level output.
func NewLogger(module string, debug bool, database services.Database) *Logger {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	log, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		log = zap.NewNop()
	}

	return &Logger{
		log:      log.With(zap.String("module", module)),
		module:   module,
		database: database,
	}
}

func (l *Logger) Debug(message string) {
	l.log.Debug(message)
}

func (l *Logger) Info(message string) {
	l.log.Info(message)
}

func (l *Logger) Warn(message string) {
	l.log.Warn(message)
	l.persist("warn", message, nil)
}

func (l *Logger) Error(message string, err error) {
	l.log.Error(message, zap.Error(err))
	l.persist("error", message, err)
}

func (l *Logger) persist(level, message string, err error) {
	if l.database == nil {
		return
	}
	record := &entity.LogMessage{
		Time:   time.Now(),
		Level:  level,
		Module: l.module,
		Text:   message,
	}
	if err != nil {
		record.ErrorMsg = err.Error()
	}
	_ = l.database.WriteLogMessage(record)
}
