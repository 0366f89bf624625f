package logger

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Cron adapts a zap logger to cron.Logger. cron's info messages are routine
// scheduling chatter and go to debug.
func Cron(log *zap.Logger) cron.Logger {
	return cronLogger{log: log.Named("cron").Sugar()}
}

type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
