package log

import (
	"fmt"
	"io"
	"strings"

	"github.com/sasha-s/go-deadlock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewDebugLogger returns logs as string in tests.
func NewDebugLogger() DebugLogger {
	core := &debugCore{
		LevelEnabler: zapcore.DebugLevel,
		recorder:     &recorder{lock: &deadlock.Mutex{}},
	}
	return &debugLogger{
		zapLogger: loggerFromZap(zap.New(core)),
		core:      core,
	}
}

type debugLogger struct {
	*zapLogger
	core *debugCore
}

type record struct {
	level   zapcore.Level
	message string
}

type recorder struct {
	lock    *deadlock.Mutex
	records []record
	mirror  io.Writer
}

// debugCore captures each log entry to the recorder.
type debugCore struct {
	zapcore.LevelEnabler
	recorder *recorder
}

func (c *debugCore) With(fields []zapcore.Field) zapcore.Core {
	return c
}

func (c *debugCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *debugCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	c.recorder.lock.Lock()
	defer c.recorder.lock.Unlock()
	c.recorder.records = append(c.recorder.records, record{level: entry.Level, message: entry.Message})
	if c.recorder.mirror != nil {
		if _, err := fmt.Fprintf(c.recorder.mirror, "%s  %s\n", entry.Level.CapitalString(), entry.Message); err != nil {
			return err
		}
	}
	return nil
}

func (c *debugCore) Sync() error {
	return nil
}

// ConnectTo mirrors all messages to the writer, eg. os.Stdout for debugging.
func (l *debugLogger) ConnectTo(writer io.Writer) {
	l.core.recorder.lock.Lock()
	defer l.core.recorder.lock.Unlock()
	l.core.recorder.mirror = writer
}

func (l *debugLogger) Truncate() {
	l.core.recorder.lock.Lock()
	defer l.core.recorder.lock.Unlock()
	l.core.recorder.records = nil
}

func (l *debugLogger) AllMessages() string {
	return l.messages(func(zapcore.Level) bool { return true })
}

func (l *debugLogger) DebugMessages() string {
	return l.messages(func(level zapcore.Level) bool { return level == DebugLevel })
}

func (l *debugLogger) InfoMessages() string {
	return l.messages(func(level zapcore.Level) bool { return level == InfoLevel })
}

func (l *debugLogger) WarnMessages() string {
	return l.messages(func(level zapcore.Level) bool { return level == WarnLevel })
}

func (l *debugLogger) WarnAndErrorMessages() string {
	return l.messages(func(level zapcore.Level) bool { return level >= WarnLevel })
}

func (l *debugLogger) ErrorMessages() string {
	return l.messages(func(level zapcore.Level) bool { return level == ErrorLevel })
}

// messages returns matching messages and empties the whole buffer.
func (l *debugLogger) messages(match func(level zapcore.Level) bool) string {
	l.core.recorder.lock.Lock()
	defer l.core.recorder.lock.Unlock()
	var out strings.Builder
	for _, r := range l.core.recorder.records {
		if match(r.level) {
			out.WriteString(fmt.Sprintf("%s  %s\n", r.level.CapitalString(), r.message))
		}
	}
	l.core.recorder.records = nil
	return out.String()
}
