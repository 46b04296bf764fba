// Package notify delivers transient user notifications (toasts).
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Level string

const (
	Success Level = "success"
	Error   Level = "error"
	Warning Level = "warning"
	Info    Level = "info"
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 3000 * time.Millisecond

type Toast struct {
	Message  string
	Level    Level
	Duration time.Duration
}

type Notifier interface {
	Notify(t Toast)
}

// Show sends a toast with the default duration.
func Show(n Notifier, message string, level Level) {
	n.Notify(Toast{Message: message, Level: level, Duration: DefaultDuration})
}

// Recorder keeps every toast it receives. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Notify(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Last returns the most recent toast, or the zero Toast.
func (r *Recorder) Last() Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}
	}
	return r.toasts[len(r.toasts)-1]
}

// Writer prints toasts as "[level] message" lines.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Notify(t Toast) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, "[%s] %s\n", t.Level, t.Message)
}

// Logger forwards toasts to zap, errors at error level.
type Logger struct {
	logger *zap.Logger
}

func NewLogger(l *zap.Logger) *Logger {
	return &Logger{logger: l}
}

func (l *Logger) Notify(t Toast) {
	fields := []zap.Field{zap.String("level", string(t.Level))}
	if t.Level == Error {
		l.logger.Error(t.Message, fields...)
		return
	}
	l.logger.Info(t.Message, fields...)
}

// Multi fans a toast out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(t Toast) {
	for _, n := range m {
		n.Notify(t)
	}
}
