package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/rafabene/avantpro-admin/internal/domain/ports"
)

// Atributos cujo valor nunca é escrito no log
var redactedKeys = map[string]bool{
	"password": true,
	"token":    true,
	"secret":   true,
}

// Options configura o logger. Format "text" usa slog.TextHandler,
// qualquer outro valor produz JSON.
type Options struct {
	Level  string
	Format string
}

// SlogLogger implementa ports.Logger sobre log/slog
type SlogLogger struct {
	logger *slog.Logger
}

// New cria um logger escrevendo em w
func New(w io.Writer, opts Options) ports.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level:       ParseLevel(opts.Level),
		ReplaceAttr: redact,
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		handler = slog.NewTextHandler(w, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(w, handlerOpts)
	}

	return &SlogLogger{logger: slog.New(handler)}
}

// NewSlogLoggerTo cria um logger JSON em w
func NewSlogLoggerTo(w io.Writer, level string) ports.Logger {
	return New(w, Options{Level: level})
}

// ParseLevel aceita os nomes do slog em qualquer caixa, inclusive com
// deslocamento ("warn", "INFO+2"). Valor desconhecido vira info.
func ParseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

func redact(_ []string, a slog.Attr) slog.Attr {
	if redactedKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, "[REDACTED]")
	}
	return a
}

func (l *SlogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *SlogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *SlogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *SlogLogger) With(args ...any) ports.Logger {
	return &SlogLogger{logger: l.logger.With(args...)}
}
