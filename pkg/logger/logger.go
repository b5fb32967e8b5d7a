// Package logger envuelve zerolog para inyectarlo en casos de uso, adaptadores y handlers.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones para el logger.
type Config struct {
	Env     string    // development -> consola legible; cualquier otro -> JSON
	Level   string    // trace, debug, info, warn, error; desconocido = info
	Service string    // se añade como campo "service" en cada línea
	Output  io.Writer // por defecto os.Stdout
}

// Logger wrapper sobre zerolog.
type Logger struct {
	zl zerolog.Logger
}

// New crea el logger de la aplicación y redirige el logger global de zerolog a él.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Output != nil {
		w = cfg.Output
	}
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	}

	ctx := zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	zl := ctx.Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// Nop devuelve un logger que descarta todo (tests).
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// ParseLevel traduce el nivel configurado; valores vacíos o desconocidos caen en info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// Component crea un sublogger etiquetado con el componente que lo usa
// ("sales", "seed", "http", "elasticsearch"...).
func (l *Logger) Component(name string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", name).Logger()}
}

// Printf adapta el logger a clientes que esperan la interfaz Errorf/Warnf/Debugf (resty).
type Printf struct {
	L *Logger
}

func (p Printf) Errorf(format string, v ...interface{}) { p.L.Error().Msgf(format, v...) }
func (p Printf) Warnf(format string, v ...interface{})  { p.L.Warn().Msgf(format, v...) }
func (p Printf) Debugf(format string, v ...interface{}) { p.L.Debug().Msgf(format, v...) }
