package providers

import (
	"elevate/internal/structures"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
	TypeStore
	TypeSync
)

var typeFiles = map[TypeEnum]string{
	TypeApp:   "app.log",
	TypeGet:   "get.log",
	TypePost:  "post.log",
	TypeStore: "store.log",
	TypeSync:  "sync.log",
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	loggers map[TypeEnum]zerolog.Logger
	files   []*os.File
}

func (l *LogProvider) get(t TypeEnum) *zerolog.Logger {
	lg, ok := l.loggers[t]
	if !ok {
		lg = l.loggers[TypeApp]
	}
	return &lg
}

func (l *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l.get(t).Error().Msgf(format, args...)
}

func (l *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l.get(t).Warn().Msgf(format, args...)
}

func (l *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l.get(t).Debug().Msgf(format, args...)
}

func (l *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l.get(t).Info().Msgf(format, args...)
}

func (l *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l.get(t).Fatal().Msgf(format, args...)
}

func (l *LogProvider) Close() {
	for _, f := range l.files {
		_ = f.Close()
	}
	l.files = nil
}

func GetLogTypeByRequestType(method string) TypeEnum {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return TypePost
	default:
		return TypeGet
	}
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}

	if err := os.MkdirAll(conf.Logger.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	provider := &LogProvider{loggers: make(map[TypeEnum]zerolog.Logger, len(typeFiles))}
	for t, name := range typeFiles {
		file, err := os.OpenFile(filepath.Join(conf.Logger.Dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, os.FileMode(conf.Logger.Mode))
		if err != nil {
			provider.Close()
			return nil, err
		}
		provider.files = append(provider.files, file)

		var out io.Writer = file
		if conf.Debug {
			out = zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: os.Stderr})
		}
		provider.loggers[t] = zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	return provider, nil
}
