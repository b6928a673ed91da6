package logging

import (
	"fmt"
	"io"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Logger is the shared go-kit logger. It discards everything until Init is called.
var Logger = kitlog.NewNopLogger()

// New builds a go-kit logger writing to w in the given format ("logfmt" or "json"),
// filtered at the given level ("debug", "info", "warn" or "error").
func New(w io.Writer, format, lvl string) (kitlog.Logger, error) {
	writer := kitlog.NewSyncWriter(w)

	var logger kitlog.Logger
	switch strings.ToLower(format) {
	case "", "logfmt":
		logger = kitlog.NewLogfmtLogger(writer)
	case "json":
		logger = kitlog.NewJSONLogger(writer)
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}

	filter, err := levelOption(lvl)
	if err != nil {
		return nil, err
	}

	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC, "caller", kitlog.DefaultCaller)

	// Must put the level filter last for efficiency.
	return level.NewFilter(logger, filter), nil
}

// Init sets the shared Logger and returns it.
func Init(w io.Writer, format, lvl string) (kitlog.Logger, error) {
	logger, err := New(w, format, lvl)
	if err != nil {
		return nil, err
	}
	Logger = logger
	return logger, nil
}

func levelOption(lvl string) (level.Option, error) {
	switch strings.ToLower(lvl) {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	}
	return nil, fmt.Errorf("unsupported log level %q", lvl)
}
