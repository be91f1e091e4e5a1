// Package zerolog adapts rs/zerolog to the logger.Logger interface,
// with a colored console writer for interactive runs.
package zerolog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/goterm/term"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/raykavin/strategycore/pkg/logger"
)

// Adapter wraps a zerolog.Logger to satisfy logger.Logger.
type Adapter struct {
	*zerolog.Logger
}

// New builds an Adapter at the given level, with the console writer
// colored and formatted the way an interactive run wants it, or as
// plain JSON lines when jsonFormat is set (the shape a log shipper
// expects).
func New(level, dateTimeLayout string, colored, jsonFormat bool) (*Adapter, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	logMode, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(logMode)

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		NoColor:    !colored,
		TimeFormat: dateTimeLayout,
	}

	if !jsonFormat {
		output.FormatLevel = formatLevel
		output.FormatMessage = formatMessage
		output.FormatCaller = formatCaller
		output.FormatTimestamp = func(i interface{}) string {
			return formatTimestamp(i, dateTimeLayout)
		}
	}

	var l zerolog.Logger
	if jsonFormat {
		l = log.Output(os.Stdout).With().CallerWithSkipFrameCount(3).Logger()
	} else {
		l = log.Output(output).With().CallerWithSkipFrameCount(3).Logger()
	}
	return &Adapter{&l}, nil
}

// NewAdapter wraps an already-built zerolog.Logger, for callers (such
// as a decision journal) that construct their own zerolog.Logger and
// want it to satisfy logger.Logger.
func NewAdapter(l *zerolog.Logger) *Adapter {
	return &Adapter{l}
}

func (z *Adapter) Print(args ...any) { z.Logger.Print(args...) }
func (z *Adapter) Debug(args ...any) { z.Logger.Debug().Msg(fmt.Sprint(args...)) }
func (z *Adapter) Info(args ...any)  { z.Logger.Info().Msg(fmt.Sprint(args...)) }
func (z *Adapter) Warn(args ...any)  { z.Logger.Warn().Msg(fmt.Sprint(args...)) }
func (z *Adapter) Error(args ...any) { z.Logger.Error().Msg(fmt.Sprint(args...)) }
func (z *Adapter) Fatal(args ...any) { z.Logger.Fatal().Msg(fmt.Sprint(args...)) }
func (z *Adapter) Panic(args ...any) { z.Logger.Panic().Msg(fmt.Sprint(args...)) }

func (z *Adapter) Printf(format string, args ...any) { z.Logger.Printf(format, args...) }
func (z *Adapter) Debugf(format string, args ...any) { z.Logger.Debug().Msgf(format, args...) }
func (z *Adapter) Infof(format string, args ...any)  { z.Logger.Info().Msgf(format, args...) }
func (z *Adapter) Warnf(format string, args ...any)  { z.Logger.Warn().Msgf(format, args...) }
func (z *Adapter) Errorf(format string, args ...any) { z.Logger.Error().Msgf(format, args...) }
func (z *Adapter) Fatalf(format string, args ...any) { z.Logger.Fatal().Msgf(format, args...) }
func (z *Adapter) Panicf(format string, args ...any) { z.Logger.Panic().Msgf(format, args...) }

// WithField implements logger.Logger.
func (z *Adapter) WithField(key string, value any) logger.Logger {
	l := z.With().Interface(key, value).Logger()
	return &Adapter{&l}
}

// WithFields implements logger.Logger.
func (z *Adapter) WithFields(fields map[string]any) logger.Logger {
	l := z.With().Fields(fields).Logger()
	return &Adapter{&l}
}

// WithError implements logger.Logger.
func (z *Adapter) WithError(err error) logger.Logger {
	l := z.With().Err(err).Logger()
	return &Adapter{&l}
}

func formatLevel(i interface{}) string {
	levelStr, ok := i.(string)
	if !ok {
		return "UNKNOWN"
	}
	switch levelStr {
	case zerolog.LevelTraceValue:
		return term.Cyanf("[TRC]")
	case zerolog.LevelDebugValue:
		return term.Cyanf("[DBG]")
	case zerolog.LevelInfoValue:
		return term.Greenf("[INF]")
	case zerolog.LevelWarnValue:
		return term.Yellowf("[WAR]")
	case zerolog.LevelPanicValue:
		return term.Redf("[PAN]")
	case zerolog.LevelFatalValue:
		return term.Redf("[FTL]")
	case zerolog.LevelErrorValue:
		return term.Redf("[ERR]")
	default:
		return term.Whitef("[UNK]")
	}
}

func formatMessage(i interface{}) string {
	const maxSize = 80

	msg, ok := i.(string)
	if !ok || len(msg) == 0 {
		return ">"
	}
	if len(msg) > maxSize {
		msg = msg[:maxSize]
	}
	if len(msg) < maxSize {
		msg += strings.Repeat(" ", maxSize-len(msg))
	}
	return term.Whitef("> %s", msg)
}

func formatCaller(i interface{}) string {
	const maxFileSize = 18
	const maxLineSize = 4

	fname, ok := i.(string)
	if !ok || len(fname) == 0 {
		return ""
	}

	caller := filepath.Base(fname)
	parts := strings.Split(caller, ":")
	if len(parts) != 2 {
		return caller
	}

	fileBase, line := parts[0], parts[1]
	if len(fileBase) > maxFileSize {
		fileBase = fileBase[:maxFileSize]
	} else {
		fileBase = fmt.Sprintf("%-*s", maxFileSize, fileBase)
	}
	if len(line) > maxLineSize {
		line = line[len(line)-maxLineSize:]
	} else {
		line = fmt.Sprintf("%*s", maxLineSize, line)
	}

	return term.Yellowf("[%s:%s]", fileBase, line)
}

func formatTimestamp(i interface{}, timeLayout string) string {
	strTime, ok := i.(string)
	if !ok {
		return term.Cyanf("[%v]", i)
	}

	ts, err := time.ParseInLocation(time.RFC3339, strTime, time.Local)
	if err != nil {
		return term.Cyanf("[%s]", strTime)
	}
	return term.Cyanf("[%s]", ts.In(time.Local).Format(timeLayout))
}
