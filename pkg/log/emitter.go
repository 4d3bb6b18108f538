// Copyright 2026 The gVisor Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// logrusLevel maps a Level to the logrus level used for formatting.
func (l Level) logrusLevel() logrus.Level {
	switch l {
	case Warning:
		return logrus.WarnLevel
	case Info:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}

// LogrusEmitter formats and writes log statements with a logrus logger.
type LogrusEmitter struct {
	Logger *logrus.Logger
}

// Emit implements Emitter.Emit.
func (e LogrusEmitter) Emit(depth int, level Level, timestamp time.Time, format string, v ...any) {
	entry := logrus.NewEntry(e.Logger).WithTime(timestamp)
	if _, file, line, ok := runtime.Caller(depth + 1); ok {
		entry = entry.WithField("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	entry.Logf(level.logrusLevel(), format, v...)
}

// NewEmitter returns an emitter writing to w in the given format: "text" or
// "json".
func NewEmitter(format string, w io.Writer) (Emitter, error) {
	l := logrus.New()
	l.SetOutput(&Writer{Next: w})
	// Filtering is done by BasicLogger.
	l.SetLevel(logrus.TraceLevel)
	switch format {
	case "text":
		l.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "0102 15:04:05.000000",
		})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	default:
		return nil, fmt.Errorf("invalid log format %q, must be 'text' or 'json'", format)
	}
	return LogrusEmitter{Logger: l}, nil
}

func mustEmitter(format string, w io.Writer) Emitter {
	e, err := NewEmitter(format, w)
	if err != nil {
		panic(err)
	}
	return e
}
