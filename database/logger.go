/*
 * Copyright 2026 strata-db.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"os"
	"sync"

	charm "github.com/charmbracelet/log"
)

var (
	globalLogger   Logger
	globalLoggerMu sync.RWMutex
)

type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "DEBUG"
	}
}

// Logger is the structured logging contract of this package. Fields are
// alternating key/value pairs.
type Logger interface {
	SetLevel(LogLevel)
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// InitLogger installs a custom logger. It has no effect once a logger
// is already set.
func InitLogger(log Logger) {
	if log == nil {
		return
	}
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	if globalLogger == nil {
		globalLogger = log
	}
}

// GetLogger returns the active logger, installing the default
// charmbracelet-backed one on first use.
func GetLogger() Logger {
	globalLoggerMu.RLock()
	l := globalLogger
	globalLoggerMu.RUnlock()
	if l != nil {
		return l
	}

	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	if globalLogger == nil {
		globalLogger = newDefaultLogger()
	}
	return globalLogger
}

type defaultLogger struct {
	log *charm.Logger
}

func newDefaultLogger() *defaultLogger {
	opts := charm.Options{ReportTimestamp: true, Prefix: "database"}
	return &defaultLogger{log: charm.NewWithOptions(os.Stderr, opts)}
}

func (l *defaultLogger) SetLevel(level LogLevel) {
	switch level {
	case LogLevelDebug:
		l.log.SetLevel(charm.DebugLevel)
	case LogLevelInfo:
		l.log.SetLevel(charm.InfoLevel)
	case LogLevelWarn:
		l.log.SetLevel(charm.WarnLevel)
	case LogLevelError:
		l.log.SetLevel(charm.ErrorLevel)
	}
}

func (l *defaultLogger) Debug(msg string, fields ...interface{}) { l.log.Debug(msg, fields...) }

func (l *defaultLogger) Info(msg string, fields ...interface{}) { l.log.Info(msg, fields...) }

func (l *defaultLogger) Warn(msg string, fields ...interface{}) { l.log.Warn(msg, fields...) }

func (l *defaultLogger) Error(msg string, fields ...interface{}) { l.log.Error(msg, fields...) }
