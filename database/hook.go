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
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/uptrace/bun"
)

// queryLogEnv toggles the bundebug query log at runtime: unset or "0"
// disables it, "2" switches to verbose.
const queryLogEnv = "STRATA_QUERY_LOG"

// slowQueryEnv toggles the slow query hook at runtime: "1" enables it.
const slowQueryEnv = "STRATA_SLOW_QUERY_LOG"

var sqlSilentMode bool

// EnableSQLSilent suppresses all query hook output, for noisy test runs.
func EnableSQLSilent(b bool) {
	sqlSilentMode = b
}

// QueryHook prints executed statements colorized by operation, with
// timing and error details. Output defaults to stderr.
type QueryHook struct {
	enabled bool
	verbose bool
	writer  io.Writer
}

var _ bun.QueryHook = (*QueryHook)(nil)

// NewQueryHook returns a query hook writing to w (stderr when nil).
func NewQueryHook(verbose bool, w io.Writer) *QueryHook {
	if w == nil {
		w = os.Stderr
	}
	return &QueryHook{enabled: true, verbose: verbose, writer: w}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if sqlSilentMode {
		return
	}
	enabled := h.enabled
	verbose := h.verbose
	if env, ok := os.LookupEnv(queryLogEnv); ok {
		enabled = env != "" && env != "0"
		verbose = env == "2"
	}
	if !enabled {
		return
	}
	if !verbose {
		switch {
		case event.Err == nil, errors.Is(event.Err, sql.ErrNoRows), errors.Is(event.Err, sql.ErrTxDone):
			return
		}
	}

	now := time.Now()
	args := []interface{}{
		now.Format("2006-01-02 15:04:05.000"),
		fmt.Sprintf("%12s", now.Sub(event.StartTime).Round(time.Microsecond)),
		" ", colorizeQuery(event),
	}
	if event.Err != nil {
		args = append(args, "\t", color.New(color.BgRed).Sprintf(" %s ", event.Err.Error()))
	}
	_, _ = fmt.Fprintln(h.writer, args...)
}

func colorizeQuery(event *bun.QueryEvent) string {
	switch event.Operation() {
	case "SELECT":
		return color.GreenString(event.Query)
	case "INSERT":
		return color.BlueString(event.Query)
	case "UPDATE":
		return color.YellowString(event.Query)
	case "DELETE":
		return color.MagentaString(event.Query)
	default:
		return color.RedString(event.Query)
	}
}

// SlowQueryHook warns about statements that took longer than slowTime.
type SlowQueryHook struct {
	slowTime time.Duration
	logger   Logger
}

var _ bun.QueryHook = (*SlowQueryHook)(nil)

// NewSlowQueryHook returns a hook warning through logger when a
// statement exceeds slowTime.
func NewSlowQueryHook(slowTime time.Duration, logger Logger) *SlowQueryHook {
	return &SlowQueryHook{slowTime: slowTime, logger: logger}
}

func (h *SlowQueryHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *SlowQueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if sqlSilentMode || event.Err != nil {
		return
	}
	if env, ok := os.LookupEnv(slowQueryEnv); ok && env != "1" {
		return
	}

	duration := time.Since(event.StartTime)
	if duration <= h.slowTime {
		return
	}
	logger := h.logger
	if logger == nil {
		logger = GetLogger()
	}
	logger.Warn("slow query detected",
		"duration", duration,
		"slow_threshold", h.slowTime,
		"query", event.Query,
	)
}
