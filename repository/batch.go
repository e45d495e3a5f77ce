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

package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Statement is an executable mutation. Bun insert, update, and delete
// query builders satisfy it. The batch treats statements as opaque and
// never inspects their intent.
type Statement interface {
	Exec(ctx context.Context, dest ...interface{}) (sql.Result, error)
}

// Batch accumulates pre-built statements and executes them as one
// logical unit. A batch is single-use: construct a fresh one per bulk
// call. Atomicity across statements is whatever the connection the
// statements were built on provides; the repository binds bulk
// statements to a single transaction.
type Batch struct {
	stmts    []Statement
	executed bool
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{stmts: make([]Statement, 0)}
}

// Queue appends a statement. Statements run in submission order.
// A nil statement is ignored. Queue does not execute anything.
func (b *Batch) Queue(stmt Statement) {
	if stmt == nil {
		return
	}
	b.stmts = append(b.stmts, stmt)
}

// Len returns the number of queued statements.
func (b *Batch) Len() int { return len(b.stmts) }

// Execute runs every queued statement and returns the summed
// affected-row counts. The first store rejection aborts the run and is
// surfaced as a single failure; no per-statement attribution beyond
// the queue position is provided. Calling Execute twice returns
// ErrBatchExecuted.
func (b *Batch) Execute(ctx context.Context) (int64, error) {
	if b.executed {
		return 0, ErrBatchExecuted
	}
	b.executed = true

	var total int64
	for i, stmt := range b.stmts {
		res, err := stmt.Exec(ctx)
		if err != nil {
			return 0, fmt.Errorf("batch statement %d of %d: %w", i+1, len(b.stmts), err)
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
	}
	return total, nil
}
