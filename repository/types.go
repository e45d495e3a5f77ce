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

	"github.com/strata-db/strata/types"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// LoadRepository defines read operations for a generic record type.
//
// "Not found" is a normal negative result on the load paths: Single and
// SingleBy report it as a false flag, never as an error.
type LoadRepository[T any] interface {
	// Single loads the first row matching column = value onto item in
	// place and reports whether a row was found. Item is left untouched
	// when nothing matches. Rows beyond the first are never consulted.
	Single(ctx context.Context, item *T, column string, value any) (bool, error)

	// SingleBy is Single with an arbitrary translated predicate.
	SingleBy(ctx context.Context, item *T, filter *types.QueryFilter) (bool, error)

	// Get returns the record whose primary key equals key, or
	// ErrNotFound. Requires the table to declare a primary key.
	Get(ctx context.Context, key any) (*T, error)

	// All returns a deferred query over the full table. Nothing executes
	// until the caller scans it, and it may be scanned more than once.
	All() *bun.SelectQuery

	// GetAll eagerly materializes All.
	GetAll(ctx context.Context) ([]*T, error)

	// Find returns a deferred query filtered by the predicate.
	Find(filter *types.QueryFilter) *bun.SelectQuery

	// Search performs a starts-with match on column, appending the %
	// wildcard unless text already ends with one. Results are ordered
	// ascending by the same column.
	Search(ctx context.Context, column, text string) ([]*T, error)
}

// PageRepository defines paged listing.
type PageRepository[T any] interface {
	// Page fetches one zero-based page of rows plus the total record
	// count. The sort column is the first order argument if given
	// (a case-insensitive " desc" suffix flips direction), otherwise
	// the primary key, otherwise the first declared column.
	Page(ctx context.Context, index, size int, order ...string) (*types.Page[T], error)
}

// MutationRepository defines single and batched write operations.
type MutationRepository[T any] interface {
	// Add inserts item and returns the generated identity value, if the
	// store produced one. On success the item's primary-key field is
	// populated with the generated value on a best-effort basis;
	// back-fill failures never surface.
	Add(ctx context.Context, item *T) (any, error)

	// AddAll inserts items as one batch and returns the aggregate
	// affected-row count. Generated keys are not back-filled.
	AddAll(ctx context.Context, items []*T) (int64, error)

	// Update writes item and returns the affected-row count; 0 when the
	// mapper produced no statement.
	Update(ctx context.Context, item *T) (int64, error)

	// UpdateAll updates items as one batch.
	UpdateAll(ctx context.Context, items []*T) (int64, error)

	// Remove deletes item and returns the affected-row count.
	Remove(ctx context.Context, item *T) (int64, error)

	// RemoveAll deletes items as one batch.
	RemoveAll(ctx context.Context, items []*T) (int64, error)

	// RemoveKey deletes the row whose primary key equals key. A record
	// type with no resolvable table is nothing to delete: 0, no error.
	RemoveKey(ctx context.Context, key any) (int64, error)

	// RemoveWhere deletes every row matching the predicate in a single
	// statement, bypassing per-item batching.
	RemoveWhere(ctx context.Context, filter *types.QueryFilter) (int64, error)
}

// Repository combines load, paging, and mutation operations and exposes
// the underlying Bun query builders for advanced use cases.
type Repository[T any] interface {
	LoadRepository[T]
	PageRepository[T]
	MutationRepository[T]

	// Table returns the resolved table metadata for T, or nil when T
	// does not map to a table. Absence is a value, not an error.
	Table() *schema.Table

	Dialect() schema.Dialect
	NewSelect() *bun.SelectQuery
	NewInsert() *bun.InsertQuery
	NewUpdate() *bun.UpdateQuery
	NewDelete() *bun.DeleteQuery
}
