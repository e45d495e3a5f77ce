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

import "errors"

var (
	// ErrNotFound is returned by Get when no row matches the key.
	ErrNotFound = errors.New("record not found")

	// ErrTableNotResolved is returned when an operation needs table
	// metadata and the record type does not map to a table.
	ErrTableNotResolved = errors.New("table metadata not resolved")

	// ErrNoPrimaryKey is returned by operations that structurally
	// require a primary key on a table that declares none.
	ErrNoPrimaryKey = errors.New("table has no primary key")

	// ErrBatchExecuted is returned when Execute is called on a batch
	// that already ran. Batches are single-use.
	ErrBatchExecuted = errors.New("batch already executed")
)
