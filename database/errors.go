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
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrorKind classifies a store execution error across drivers. The
// layer never acts on these itself; they exist so callers can branch
// on the failure without parsing driver messages.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNoTable
	KindNoColumn
	KindNoIndex
	KindTableExists
	KindColumnExists
	KindIndexExists
	KindDuplicateKey
	KindNotNullViolation
	KindForeignKeyViolation
	KindCheckViolation
	KindDataTruncated
	KindInvalidTypeCast
)

// mysqlErrorKinds maps MySQL server error numbers onto kinds.
var mysqlErrorKinds = map[uint16]ErrorKind{
	1049: KindUnknown,
	1046: KindUnknown,
	1054: KindNoColumn,
	1060: KindColumnExists,
	1061: KindIndexExists,
	1062: KindDuplicateKey,
	1048: KindNotNullViolation,
	1091: KindNoIndex,
	1146: KindNoTable,
	1216: KindForeignKeyViolation,
	1217: KindForeignKeyViolation,
	1265: KindDataTruncated,
	3819: KindCheckViolation,
}

// messageKind matches one classification by SQLSTATE or message
// substrings, covering PostgreSQL and SQLite driver errors.
type messageKind struct {
	kind    ErrorKind
	needles [][]string
}

var messageKinds = []messageKind{
	{KindNoColumn, [][]string{{"sqlstate 42703"}, {"undefined column"}, {"no such column"}}},
	{KindNoIndex, [][]string{{"sqlstate 42704"}, {"no such index"}, {"does not exist", "index"}}},
	{KindNoTable, [][]string{{"sqlstate 42p01"}, {"undefined table"}, {"no such table"}}},
	{KindIndexExists, [][]string{{"already exists", "index"}}},
	{KindTableExists, [][]string{{"already exists", "table"}, {"already exists", "relation"}}},
	{KindDuplicateKey, [][]string{{"sqlstate 23505"}, {"duplicate key value"}, {"unique constraint failed"}}},
	{KindNotNullViolation, [][]string{{"sqlstate 23502"}, {"not-null constraint"}, {"not null constraint failed"}}},
	{KindForeignKeyViolation, [][]string{{"sqlstate 23503"}, {"foreign key violation"}, {"foreign key constraint failed"}}},
	{KindCheckViolation, [][]string{{"sqlstate 23514"}, {"check constraint"}}},
	{KindDataTruncated, [][]string{{"sqlstate 22001"}, {"string data right truncation"}, {"data truncated"}}},
	{KindInvalidTypeCast, [][]string{{"sqlstate 42804"}, {"datatype mismatch"}}},
}

// Classify reports whether err is a recognizable store error and its
// kind. Recognition is best effort: MySQL errors carry numeric codes,
// everything else is matched on SQLSTATE and message text.
func Classify(err error) (bool, ErrorKind) {
	if err == nil {
		return false, KindUnknown
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		if kind, ok := mysqlErrorKinds[mysqlErr.Number]; ok {
			return true, kind
		}
		return true, KindUnknown
	}

	msg := strings.ToLower(err.Error())
	for _, mk := range messageKinds {
		for _, needles := range mk.needles {
			if containsAll(msg, needles) {
				return true, mk.kind
			}
		}
	}
	return false, KindUnknown
}

// IsNoTable reports whether err indicates a missing table.
func IsNoTable(err error) bool {
	ok, kind := Classify(err)
	return ok && kind == KindNoTable
}

// IsDuplicateKey reports whether err indicates a unique constraint hit.
func IsDuplicateKey(err error) bool {
	ok, kind := Classify(err)
	return ok && kind == KindDuplicateKey
}

func containsAll(msg string, needles []string) bool {
	for _, n := range needles {
		if !strings.Contains(msg, n) {
			return false
		}
	}
	return true
}
