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
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestClassifyMySQLErrors(t *testing.T) {
	tests := []struct {
		number uint16
		kind   ErrorKind
	}{
		{1062, KindDuplicateKey},
		{1054, KindNoColumn},
		{1146, KindNoTable},
		{1048, KindNotNullViolation},
		{1217, KindForeignKeyViolation},
		{9999, KindUnknown},
	}
	for _, tt := range tests {
		err := &mysql.MySQLError{Number: tt.number, Message: "x"}
		ok, kind := Classify(err)
		if !ok || kind != tt.kind {
			t.Errorf("Classify(mysql %d) = (%v, %v), want (true, %v)", tt.number, ok, kind, tt.kind)
		}
	}
}

func TestClassifyWrappedMySQLError(t *testing.T) {
	err := fmt.Errorf("exec failed: %w", &mysql.MySQLError{Number: 1062})
	ok, kind := Classify(err)
	if !ok || kind != KindDuplicateKey {
		t.Fatalf("wrapped error not classified: (%v, %v)", ok, kind)
	}
}

func TestClassifyMessageErrors(t *testing.T) {
	tests := []struct {
		msg  string
		kind ErrorKind
	}{
		{`ERROR: relation "products" does not exist (SQLSTATE 42P01)`, KindNoTable},
		{"no such table: products", KindNoTable},
		{"no such column: nam", KindNoColumn},
		{"UNIQUE constraint failed: products.name", KindDuplicateKey},
		{"duplicate key value violates unique constraint (SQLSTATE 23505)", KindDuplicateKey},
		{"NOT NULL constraint failed: products.name", KindNotNullViolation},
		{"FOREIGN KEY constraint failed", KindForeignKeyViolation},
		{"string data right truncation (SQLSTATE 22001)", KindDataTruncated},
		{"datatype mismatch", KindInvalidTypeCast},
	}
	for _, tt := range tests {
		ok, kind := Classify(errors.New(tt.msg))
		if !ok || kind != tt.kind {
			t.Errorf("Classify(%q) = (%v, %v), want (true, %v)", tt.msg, ok, kind, tt.kind)
		}
	}
}

func TestClassifyUnknown(t *testing.T) {
	if ok, _ := Classify(errors.New("something unrelated")); ok {
		t.Fatal("unrelated error must not classify")
	}
	if ok, _ := Classify(nil); ok {
		t.Fatal("nil error must not classify")
	}
}

func TestKindHelpers(t *testing.T) {
	if !IsNoTable(errors.New("no such table: t")) {
		t.Fatal("IsNoTable missed a missing table")
	}
	if !IsDuplicateKey(errors.New("UNIQUE constraint failed: t.id")) {
		t.Fatal("IsDuplicateKey missed a unique violation")
	}
	if IsNoTable(errors.New("UNIQUE constraint failed: t.id")) {
		t.Fatal("IsNoTable misclassified")
	}
}
