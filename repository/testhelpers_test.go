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
	"strings"
	"sync/atomic"
	"testing"

	"github.com/strata-db/strata/types"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID    int64            `bun:"id,pk,autoincrement"`
	Name  string           `bun:"name,notnull"`
	Price float64          `bun:"price"`
	Meta  types.JsonObject `bun:"meta,type:text"`
}

// AuditEntry declares no primary key on purpose.
type AuditEntry struct {
	bun.BaseModel `bun:"table:audit_entries,alias:ae"`

	Ref  string `bun:"ref"`
	Note string `bun:"note"`
}

// testDBSeq distinguishes databases when newTestDB is called more than
// once within a single test; cache=shared keys on the DSN, so reusing
// the bare test name would hand back the previous call's database.
var testDBSeq atomic.Int64

// newTestDB opens a shared in-memory SQLite database scoped to the
// test and creates tables for the given models.
func newTestDB(t *testing.T, models ...interface{}) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared",
		strings.NewReplacer("/", "_", "#", "_").Replace(t.Name()),
		testDBSeq.Add(1))
	sqlDB, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Keep at least one connection alive or the shared in-memory
	// database is dropped between statements.
	sqlDB.SetMaxIdleConns(100)
	sqlDB.SetConnMaxLifetime(0)

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(context.Background()); err != nil {
			t.Fatalf("create table for %T: %v", model, err)
		}
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// seedProducts inserts n products named p01..pNN with ascending prices.
func seedProducts(t *testing.T, repo Repository[Product], n int) []*Product {
	t.Helper()
	items := make([]*Product, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, &Product{
			Name:  fmt.Sprintf("p%02d", i),
			Price: float64(i),
		})
	}
	if _, err := repo.AddAll(context.Background(), items); err != nil {
		t.Fatalf("seed products: %v", err)
	}
	return items
}

func productNames(items []*Product) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
