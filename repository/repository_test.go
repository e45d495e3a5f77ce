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
	"errors"
	"testing"

	"github.com/strata-db/strata/types"
)

func TestSingleLoadsFirstMatch(t *testing.T) {
	db := newTestDB(t, (*Product)(nil))
	repo := NewRepository[Product](db)
	ctx := context.Background()
	seedProducts(t, repo, 3)

	var item Product
	found, err := repo.Single(ctx, &item, "name", "p02")
	if err != nil {
		t.Fatalf("single: %v", err)
	}
	if !found {
		t.Fatal("expected a match")
	}
	if item.Name != "p02" || item.Price != 2 {
		t.Fatalf("wrong row loaded: %+v", item)
	}
}

func TestSingleMissLeavesItemUntouched(t *testing.T) {
	db := newTestDB(t, (*Product)(nil))
	repo := NewRepository[Product](db)
	ctx := context.Background()
	seedProducts(t, repo, 3)

	item := Product{Name: "sentinel", Price: 99}
	found, err := repo.Single(ctx, &item, "name", "does-not-exist")
	if err != nil {
		t.Fatalf("single: %v", err)
	}
	if found {
		t.Fatal("expected no match")
	}
	if item.Name != "sentinel" || item.Price != 99 {
		t.Fatalf("item mutated on miss: %+v", item)
	}
}

func TestSingleByPredicate(t *testing.T) {
	db := newTestDB(t, (*Product)(nil))
	repo := NewRepository[Product](db)
	ctx := context.Background()
	seedProducts(t, repo, 5)

	var item Product
	found, err := repo.SingleBy(ctx, &item, types.NewQueryFilter("price > ?", 3.5))
	if err != nil {
		t.Fatalf("single by: %v", err)
	}
	if !found {
		t.Fatal("expected a match")
	}
	if item.Price <= 3.5 {
		t.Fatalf("row does not satisfy predicate: %+v", item)
	}
}

func TestGetByKey(t *testing.T) {
	db := newTestDB(t, (*Product)(nil))
	repo := NewRepository[Product](db)
	ctx := context.Background()

	generated, err := repo.Add(ctx, &Product{Name: "solo", Price: 7})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := repo.Get(ctx, generated)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "solo" {
		t.Fatalf("wrong record: %+v", got)
	}
}

func TestGetNotFound(t *testing.T) {
	db := newTestDB(t, (*Product)(nil))
	repo := NewRepository[Product](db)

	_, err := repo.Get(context.Background(), int64(12345))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGetRequiresPrimaryKey(t *testing.T) {
	db := newTestDB(t, (*AuditEntry)(nil))
	repo := NewRepository[AuditEntry](db)

	_, err := repo.Get(context.Background(), "x")
	if !errors.Is(err, ErrNoPrimaryKey) {
		t.Fatalf("want ErrNoPrimaryKey, got %v", err)
	}
}

func TestTableResolution(t *testing.T) {
	db := newTestDB(t)

	if table := NewRepository[Product](db).Table(); table == nil || table.Name != "products" {
		t.Fatalf("unexpected table metadata: %+v", table)
	}
	// Non-struct record types resolve to no table at all.
	if table := NewRepository[int64](db).Table(); table != nil {
		t.Fatalf("expected nil table for int64, got %+v", table)
	}
}

func TestAllIsDeferredAndReiterable(t *testing.T) {
	db := newTestDB(t, (*Product)(nil))
	repo := NewRepository[Product](db)
	ctx := context.Background()
	seedProducts(t, repo, 2)

	query := repo.All()

	var first []*Product
	if err := query.Scan(ctx, &first); err != nil {
		t.Fatalf("first scan: %v", err)
	}
	if _, err := repo.Add(ctx, &Product{Name: "late", Price: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}

	var second []*Product
	if err := query.Scan(ctx, &second); err != nil {
		t.Fatalf("second scan: %v", err)
	}
	// The second consumption re-executes and observes the new row.
	if len(first) != 2 || len(second) != 3 {
		t.Fatalf("want 2 then 3 rows, got %d then %d", len(first), len(second))
	}
}

func TestFindFiltersLazily(t *testing.T) {
	db := newTestDB(t, (*Product)(nil))
	repo := NewRepository[Product](db)
	ctx := context.Background()
	seedProducts(t, repo, 5)

	var items []*Product
	err := repo.Find(types.NewQueryFilter("price >= ?", 4)).Scan(ctx, &items)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 rows, got %d", len(items))
	}
}

func TestSearchNormalizesWildcard(t *testing.T) {
	db := newTestDB(t, (*Product)(nil))
	repo := NewRepository[Product](db)
	ctx := context.Background()
	for _, name := range []string{"abc", "abd", "xyz", "ab"} {
		if _, err := repo.Add(ctx, &Product{Name: name, Price: 1}); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	plain, err := repo.Search(ctx, "name", "ab")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	suffixed, err := repo.Search(ctx, "name", "ab%")
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if !equalStrings(productNames(plain), productNames(suffixed)) {
		t.Fatalf("wildcard normalization differs: %v vs %v", productNames(plain), productNames(suffixed))
	}
	if want := []string{"ab", "abc", "abd"}; !equalStrings(productNames(plain), want) {
		t.Fatalf("want %v ascending, got %v", want, productNames(plain))
	}
}

func TestPageContents(t *testing.T) {
	db := newTestDB(t, (*Product)(nil))
	repo := NewRepository[Product](db)
	ctx := context.Background()
	seedProducts(t, repo, 25)

	page, err := repo.Page(ctx, 1, 10, "name")
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if page.Total != 25 {
		t.Fatalf("want total 25, got %d", page.Total)
	}
	if len(page.Items) != 10 {
		t.Fatalf("want 10 items, got %d", len(page.Items))
	}
	if page.Items[0].Name != "p11" || page.Items[9].Name != "p20" {
		t.Fatalf("wrong page window: %v", productNames(page.Items))
	}
	if page.Pages() != 3 || !page.HasNext() {
		t.Fatalf("wrong page math: pages=%d hasNext=%v", page.Pages(), page.HasNext())
	}
}

func TestPageIsIdempotentWithoutWrites(t *testing.T) {
	db := newTestDB(t, (*Product)(nil))
	repo := NewRepository[Product](db)
	ctx := context.Background()
	seedProducts(t, repo, 12)

	first, err := repo.Page(ctx, 0, 5, "name")
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	second, err := repo.Page(ctx, 0, 5, "name")
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if first.Total != second.Total {
		t.Fatalf("total changed: %d vs %d", first.Total, second.Total)
	}
	if !equalStrings(productNames(first.Items), productNames(second.Items)) {
		t.Fatalf("page contents changed: %v vs %v", productNames(first.Items), productNames(second.Items))
	}
}

func TestPageTotalMatchesGetAll(t *testing.T) {
	db := newTestDB(t, (*Product)(nil))
	repo := NewRepository[Product](db)
	ctx := context.Background()
	seedProducts(t, repo, 9)

	page, err := repo.Page(ctx, 0, 4)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if page.Total != len(all) {
		t.Fatalf("total %d != count(all) %d", page.Total, len(all))
	}
}

func TestPageDescReversesAsc(t *testing.T) {
	db := newTestDB(t, (*Product)(nil))
	repo := NewRepository[Product](db)
	ctx := context.Background()
	seedProducts(t, repo, 6)

	asc, err := repo.Page(ctx, 0, 6, "name")
	if err != nil {
		t.Fatalf("page asc: %v", err)
	}
	desc, err := repo.Page(ctx, 0, 6, "name DESC")
	if err != nil {
		t.Fatalf("page desc: %v", err)
	}

	ascNames := productNames(asc.Items)
	descNames := productNames(desc.Items)
	for i := range ascNames {
		if ascNames[i] != descNames[len(descNames)-1-i] {
			t.Fatalf("desc is not the reverse of asc: %v vs %v", ascNames, descNames)
		}
	}
}

func TestPageDefaultSortIsPrimaryKey(t *testing.T) {
	db := newTestDB(t, (*Product)(nil))
	repo := NewRepository[Product](db)
	ctx := context.Background()
	seedProducts(t, repo, 5)

	page, err := repo.Page(ctx, 0, 5)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i-1].ID > page.Items[i].ID {
			t.Fatalf("not ordered by primary key: %v", page.Items)
		}
	}
}

func TestPageDefaultSortWithoutPrimaryKey(t *testing.T) {
	db := newTestDB(t, (*AuditEntry)(nil))
	repo := NewRepository[AuditEntry](db)
	ctx := context.Background()

	if _, err := repo.AddAll(ctx, []*AuditEntry{
		{Ref: "b", Note: "second"},
		{Ref: "a", Note: "first"},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Falls back to the first declared column, ref.
	page, err := repo.Page(ctx, 0, 10)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].Ref != "a" {
		t.Fatalf("unexpected default ordering: %+v", page.Items)
	}
}
