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
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/strata-db/strata/types"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/feature"
	"github.com/uptrace/bun/schema"
)

type baseRepositoryImpl[T any] struct {
	db     *bun.DB
	mapper Mapper[T]

	tableOnce sync.Once
	table     *schema.Table
}

// NewRepository returns a generic repository backed by the provided Bun
// DB, using the default model-metadata mapper.
func NewRepository[T any](db *bun.DB) Repository[T] {
	return NewRepositoryWithMapper[T](db, bunMapper[T]{})
}

// NewRepositoryWithMapper returns a repository that builds mutation
// statements through the given mapper.
func NewRepositoryWithMapper[T any](db *bun.DB, mapper Mapper[T]) Repository[T] {
	return &baseRepositoryImpl[T]{db: db, mapper: mapper}
}

func (r *baseRepositoryImpl[T]) Dialect() schema.Dialect { return r.db.Dialect() }

func (r *baseRepositoryImpl[T]) NewSelect() *bun.SelectQuery { return r.db.NewSelect() }

func (r *baseRepositoryImpl[T]) NewInsert() *bun.InsertQuery { return r.db.NewInsert() }

func (r *baseRepositoryImpl[T]) NewUpdate() *bun.UpdateQuery { return r.db.NewUpdate() }

func (r *baseRepositoryImpl[T]) NewDelete() *bun.DeleteQuery { return r.db.NewDelete() }

// Table resolves the metadata for T once and caches it for the lifetime
// of the repository. Non-struct record types have no table; callers get
// nil and must treat absence as a normal condition.
func (r *baseRepositoryImpl[T]) Table() *schema.Table {
	r.tableOnce.Do(func() {
		t := reflect.TypeFor[T]()
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return
		}
		r.table = r.db.Table(t)
	})
	return r.table
}

// pkField returns the first declared primary-key field of T, or nil.
func (r *baseRepositoryImpl[T]) pkField() *schema.Field {
	table := r.Table()
	if table == nil || len(table.PKs) == 0 {
		return nil
	}
	return table.PKs[0]
}

func (r *baseRepositoryImpl[T]) Single(ctx context.Context, item *T, column string, value any) (bool, error) {
	err := r.db.NewSelect().
		Model(item).
		Where("? = ?", bun.Ident(column), value).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *baseRepositoryImpl[T]) SingleBy(ctx context.Context, item *T, filter *types.QueryFilter) (bool, error) {
	err := r.db.NewSelect().
		Model(item).
		Where(filter.Schema, filter.Args...).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *baseRepositoryImpl[T]) Get(ctx context.Context, key any) (*T, error) {
	pk, err := r.requirePK()
	if err != nil {
		return nil, err
	}
	var entity T
	err = r.db.NewSelect().
		Model(&entity).
		Where("? = ?", bun.Ident(pk.Name), key).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s = %v", ErrNotFound, pk.Name, key)
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *baseRepositoryImpl[T]) All() *bun.SelectQuery {
	return r.db.NewSelect().Model((*T)(nil))
}

func (r *baseRepositoryImpl[T]) GetAll(ctx context.Context) ([]*T, error) {
	var entities []*T
	err := r.All().Scan(ctx, &entities)
	return entities, err
}

func (r *baseRepositoryImpl[T]) Find(filter *types.QueryFilter) *bun.SelectQuery {
	q := r.All()
	if filter != nil {
		q = q.Where(filter.Schema, filter.Args...)
	}
	return q
}

func (r *baseRepositoryImpl[T]) Search(ctx context.Context, column, text string) ([]*T, error) {
	if !strings.HasSuffix(text, "%") {
		text += "%"
	}
	var entities []*T
	err := r.db.NewSelect().
		Model(&entities).
		Where("? LIKE ?", bun.Ident(column), text).
		OrderExpr("? ASC", bun.Ident(column)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// Page runs two independent round trips: a count query first, then the
// page fetch. There is no consistency guarantee between the two under
// concurrent writes. Index and size are handed to the query builder
// unvalidated.
func (r *baseRepositoryImpl[T]) Page(ctx context.Context, index, size int, order ...string) (*types.Page[T], error) {
	column, desc, err := r.sortColumn(order)
	if err != nil {
		return nil, err
	}

	var entities []*T
	query := r.db.NewSelect().Model(&entities)

	page := types.NewEmptyPage[T](index, size)
	total, err := query.Count(ctx)
	if err != nil {
		return nil, err
	}
	page.Total = total
	if total == 0 {
		return page, nil
	}

	if desc {
		query = query.OrderExpr("? DESC", bun.Ident(column))
	} else {
		query = query.OrderExpr("? ASC", bun.Ident(column))
	}
	err = query.
		Offset(index * size).
		Limit(size).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	page.Items = entities
	return page, nil
}

// sortColumn picks the page sort column: the explicit order argument if
// present, else the primary key, else the first declared column.
func (r *baseRepositoryImpl[T]) sortColumn(order []string) (string, bool, error) {
	if len(order) > 0 && strings.TrimSpace(order[0]) != "" {
		column, desc := types.ParseOrder(order[0])
		return column, desc, nil
	}
	table := r.Table()
	if table == nil {
		return "", false, fmt.Errorf("%w: %T", ErrTableNotResolved, *new(T))
	}
	if len(table.PKs) > 0 {
		return table.PKs[0].Name, false, nil
	}
	if len(table.Fields) > 0 {
		return table.Fields[0].Name, false, nil
	}
	return "", false, fmt.Errorf("%w: table %s has no columns", ErrTableNotResolved, table.Name)
}

func (r *baseRepositoryImpl[T]) Add(ctx context.Context, item *T) (any, error) {
	query, err := r.mapper.ToInsert(r.db, item)
	if err != nil {
		return nil, err
	}
	if query == nil {
		return nil, nil
	}

	generated, err := r.execInsert(ctx, query)
	if err != nil {
		return nil, err
	}
	if generated != nil {
		r.backfillKey(item, generated)
	}
	return generated, nil
}

// execInsert runs a single insert. On dialects that can return the
// generated identity in the same round trip a RETURNING clause is
// appended; elsewhere LastInsertId is consulted. Only autoincrement
// primary keys count as store-generated identities.
func (r *baseRepositoryImpl[T]) execInsert(ctx context.Context, query *bun.InsertQuery) (any, error) {
	pk := r.pkField()
	identity := pk != nil && pk.AutoIncrement

	if identity && r.db.HasFeature(feature.InsertReturning) {
		var id int64
		if _, err := query.Returning("?", bun.Ident(pk.Name)).Exec(ctx, &id); err != nil {
			return nil, err
		}
		return id, nil
	}

	res, err := query.Exec(ctx)
	if err != nil {
		return nil, err
	}
	if !identity {
		return nil, nil
	}
	if id, err := res.LastInsertId(); err == nil && id != 0 {
		return id, nil
	}
	return nil, nil
}

func (r *baseRepositoryImpl[T]) AddAll(ctx context.Context, items []*T) (int64, error) {
	return r.bulk(ctx, items, func(idb bun.IDB, item *T) (Statement, error) {
		q, err := r.mapper.ToInsert(idb, item)
		if err != nil || q == nil {
			return nil, err
		}
		return q, nil
	})
}

func (r *baseRepositoryImpl[T]) Update(ctx context.Context, item *T) (int64, error) {
	query, err := r.mapper.ToUpdate(r.db, item)
	if err != nil {
		return 0, err
	}
	if query == nil {
		return 0, nil
	}
	res, err := query.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}

func (r *baseRepositoryImpl[T]) UpdateAll(ctx context.Context, items []*T) (int64, error) {
	return r.bulk(ctx, items, func(idb bun.IDB, item *T) (Statement, error) {
		q, err := r.mapper.ToUpdate(idb, item)
		if err != nil || q == nil {
			return nil, err
		}
		return q, nil
	})
}

func (r *baseRepositoryImpl[T]) Remove(ctx context.Context, item *T) (int64, error) {
	query, err := r.mapper.ToDelete(r.db, item)
	if err != nil {
		return 0, err
	}
	if query == nil {
		return 0, nil
	}
	res, err := query.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}

func (r *baseRepositoryImpl[T]) RemoveAll(ctx context.Context, items []*T) (int64, error) {
	return r.bulk(ctx, items, func(idb bun.IDB, item *T) (Statement, error) {
		q, err := r.mapper.ToDelete(idb, item)
		if err != nil || q == nil {
			return nil, err
		}
		return q, nil
	})
}

func (r *baseRepositoryImpl[T]) RemoveKey(ctx context.Context, key any) (int64, error) {
	table := r.Table()
	if table == nil {
		// No metadata means nothing to delete.
		return 0, nil
	}
	if len(table.PKs) == 0 {
		return 0, fmt.Errorf("%w: table %s", ErrNoPrimaryKey, table.Name)
	}
	var entity T
	res, err := r.db.NewDelete().
		Model(&entity).
		Where("? = ?", bun.Ident(table.PKs[0].Name), key).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}

func (r *baseRepositoryImpl[T]) RemoveWhere(ctx context.Context, filter *types.QueryFilter) (int64, error) {
	var entity T
	query := r.db.NewDelete().Model(&entity)
	if filter != nil {
		query = query.Where(filter.Schema, filter.Args...)
	} else {
		query = query.Where("1 = 1")
	}
	res, err := query.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return affected(res), nil
}

// bulk builds one statement per item and runs them as a single batch
// inside one transaction, so a mid-batch rejection leaves the store
// unchanged. A statement-construction failure aborts the iteration
// before anything executes.
func (r *baseRepositoryImpl[T]) bulk(ctx context.Context, items []*T, build func(bun.IDB, *T) (Statement, error)) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	var total int64
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		batch := NewBatch()
		for _, item := range items {
			stmt, err := build(tx, item)
			if err != nil {
				return err
			}
			batch.Queue(stmt)
		}
		n, err := batch.Execute(ctx)
		total = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *baseRepositoryImpl[T]) requirePK() (*schema.Field, error) {
	table := r.Table()
	if table == nil {
		return nil, fmt.Errorf("%w: %T", ErrTableNotResolved, *new(T))
	}
	if len(table.PKs) == 0 {
		return nil, fmt.Errorf("%w: table %s", ErrNoPrimaryKey, table.Name)
	}
	return table.PKs[0], nil
}

func affected(res sql.Result) int64 {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}
