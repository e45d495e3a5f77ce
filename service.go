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

// Package strata is a typed repository layer over a relational store.
// SQL generation, connection management, and schema metadata come from
// Bun; this layer adds the policy around it: batched bulk mutations,
// paged listing with ordering, prefix search, and best-effort identity
// back-fill after inserts.
package strata

import (
	"context"
	"sync"

	"github.com/strata-db/strata/database"
	"github.com/strata-db/strata/repository"
	"github.com/strata-db/strata/types"

	"github.com/uptrace/bun"
)

// Service is the application-facing façade for one record type. It
// lazily binds to the global database connection on first use.
type Service[T any] interface {
	// Single loads the first row matching column = value onto item and
	// reports whether one was found.
	Single(ctx context.Context, item *T, column string, value any) (bool, error)

	// SingleBy is Single with an arbitrary translated predicate.
	SingleBy(ctx context.Context, item *T, filter *types.QueryFilter) (bool, error)

	// Get returns the record with the given primary key value.
	Get(ctx context.Context, key any) (*T, error)

	// All returns every record.
	All(ctx context.Context) ([]*T, error)

	// Find returns a deferred query filtered by the predicate.
	Find(filter *types.QueryFilter) *bun.SelectQuery

	// Page returns one zero-based page of records plus the total count.
	Page(ctx context.Context, index, size int, order ...string) (*types.Page[T], error)

	// Search returns records whose column starts with text, ordered by
	// that column.
	Search(ctx context.Context, column, text string) ([]*T, error)

	// Add inserts one record and returns the generated key, if any.
	Add(ctx context.Context, item *T) (any, error)

	// AddAll inserts records as one batch.
	AddAll(ctx context.Context, items []*T) (int64, error)

	// Update writes one record; returns the affected-row count.
	Update(ctx context.Context, item *T) (int64, error)

	// UpdateAll updates records as one batch.
	UpdateAll(ctx context.Context, items []*T) (int64, error)

	// Remove deletes one record.
	Remove(ctx context.Context, item *T) (int64, error)

	// RemoveAll deletes records as one batch.
	RemoveAll(ctx context.Context, items []*T) (int64, error)

	// RemoveKey deletes the record with the given primary key value.
	RemoveKey(ctx context.Context, key any) (int64, error)

	// RemoveWhere deletes every record matching the predicate.
	RemoveWhere(ctx context.Context, filter *types.QueryFilter) (int64, error)

	// SelectBuilder returns a Bun select query builder.
	SelectBuilder() *bun.SelectQuery

	// InsertBuilder returns a Bun insert query builder.
	InsertBuilder() *bun.InsertQuery

	// UpdateBuilder returns a Bun update query builder.
	UpdateBuilder() *bun.UpdateQuery

	// DeleteBuilder returns a Bun delete query builder.
	DeleteBuilder() *bun.DeleteQuery
}

type baseServiceImpl[T any] struct {
	repo repository.Repository[T]
	once sync.Once
}

// NewService returns a Service backed by the generic repository and the
// global database connection.
func NewService[T any]() Service[T] {
	return &baseServiceImpl[T]{}
}

func (s *baseServiceImpl[T]) baseRepo() repository.Repository[T] {
	s.once.Do(func() { s.repo = repository.NewRepository[T](database.GetDB()) })
	return s.repo
}

func (s *baseServiceImpl[T]) Single(ctx context.Context, item *T, column string, value any) (bool, error) {
	return s.baseRepo().Single(ctx, item, column, value)
}

func (s *baseServiceImpl[T]) SingleBy(ctx context.Context, item *T, filter *types.QueryFilter) (bool, error) {
	return s.baseRepo().SingleBy(ctx, item, filter)
}

func (s *baseServiceImpl[T]) Get(ctx context.Context, key any) (*T, error) {
	return s.baseRepo().Get(ctx, key)
}

func (s *baseServiceImpl[T]) All(ctx context.Context) ([]*T, error) {
	return s.baseRepo().GetAll(ctx)
}

func (s *baseServiceImpl[T]) Find(filter *types.QueryFilter) *bun.SelectQuery {
	return s.baseRepo().Find(filter)
}

func (s *baseServiceImpl[T]) Page(ctx context.Context, index, size int, order ...string) (*types.Page[T], error) {
	return s.baseRepo().Page(ctx, index, size, order...)
}

func (s *baseServiceImpl[T]) Search(ctx context.Context, column, text string) ([]*T, error) {
	return s.baseRepo().Search(ctx, column, text)
}

func (s *baseServiceImpl[T]) Add(ctx context.Context, item *T) (any, error) {
	return s.baseRepo().Add(ctx, item)
}

func (s *baseServiceImpl[T]) AddAll(ctx context.Context, items []*T) (int64, error) {
	return s.baseRepo().AddAll(ctx, items)
}

func (s *baseServiceImpl[T]) Update(ctx context.Context, item *T) (int64, error) {
	return s.baseRepo().Update(ctx, item)
}

func (s *baseServiceImpl[T]) UpdateAll(ctx context.Context, items []*T) (int64, error) {
	return s.baseRepo().UpdateAll(ctx, items)
}

func (s *baseServiceImpl[T]) Remove(ctx context.Context, item *T) (int64, error) {
	return s.baseRepo().Remove(ctx, item)
}

func (s *baseServiceImpl[T]) RemoveAll(ctx context.Context, items []*T) (int64, error) {
	return s.baseRepo().RemoveAll(ctx, items)
}

func (s *baseServiceImpl[T]) RemoveKey(ctx context.Context, key any) (int64, error) {
	return s.baseRepo().RemoveKey(ctx, key)
}

func (s *baseServiceImpl[T]) RemoveWhere(ctx context.Context, filter *types.QueryFilter) (int64, error) {
	return s.baseRepo().RemoveWhere(ctx, filter)
}

func (s *baseServiceImpl[T]) SelectBuilder() *bun.SelectQuery {
	return s.baseRepo().NewSelect()
}

func (s *baseServiceImpl[T]) InsertBuilder() *bun.InsertQuery {
	return s.baseRepo().NewInsert()
}

func (s *baseServiceImpl[T]) UpdateBuilder() *bun.UpdateQuery {
	return s.baseRepo().NewUpdate()
}

func (s *baseServiceImpl[T]) DeleteBuilder() *bun.DeleteQuery {
	return s.baseRepo().NewDelete()
}
