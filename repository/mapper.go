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

import "github.com/uptrace/bun"

// Mapper turns a record into an executable mutation statement. A nil
// query with a nil error means there is nothing to do for that record.
//
// The idb argument is the connection the statement must be bound to;
// for batched calls the repository passes the batch transaction here,
// so mappers must build against idb and not capture another handle.
type Mapper[T any] interface {
	ToInsert(idb bun.IDB, item *T) (*bun.InsertQuery, error)
	ToUpdate(idb bun.IDB, item *T) (*bun.UpdateQuery, error)
	ToDelete(idb bun.IDB, item *T) (*bun.DeleteQuery, error)
}

// bunMapper is the default Mapper: column mapping comes from the Bun
// model metadata of T, and update/delete statements target the row
// identified by the item's primary key.
type bunMapper[T any] struct{}

func (bunMapper[T]) ToInsert(idb bun.IDB, item *T) (*bun.InsertQuery, error) {
	if item == nil {
		return nil, nil
	}
	return idb.NewInsert().Model(item), nil
}

func (bunMapper[T]) ToUpdate(idb bun.IDB, item *T) (*bun.UpdateQuery, error) {
	if item == nil {
		return nil, nil
	}
	return idb.NewUpdate().Model(item).WherePK(), nil
}

func (bunMapper[T]) ToDelete(idb bun.IDB, item *T) (*bun.DeleteQuery, error) {
	if item == nil {
		return nil, nil
	}
	return idb.NewDelete().Model(item).WherePK(), nil
}
