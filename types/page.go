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

package types

import "strings"

const descSuffix = " desc"

// ParseOrder splits a sort expression into a column name and direction.
// A case-insensitive " desc" suffix selects descending order and is
// stripped from the returned column; everything else sorts ascending.
func ParseOrder(order string) (column string, desc bool) {
	trimmed := strings.TrimSpace(order)
	if len(trimmed) > len(descSuffix) &&
		strings.EqualFold(trimmed[len(trimmed)-len(descSuffix):], descSuffix) {
		return strings.TrimSpace(trimmed[:len(trimmed)-len(descSuffix)]), true
	}
	return trimmed, false
}

// Page holds one page of records along with the total record count
// across all pages. Index is zero-based.
type Page[T any] struct {
	Index int
	Size  int
	Total int
	Items []*T
}

// NewEmptyPage constructs a page container with no items.
func NewEmptyPage[T any](index, size int) *Page[T] {
	return &Page[T]{Index: index, Size: size, Items: make([]*T, 0)}
}

// Pages returns the number of pages needed to cover Total at Size
// records per page, or 0 when Size is not positive.
func (p *Page[T]) Pages() int {
	if p.Size <= 0 {
		return 0
	}
	n := p.Total / p.Size
	if p.Total%p.Size != 0 {
		n++
	}
	return n
}

// HasNext reports whether a page follows this one.
func (p *Page[T]) HasNext() bool {
	return p.Index+1 < p.Pages()
}
