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
	"fmt"
	"reflect"
	"strconv"

	"github.com/charmbracelet/log"
)

// backfillKey assigns a store-generated identity value onto the item's
// primary-key field. This is a convenience side channel of a successful
// insert: any failure here (missing field, coercion failure, reflect
// panic) is logged at debug level and discarded so it cannot mask the
// insert result.
func (r *baseRepositoryImpl[T]) backfillKey(item *T, generated any) {
	defer func() {
		if p := recover(); p != nil {
			log.Debug("identity back-fill skipped", "cause", p)
		}
	}()

	pk := r.pkField()
	if pk == nil || item == nil {
		return
	}
	field := pk.Value(reflect.ValueOf(item).Elem())
	if !field.CanSet() {
		log.Debug("identity back-fill skipped", "column", pk.Name, "cause", "field not settable")
		return
	}
	if err := coerceAssign(field, generated); err != nil {
		log.Debug("identity back-fill skipped", "column", pk.Name, "cause", err)
	}
}

// coerceAssign converts value to the field's declared type and assigns
// it. Only conversions that preserve the value are attempted.
func coerceAssign(field reflect.Value, value any) error {
	v := reflect.ValueOf(value)

	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			field.SetInt(v.Int())
			return nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			field.SetInt(int64(v.Uint()))
			return nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if v.Int() >= 0 {
				field.SetUint(uint64(v.Int()))
				return nil
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			field.SetUint(v.Uint())
			return nil
		}
	case reflect.String:
		switch v.Kind() {
		case reflect.String:
			field.SetString(v.String())
			return nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			field.SetString(strconv.FormatInt(v.Int(), 10))
			return nil
		}
	case reflect.Interface:
		field.Set(v)
		return nil
	default:
		if v.Type().AssignableTo(field.Type()) {
			field.Set(v)
			return nil
		}
	}
	return fmt.Errorf("cannot coerce %T into %s", value, field.Type())
}
