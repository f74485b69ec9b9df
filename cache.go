// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serde

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
)

// fieldInfo stores cached information about one struct field.
type fieldInfo struct {
	index     []int  // Field index path (supports embedded structs)
	name      string // Encoded field name (tag value or Go name)
	omitEmpty bool   // Skip zero values when encoding
}

// structInfo holds cached field metadata for a struct type under one tag.
type structInfo struct {
	fields []fieldInfo
	byName map[string]int // Encoded name -> index into fields
	names  []string       // Encoded names in field order
}

var (
	// RCU pattern: atomic pointer to immutable map
	structInfoCachePtr atomic.Pointer[map[cacheKey]*structInfo]

	// Write-side lock (only for cache updates)
	structInfoCacheMu sync.Mutex
)

func init() {
	m := make(map[cacheKey]*structInfo)
	structInfoCachePtr.Store(&m)
}

// cacheKey is the key for the struct cache.
type cacheKey struct {
	typ reflect.Type
	tag string
}

// getStructInfo retrieves or parses struct metadata from the cache.
// It uses a read-copy-update pattern: lock-free reads, copy-on-write
// updates under a mutex with double-check. Multiple goroutines reflecting
// over the same type+tag parse it only once.
func getStructInfo(typ reflect.Type, tag string) *structInfo {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		panic(fmt.Sprintf("serde: getStructInfo expects struct, got %s", typ.Kind()))
	}

	key := cacheKey{typ: typ, tag: tag}

	m := structInfoCachePtr.Load()
	if si, ok := (*m)[key]; ok {
		return si
	}

	structInfoCacheMu.Lock()
	defer structInfoCacheMu.Unlock()

	// Double-check: another goroutine might have populated it
	m = structInfoCachePtr.Load()
	if si, ok := (*m)[key]; ok {
		return si
	}

	si := parseStructInfo(typ, tag)

	newMap := make(map[cacheKey]*structInfo, len(*m)+1)
	maps.Copy(newMap, *m)
	newMap[key] = si

	structInfoCachePtr.Store(&newMap)

	return si
}

func parseStructInfo(t reflect.Type, tag string) *structInfo {
	info := &structInfo{}
	parseStructType(t, tag, nil, info)

	info.byName = make(map[string]int, len(info.fields))
	info.names = make([]string, len(info.fields))
	for i, f := range info.fields {
		info.byName[f.name] = i
		info.names[i] = f.name
	}

	return info
}

// parseStructType recursively collects exported fields, flattening
// embedded structs. indexPrefix tracks the field index path.
func parseStructType(t reflect.Type, tag string, indexPrefix []int, info *structInfo) {
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		index := make([]int, 0, len(indexPrefix)+1)
		index = append(index, indexPrefix...)
		index = append(index, i)

		fieldType := field.Type
		kind := fieldType.Kind()
		if kind == reflect.Pointer && fieldType.Elem().Kind() == reflect.Struct {
			fieldType = fieldType.Elem()
			kind = reflect.Struct
		}

		if field.Anonymous && kind == reflect.Struct && field.Tag.Get(tag) == "" {
			parseStructType(fieldType, tag, index, info)
			continue
		}

		name := field.Name
		var omitEmpty bool
		if raw := field.Tag.Get(tag); raw != "" {
			base, opts, hasOpts := strings.Cut(raw, ",")
			if base == "-" && !hasOpts {
				continue
			}
			if base != "" {
				name = base
			}
			if hasOpts {
				for opt := range strings.SplitSeq(opts, ",") {
					if opt == "omitempty" {
						omitEmpty = true
					}
				}
			}
		}

		info.fields = append(info.fields, fieldInfo{
			index:     index,
			name:      name,
			omitEmpty: omitEmpty,
		})
	}
}
