// Copyright 2015 Google Inc. All Rights Reserved.
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

package fusekernel

import (
	"fmt"
	"reflect"

	"github.com/NVIDIA/cstruct"
)

// Reserved regions of outbound records are typed as PaddingN. Pack writes
// them as zero whatever they hold, so a stray value assigned to one never
// reaches the kernel.
//
// Inbound records use plain integers for their reserved fields; the kernel's
// padding is not validated and a nonzero value there is not an error.
type (
	Padding16 uint16
	Padding32 uint32
	Padding64 uint64
)

// NonzeroPadding16 and friends are the one sanctioned way to put a nonzero
// value into a reserved field. Use them only for a field whose reserved
// status has been lifted by a newer protocol revision than this package
// knows about, and hand the record to Pack wrapped in a PaddingOverride;
// otherwise the value is dropped.
func NonzeroPadding16(v uint16) Padding16 { return Padding16(v) }
func NonzeroPadding32(v uint32) Padding32 { return Padding32(v) }
func NonzeroPadding64(v uint64) Padding64 { return Padding64(v) }

// PaddingOverride wraps a record (or a pointer to one) whose padding fields
// Pack must write as they are.
type PaddingOverride struct {
	Record interface{}
}

var paddingTypes = map[reflect.Type]bool{
	reflect.TypeOf(Padding16(0)): true,
	reflect.TypeOf(Padding32(0)): true,
	reflect.TypeOf(Padding64(0)): true,
}

// Whether values of type t contain a padding field anywhere.
func hasPadding(t reflect.Type) bool {
	switch {
	case paddingTypes[t]:
		return true

	case t.Kind() == reflect.Array:
		return hasPadding(t.Elem())

	case t.Kind() == reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPadding(t.Field(i).Type) {
				return true
			}
		}
	}

	return false
}

// Set every padding field within v, which must be settable, to zero.
func zeroPadding(v reflect.Value) {
	switch {
	case paddingTypes[v.Type()]:
		v.SetUint(0)

	case v.Kind() == reflect.Array:
		for i := 0; i < v.Len(); i++ {
			zeroPadding(v.Index(i))
		}

	case v.Kind() == reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			zeroPadding(v.Field(i))
		}
	}
}

// Pack returns the wire form of rec, a record or a pointer to one, in host
// byte order. Padding fields are written as zero unless rec is a
// PaddingOverride. rec itself is not modified.
func Pack(rec interface{}) (b []byte, err error) {
	if o, ok := rec.(PaddingOverride); ok {
		b, err = cstruct.Pack(o.Record, HostOrder)
		return
	}

	v := reflect.ValueOf(rec)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if !v.IsValid() {
		err = fmt.Errorf("cannot pack %T", rec)
		return
	}

	if !hasPadding(v.Type()) {
		b, err = cstruct.Pack(rec, HostOrder)
		return
	}

	c := reflect.New(v.Type())
	c.Elem().Set(v)
	zeroPadding(c.Elem())

	b, err = cstruct.Pack(c.Interface(), HostOrder)
	return
}
