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

// Package flagset contains the machinery shared by the protocol's bit-set
// types. Each protocol domain (init flags, open flags, mount flags, ...) is a
// distinct named integer type, so bits from one domain cannot be handed to
// another without an explicit conversion. The helpers here never mask away
// bits that have no name; unknown bits survive every operation verbatim.
package flagset

import (
	"fmt"
	"strings"
)

// Bits is satisfied by the fixed-width integer types underlying every flag
// domain.
type Bits interface {
	~uint32 | ~uint64
}

// A Name gives a human-readable label to a single bit of a domain.
type Name[T Bits] struct {
	Bit  T
	Name string
}

// Set returns f with the given bits set when on is true and cleared
// otherwise. Bits outside of bit are left untouched.
func Set[T Bits](f T, bit T, on bool) T {
	if on {
		return f | bit
	}

	return f &^ bit
}

// Has reports whether every bit of bits is set in f.
func Has[T Bits](f T, bits T) bool {
	return f&bits == bits
}

// Mask returns the union of all named bits in the dictionary.
func Mask[T Bits](names []Name[T]) (m T) {
	for _, n := range names {
		m |= n.Bit
	}

	return
}

// Unknown returns the bits of f that have no name in the dictionary.
func Unknown[T Bits](f T, names []Name[T]) T {
	return f &^ Mask(names)
}

// Format renders f as a '|'-separated list of names, in dictionary order,
// followed by the hex value of any unnamed bits. The zero value renders as
// "0".
func Format[T Bits](f T, names []Name[T]) string {
	if f == 0 {
		return "0"
	}

	var parts []string
	for _, n := range names {
		if n.Bit != 0 && f&n.Bit == n.Bit {
			parts = append(parts, n.Name)
		}
	}

	if rest := Unknown(f, names); rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint64(rest)))
	}

	return strings.Join(parts, "|")
}
