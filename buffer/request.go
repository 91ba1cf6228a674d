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

package buffer

import (
	"errors"
	"fmt"

	"github.com/NVIDIA/cstruct"
	"github.com/jacobsa/rawfuse/fusekernel"
)

// The ways in which Decode can reject a buffer. Test with errors.Is.
var (
	ErrTruncated      = errors.New("truncated message")
	ErrLengthMismatch = errors.New("length mismatch")
	ErrUnknownOpcode  = errors.New("unknown opcode")
)

// DecodeError is returned by Decode. Kind is one of the Err* values above.
type DecodeError struct {
	Kind error

	// The request header, when enough of the buffer was present to read it.
	Header     fusekernel.InHeader
	HaveHeader bool

	Detail string
}

func (e *DecodeError) Error() string {
	if e.HaveHeader {
		return fmt.Sprintf(
			"decoding request %d (opcode %d): %v: %s",
			e.Header.Unique,
			uint32(e.Header.Opcode),
			e.Kind,
			e.Detail)
	}

	return fmt.Sprintf("decoding request: %v: %s", e.Kind, e.Detail)
}

func (e *DecodeError) Unwrap() error {
	return e.Kind
}

// Unique returns the ID of the request that failed to decode. ok is false
// when the header itself could not be read, in which case the request cannot
// be answered.
func (e *DecodeError) Unique() (unique uint64, ok bool) {
	return e.Header.Unique, e.HaveHeader
}

// Request is a decoded request. Body is a pointer to the record type named
// by Op.In (for example *fusekernel.GetattrIn for GETATTR), or nil when the
// operation has no fixed record; callers switch on its dynamic type or on
// Header.Opcode.
type Request struct {
	Header fusekernel.InHeader
	Op     *fusekernel.OpInfo
	Body   interface{}

	// Whatever follows the fixed record: names, write data, arrays. It aliases
	// the buffer given to Decode and is not validated in any way.
	Tail []byte
}

// Decode interprets b as exactly one request. It checks only structure: that
// the header fits, that the header's length field matches len(b), that the
// opcode is in the catalog, and that the operation's fixed record fits.
// Field values are not inspected.
//
// Decode does not modify b and keeps no state, so it may be called
// concurrently on distinct buffers.
func Decode(b []byte) (r *Request, err error) {
	if len(b) < fusekernel.InHeaderSize {
		err = &DecodeError{
			Kind:   ErrTruncated,
			Detail: fmt.Sprintf("%d bytes is shorter than the header", len(b)),
		}
		return
	}

	r = &Request{}
	if _, err = cstruct.Unpack(b[:fusekernel.InHeaderSize], &r.Header, fusekernel.HostOrder); err != nil {
		panic(fmt.Sprintf("cstruct.Unpack(InHeader): %v", err))
	}

	h := r.Header
	if uint64(h.Len) != uint64(len(b)) {
		r = nil
		err = &DecodeError{
			Kind:       ErrLengthMismatch,
			Header:     h,
			HaveHeader: true,
			Detail:     fmt.Sprintf("header says %d bytes, have %d", h.Len, len(b)),
		}
		return
	}

	info, ok := fusekernel.LookupOp(h.Opcode)
	if !ok {
		r = nil
		err = &DecodeError{
			Kind:       ErrUnknownOpcode,
			Header:     h,
			HaveHeader: true,
			Detail:     fmt.Sprintf("%d is not a known operation", uint32(h.Opcode)),
		}
		return
	}

	r.Op = info
	payload := b[fusekernel.InHeaderSize:]

	if info.In != nil {
		need := info.In.Size
		if info.MinIn != 0 {
			need = info.MinIn
		}

		if uintptr(len(payload)) < need {
			r = nil
			err = &DecodeError{
				Kind:       ErrTruncated,
				Header:     h,
				HaveHeader: true,
				Detail: fmt.Sprintf(
					"%s needs %d payload bytes, have %d",
					info.Name,
					need,
					len(payload)),
			}
			return
		}

		// A short record from an older kernel is zero-extended.
		fixed := payload
		if uintptr(len(fixed)) < info.In.Size {
			fixed = make([]byte, info.In.Size)
			copy(fixed, payload)
			payload = payload[len(payload):]
		} else {
			payload = payload[info.In.Size:]
		}

		r.Body = info.In.New()
		if _, err = cstruct.Unpack(fixed[:info.In.Size], r.Body, fusekernel.HostOrder); err != nil {
			panic(fmt.Sprintf("cstruct.Unpack(%s): %v", info.In.Type, err))
		}
	}

	if len(payload) > 0 {
		r.Tail = payload
	}

	return
}
