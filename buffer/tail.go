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
	"bytes"
	"errors"
	"fmt"

	"github.com/NVIDIA/cstruct"
	"github.com/jacobsa/rawfuse/fusekernel"
)

// ErrMalformedTail is returned by the helpers below when a request's tail
// does not have the form its operation calls for. Decode never returns it;
// the tail is only examined when a handler asks.
var ErrMalformedTail = errors.New("malformed request tail")

// Names splits the first n NUL-terminated names off the front of tail,
// returning whatever follows the last terminator.
func Names(tail []byte, n int) (names []string, rest []byte, err error) {
	rest = tail
	for i := 0; i < n; i++ {
		end := bytes.IndexByte(rest, 0)
		if end < 0 {
			err = fmt.Errorf("%w: name %d of %d is not NUL-terminated", ErrMalformedTail, i+1, n)
			return
		}

		names = append(names, string(rest[:end]))
		rest = rest[end+1:]
	}

	return
}

// Name returns the single name carried by LOOKUP, MKDIR, UNLINK and the
// like.
func (r *Request) Name() (name string, err error) {
	names, _, err := Names(r.Tail, 1)
	if err != nil {
		return
	}

	name = names[0]
	return
}

// TwoNames returns the names carried by RENAME and RENAME2 (old, new) and by
// SYMLINK (link name, target).
func (r *Request) TwoNames() (first, second string, err error) {
	names, _, err := Names(r.Tail, 2)
	if err != nil {
		return
	}

	first, second = names[0], names[1]
	return
}

// Xattr returns the attribute name and value carried by SETXATTR.
func (r *Request) Xattr() (name string, value []byte, err error) {
	in, ok := r.Body.(*fusekernel.SetxattrIn)
	if !ok {
		err = fmt.Errorf("%w: %v is not SETXATTR", ErrMalformedTail, r.Op)
		return
	}

	names, rest, err := Names(r.Tail, 1)
	if err != nil {
		return
	}

	if uint64(len(rest)) < uint64(in.Size) {
		err = fmt.Errorf("%w: value is %d bytes, want %d", ErrMalformedTail, len(rest), in.Size)
		return
	}

	name = names[0]
	value = rest[:in.Size]
	return
}

// WriteData returns the data carried by WRITE.
func (r *Request) WriteData() (data []byte, err error) {
	in, ok := r.Body.(*fusekernel.WriteIn)
	if !ok {
		err = fmt.Errorf("%w: %v is not WRITE", ErrMalformedTail, r.Op)
		return
	}

	if uint64(len(r.Tail)) < uint64(in.Size) {
		err = fmt.Errorf("%w: have %d bytes of data, want %d", ErrMalformedTail, len(r.Tail), in.Size)
		return
	}

	data = r.Tail[:in.Size]
	return
}

// IoctlData returns the input argument carried by IOCTL.
func (r *Request) IoctlData() (data []byte, err error) {
	in, ok := r.Body.(*fusekernel.IoctlIn)
	if !ok {
		err = fmt.Errorf("%w: %v is not IOCTL", ErrMalformedTail, r.Op)
		return
	}

	if uint64(len(r.Tail)) < uint64(in.InSize) {
		err = fmt.Errorf("%w: have %d bytes of input, want %d", ErrMalformedTail, len(r.Tail), in.InSize)
		return
	}

	data = r.Tail[:in.InSize]
	return
}

// ForgetOnes returns the entries carried by BATCH_FORGET.
func (r *Request) ForgetOnes() (entries []fusekernel.ForgetOne, err error) {
	in, ok := r.Body.(*fusekernel.BatchForgetIn)
	if !ok {
		err = fmt.Errorf("%w: %v is not BATCH_FORGET", ErrMalformedTail, r.Op)
		return
	}

	entries, err = unpackArray[fusekernel.ForgetOne](r.Tail, in.Count)
	return
}

// RemoveMappings returns the entries carried by REMOVEMAPPING.
func (r *Request) RemoveMappings() (entries []fusekernel.RemoveMappingOne, err error) {
	in, ok := r.Body.(*fusekernel.RemoveMappingIn)
	if !ok {
		err = fmt.Errorf("%w: %v is not REMOVEMAPPING", ErrMalformedTail, r.Op)
		return
	}

	entries, err = unpackArray[fusekernel.RemoveMappingOne](r.Tail, in.Count)
	return
}

// Unpack count consecutive records of type T from the front of b.
func unpackArray[T any](b []byte, count uint32) (out []T, err error) {
	var zero T
	size := fusekernel.ShapeOf(zero).Size

	if uint64(len(b)) < uint64(count)*uint64(size) {
		err = fmt.Errorf(
			"%w: %d entries of %d bytes need %d bytes, have %d",
			ErrMalformedTail,
			count,
			size,
			uint64(count)*uint64(size),
			len(b))
		return
	}

	out = make([]T, count)
	for i := range out {
		if _, err = cstruct.Unpack(b[uintptr(i)*size:], &out[i], fusekernel.HostOrder); err != nil {
			return
		}
	}

	return
}
