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
	"fmt"
	"syscall"

	"github.com/NVIDIA/cstruct"
	"github.com/jacobsa/rawfuse/fusekernel"
)

// OutMessage provides a mechanism for constructing a single contiguous fuse
// reply from multiple segments, where the first segment is always a
// fusekernel.OutHeader.
//
// Building a reply cannot fail: every record handed to AppendRecord is one of
// the fixed-layout types of package fusekernel, whose layouts are checked
// when that package is initialized.
//
// The zero value is ready to use.
type OutMessage struct {
	header fusekernel.OutHeader
	buf    []byte
}

// Reset the message so that it is ready to be used again. Afterward, the
// contents are solely a zeroed header.
func (m *OutMessage) Reset() {
	m.header = fusekernel.OutHeader{}
	m.init()
	m.buf = m.buf[:fusekernel.OutHeaderSize]
}

func (m *OutMessage) init() {
	if m.buf == nil {
		m.buf = make([]byte, fusekernel.OutHeaderSize, fusekernel.OutHeaderSize+4096)
	}
}

// Return the header as it will be written. Its Len field is kept up to date.
func (m *OutMessage) OutHeader() fusekernel.OutHeader {
	m.init()
	h := m.header
	h.Len = uint32(len(m.buf))
	return h
}

// Set the ID of the request being answered.
func (m *OutMessage) SetUnique(unique uint64) {
	m.header.Unique = unique
}

// Make the message an error reply carrying the supplied errno. Zero means
// success.
func (m *OutMessage) SetError(errno syscall.Errno) {
	m.header.Error = -int32(errno)
}

// Append the wire form of rec, which must be a fusekernel record or a pointer
// to one, or a fusekernel.PaddingOverride. Padding fields are written as zero
// unless overridden.
func (m *OutMessage) AppendRecord(rec interface{}) {
	m.init()
	p, err := fusekernel.Pack(rec)
	if err != nil {
		panic(fmt.Sprintf("fusekernel.Pack(%T): %v", rec, err))
	}

	m.buf = append(m.buf, p...)
}

// Append the supplied bytes verbatim.
func (m *OutMessage) Append(p []byte) {
	m.init()
	m.buf = append(m.buf, p...)
}

// Equivalent to Append([]byte(s)), without the copy.
func (m *OutMessage) AppendString(s string) {
	m.init()
	m.buf = append(m.buf, s...)
}

// Return the current size of the message, header included.
func (m *OutMessage) Len() int {
	m.init()
	return len(m.buf)
}

// Return the complete frame, with the header's length field set to the
// number of bytes in the frame. The result is invalidated by further calls
// to Append* or Reset.
func (m *OutMessage) Bytes() []byte {
	h := m.OutHeader()
	p, err := cstruct.Pack(&h, fusekernel.HostOrder)
	if err != nil {
		panic(fmt.Sprintf("cstruct.Pack(OutHeader): %v", err))
	}

	copy(m.buf, p)
	return m.buf
}

////////////////////////////////////////////////////////////////////////
// Convenience
////////////////////////////////////////////////////////////////////////

// Reply returns the frame answering request unique successfully with the
// supplied records, in order, followed by data.
func Reply(unique uint64, data []byte, recs ...interface{}) []byte {
	var m OutMessage
	m.SetUnique(unique)
	for _, r := range recs {
		m.AppendRecord(r)
	}

	m.Append(data)
	return m.Bytes()
}

// IoctlRetryReply returns the frame answering IOCTL request unique with a
// request to retry using the supplied input and output iovecs. The kernel
// accepts at most fusekernel.IoctlMaxIov of them in total.
func IoctlRetryReply(
	unique uint64,
	in []fusekernel.IoctlIovec,
	out []fusekernel.IoctlIovec) (frame []byte, err error) {
	if n := len(in) + len(out); n > fusekernel.IoctlMaxIov {
		err = fmt.Errorf("%d iovecs exceeds the limit of %d", n, fusekernel.IoctlMaxIov)
		return
	}

	var m OutMessage
	m.SetUnique(unique)
	m.AppendRecord(&fusekernel.IoctlOut{
		Flags:   fusekernel.IoctlRetry,
		InIovs:  uint32(len(in)),
		OutIovs: uint32(len(out)),
	})

	for i := range in {
		m.AppendRecord(&in[i])
	}

	for i := range out {
		m.AppendRecord(&out[i])
	}

	frame = m.Bytes()
	return
}

// ErrorReply returns the header-only frame failing request unique with the
// supplied errno.
func ErrorReply(unique uint64, errno syscall.Errno) []byte {
	var m OutMessage
	m.SetUnique(unique)
	m.SetError(errno)
	return m.Bytes()
}
