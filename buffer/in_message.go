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
	"io"

	"github.com/jacobsa/rawfuse/fusekernel"
)

// The largest write the kernel may send in one request. INIT must not
// advertise a larger max_write.
const MaxWriteSize = 1 << 20

// Large enough for a WRITE of MaxWriteSize plus its header and record, and
// for any request carrying names.
const inMessageSize = MaxWriteSize + 4096

// An incoming message from the kernel, including the leading
// fusekernel.InHeader. Provides storage for one message and access to its
// decoded form.
//
// Must be created with NewInMessage.
type InMessage struct {
	storage []byte
	n       int
}

// Create a new, empty message with room for the largest request the kernel
// will send.
func NewInMessage() *InMessage {
	return &InMessage{
		storage: make([]byte, inMessageSize),
	}
}

// Initialize with the data read by a single call to r.Read. The device
// delivers exactly one request per read, so one call suffices.
//
// Returns io.EOF when r does.
func (m *InMessage) Init(r io.Reader) (err error) {
	m.n = 0
	n, err := r.Read(m.storage)
	if err != nil {
		return
	}

	if n < fusekernel.InHeaderSize {
		err = fmt.Errorf("Unexpectedly read only %d bytes", n)
		return
	}

	m.n = n
	return
}

// Return the bytes read by the most recent call to Init. The result is
// invalidated by the next call to Init.
func (m *InMessage) Bytes() []byte {
	return m.storage[:m.n]
}

// Return the number of bytes read by the most recent call to Init.
func (m *InMessage) Len() int {
	return m.n
}

// Decode the message read by the most recent call to Init. See Decode.
//
// The Tail of the result aliases the message's storage.
func (m *InMessage) Decode() (*Request, error) {
	return Decode(m.Bytes())
}
