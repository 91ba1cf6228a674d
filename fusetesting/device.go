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

package fusetesting

import (
	"errors"
	"io"
	"sync"
)

// ErrClosed is returned by a FakeDevice after Close.
var ErrClosed = errors.New("fake device closed")

// FakeDevice stands in for an open /dev/fuse. Each Read returns the next
// queued frame or error, and io.EOF once the queue is empty, as the real
// device does after unmounting. Each Write is recorded.
//
// Safe for concurrent use.
type FakeDevice struct {
	mu sync.Mutex

	// GUARDED_BY(mu)
	reads []fakeRead

	// GUARDED_BY(mu)
	writes [][]byte

	// GUARDED_BY(mu)
	closed bool

	// If set, Write returns it without recording anything.
	//
	// GUARDED_BY(mu)
	writeErr error
}

type fakeRead struct {
	frame []byte
	err   error
}

var _ io.ReadWriteCloser = &FakeDevice{}

// Arrange for a future Read to return frame.
func (d *FakeDevice) QueueFrame(frame []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.reads = append(d.reads, fakeRead{frame: frame})
}

// Arrange for a future Read to fail with err.
func (d *FakeDevice) QueueError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.reads = append(d.reads, fakeRead{err: err})
}

// Cause subsequent writes to fail with err, or succeed again if nil.
func (d *FakeDevice) SetWriteError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.writeErr = err
}

func (d *FakeDevice) Read(p []byte) (n int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		err = ErrClosed
		return
	}

	if len(d.reads) == 0 {
		err = io.EOF
		return
	}

	r := d.reads[0]
	d.reads = d.reads[1:]

	if r.err != nil {
		err = r.err
		return
	}

	if len(r.frame) > len(p) {
		err = io.ErrShortBuffer
		return
	}

	n = copy(p, r.frame)
	return
}

func (d *FakeDevice) Write(p []byte) (n int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		err = ErrClosed
		return
	}

	if d.writeErr != nil {
		err = d.writeErr
		return
	}

	d.writes = append(d.writes, append([]byte(nil), p...))
	n = len(p)
	return
}

func (d *FakeDevice) Close() (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	return
}

// Return whether Close has been called.
func (d *FakeDevice) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.closed
}

// Return a copy of each frame written so far, one per call to Write.
func (d *FakeDevice) Writes() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([][]byte(nil), d.writes...)
}
