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

package rawfuse

import (
	"github.com/jacobsa/syncutil"
)

// A file system mounted by Mount. It owns the connection to the kernel.
//
// Closing it, or simply dropping it, does not unmount the file system; use
// Unmount for that. Once the file system has been unmounted, reads from the
// connection return io.EOF.
type MountedFileSystem struct {
	dir string

	mu syncutil.InvariantMutex

	// The connection, or nil once closed.
	//
	// GUARDED_BY(mu)
	conn *Connection

	// Set once Close has been called, so that subsequent calls are no-ops.
	//
	// INVARIANT: closed == (conn == nil)
	//
	// GUARDED_BY(mu)
	closed bool
}

func newMountedFileSystem(dir string, conn *Connection) (mfs *MountedFileSystem) {
	mfs = &MountedFileSystem{
		dir:  dir,
		conn: conn,
	}

	mfs.mu = syncutil.NewInvariantMutex(mfs.checkInvariants)
	return
}

// LOCKS_REQUIRED(mfs.mu)
func (mfs *MountedFileSystem) checkInvariants() {
	if mfs.closed != (mfs.conn == nil) {
		panic("closed and conn disagree")
	}
}

// Return the directory on which the file system is mounted, as given to
// NewMountBuilder.
func (mfs *MountedFileSystem) Dir() string {
	return mfs.dir
}

// Return the connection to the kernel, over which requests for the file
// system arrive. Returns nil after Close.
func (mfs *MountedFileSystem) Connection() *Connection {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	return mfs.conn
}

// Close the connection to the kernel. Safe to call more than once; only the
// first call has any effect.
//
// If the file system is still mounted, the kernel will fail all further
// requests for it with ENOTCONN until it is unmounted.
func (mfs *MountedFileSystem) Close() (err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	if mfs.closed {
		return
	}

	err = mfs.conn.Close()
	mfs.conn = nil
	mfs.closed = true

	return
}
