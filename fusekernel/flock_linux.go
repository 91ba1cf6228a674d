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
	"math"

	"golang.org/x/sys/unix"
)

// The lock end the kernel uses to mean "through end of file".
const lockEOF = math.MaxInt64

// Convert a lock taken from an LK, GETLK or SETLKW request into the form
// fcntl(2) understands, for file systems that pass locks through to a real
// file. Whence is always SEEK_SET.
func (l FileLock) ToUnix() (f unix.Flock_t, err error) {
	switch l.Type {
	case LockRead:
		f.Type = unix.F_RDLCK
	case LockWrite:
		f.Type = unix.F_WRLCK
	case LockUnlock:
		f.Type = unix.F_UNLCK
	default:
		err = fmt.Errorf("unknown lock type %d", l.Type)
		return
	}

	if l.Start > lockEOF || l.End < l.Start {
		err = fmt.Errorf("bad lock range [%d, %d]", l.Start, l.End)
		return
	}

	f.Whence = unix.SEEK_SET
	f.Start = int64(l.Start)
	if l.End < lockEOF {
		f.Len = int64(l.End-l.Start) + 1
	}

	f.Pid = int32(l.Pid)
	return
}

// The inverse of ToUnix, for answering GETLK from fcntl(F_GETLK) output.
// f.Whence must be SEEK_SET.
func FileLockFromUnix(f *unix.Flock_t) (l FileLock, err error) {
	switch f.Type {
	case unix.F_RDLCK:
		l.Type = LockRead
	case unix.F_WRLCK:
		l.Type = LockWrite
	case unix.F_UNLCK:
		l.Type = LockUnlock
	default:
		err = fmt.Errorf("unknown lock type %d", f.Type)
		return
	}

	if f.Whence != unix.SEEK_SET || f.Start < 0 || f.Len < 0 {
		err = fmt.Errorf("unsupported lock whence=%d start=%d len=%d", f.Whence, f.Start, f.Len)
		return
	}

	l.Start = uint64(f.Start)
	l.End = lockEOF
	if f.Len != 0 {
		l.End = uint64(f.Start + f.Len - 1)
	}

	l.Pid = uint32(f.Pid)
	return
}
