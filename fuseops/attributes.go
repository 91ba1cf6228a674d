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

package fuseops

import (
	"os"
	"time"

	"github.com/jacobsa/rawfuse/fusekernel"
	"github.com/jacobsa/timeutil"
	"golang.org/x/sys/unix"
)

// A 64-bit number used to uniquely identify a file or directory in the file
// system. File systems may mint inode IDs with any value except for
// RootInodeID.
//
// This corresponds to struct inode::i_no in the VFS layer.
type InodeID uint64

// A distinguished inode ID that identifies the root of the file system. The
// kernel may send requests for it without the file system ever having
// returned it.
const RootInodeID = fusekernel.RootID

// A generation number for an inode. Irrelevant for file systems that won't be
// exported over NFS. For those that will and that reuse inode IDs when they
// become free, the generation number must change when an ID is reused.
type GenerationNumber uint64

// An opaque 64-bit number used to identify a particular open handle to a file
// or directory.
type HandleID uint64

// Attributes for a file or directory inode. Corresponds to struct inode.
type InodeAttributes struct {
	Size uint64

	// The number of incoming hard links to this inode.
	Nlink uint32

	// The mode of the inode, including its type bits. This is exposed to the
	// user in e.g. the result of fstat(2).
	Mode os.FileMode

	// The device number, for device inodes.
	Rdev uint32

	// Time information. See `man 2 stat` for full details.
	Atime time.Time // Time of last access
	Mtime time.Time // Time of last modification
	Ctime time.Time // Time of last modification to inode

	// Ownership information
	Uid uint32
	Gid uint32
}

// Information about a child inode within its parent directory. Shared by the
// replies to LOOKUP, MKDIR, CREATE, etc. Consumed by the kernel in order to
// set up a dcache entry.
type ChildInodeEntry struct {
	// The ID of the child inode. The file system must ensure that the returned
	// inode ID remains valid until a later FORGET.
	Child InodeID

	// A generation number for this incarnation of the inode with the given ID.
	Generation GenerationNumber

	// Current attributes for the child inode.
	Attributes InodeAttributes

	// The times until which the kernel may cache the attributes above and the
	// name-to-inode mapping, respectively. The zero value means no caching.
	AttributesExpiration time.Time
	EntryExpiration      time.Time
}

// Convert a Go file mode into the mode bits the kernel expects.
func ConvertFileMode(m os.FileMode) (mode uint32) {
	mode = uint32(m.Perm())

	switch {
	case m&os.ModeDir != 0:
		mode |= unix.S_IFDIR
	case m&os.ModeSymlink != 0:
		mode |= unix.S_IFLNK
	case m&os.ModeNamedPipe != 0:
		mode |= unix.S_IFIFO
	case m&os.ModeSocket != 0:
		mode |= unix.S_IFSOCK
	case m&os.ModeCharDevice != 0:
		mode |= unix.S_IFCHR
	case m&os.ModeDevice != 0:
		mode |= unix.S_IFBLK
	default:
		mode |= unix.S_IFREG
	}

	if m&os.ModeSetuid != 0 {
		mode |= unix.S_ISUID
	}

	if m&os.ModeSetgid != 0 {
		mode |= unix.S_ISGID
	}

	if m&os.ModeSticky != 0 {
		mode |= unix.S_ISVTX
	}

	return
}

// Convert attributes into the kernel's form.
func ConvertAttributes(inode InodeID, attr *InodeAttributes) (out fusekernel.Attr) {
	out.Ino = uint64(inode)
	out.Size = attr.Size
	out.Blocks = (attr.Size + 511) / 512
	out.Atime, out.AtimeNsec = fusekernel.TimeToWire(attr.Atime)
	out.Mtime, out.MtimeNsec = fusekernel.TimeToWire(attr.Mtime)
	out.Ctime, out.CtimeNsec = fusekernel.TimeToWire(attr.Ctime)
	out.Mode = ConvertFileMode(attr.Mode)
	out.Nlink = attr.Nlink
	out.Uid = attr.Uid
	out.Gid = attr.Gid
	out.Rdev = attr.Rdev

	return
}

// Build the reply to GETATTR or SETATTR. The kernel may cache the attributes
// until expiration, as measured by clock.
func ConvertAttrOut(
	clock timeutil.Clock,
	inode InodeID,
	attr *InodeAttributes,
	expiration time.Time) (out fusekernel.AttrOut) {
	out.AttrValid, out.AttrValidNsec = fusekernel.ExpirationToWire(clock, expiration)
	out.Attr = ConvertAttributes(inode, attr)
	return
}

// Build the reply to LOOKUP, MKNOD, MKDIR, SYMLINK or LINK, or the leading
// record of the reply to CREATE and of each READDIRPLUS entry.
func ConvertChildInodeEntry(
	clock timeutil.Clock,
	in *ChildInodeEntry) (out fusekernel.EntryOut) {
	out.NodeID = uint64(in.Child)
	out.Generation = uint64(in.Generation)
	out.EntryValid, out.EntryValidNsec = fusekernel.ExpirationToWire(clock, in.EntryExpiration)
	out.AttrValid, out.AttrValidNsec = fusekernel.ExpirationToWire(clock, in.AttributesExpiration)
	out.Attr = ConvertAttributes(in.Child, &in.Attributes)
	return
}
