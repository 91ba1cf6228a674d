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

// The sizes in the comments below are the number of bytes each record
// occupies on the wire. They are checked against the declarations in
// records_test.go.

////////////////////////////////////////////////////////////////////////
// Headers
////////////////////////////////////////////////////////////////////////

// InHeader opens every request read from the device (40 bytes). It is
// followed by the operation's fixed record, if any, and then by variable
// length data such as names.
type InHeader struct {
	// Total length of the request, header included.
	Len uint32

	Opcode Opcode

	// Chosen by the kernel and unique among in-flight requests. The reply must
	// echo it.
	Unique uint64

	// The node the operation applies to.
	NodeID uint64

	// Credentials of the process that caused the request.
	Uid uint32
	Gid uint32
	Pid uint32

	// Length of extension data following the operation's arguments, in units
	// of 8 bytes.
	TotalExtlen uint16
	Padding     uint16
}

// OutHeader opens every reply written to the device (16 bytes).
type OutHeader struct {
	// Total length of the reply, header included.
	Len uint32

	// Zero, or a negated errno.
	Error int32

	// Copied from the InHeader of the request being answered.
	Unique uint64
}

////////////////////////////////////////////////////////////////////////
// Shared structures
////////////////////////////////////////////////////////////////////////

// Attr is the kernel's view of an inode's attributes (88 bytes).
type Attr struct {
	Ino       uint64
	Size      uint64
	Blocks    uint64
	Atime     uint64
	Mtime     uint64
	Ctime     uint64
	AtimeNsec uint32
	MtimeNsec uint32
	CtimeNsec uint32
	Mode      uint32
	Nlink     uint32
	Uid       uint32
	Gid       uint32
	Rdev      uint32
	Blksize   uint32
	Flags     AttrFlags
}

// Kstatfs carries file system statistics (80 bytes).
type Kstatfs struct {
	Blocks  uint64
	Bfree   uint64
	Bavail  uint64
	Files   uint64
	Ffree   uint64
	Bsize   uint32
	Namelen uint32
	Frsize  uint32
	Padding Padding32
	Spare   [6]Padding32
}

// Lock types found in FileLock.Type.
const (
	LockRead   = 0 // F_RDLCK
	LockWrite  = 1 // F_WRLCK
	LockUnlock = 2 // F_UNLCK
)

// FileLock describes a POSIX record lock (24 bytes).
type FileLock struct {
	Start uint64
	End   uint64
	Type  uint32
	Pid   uint32
}

// SxTime is a statx timestamp (16 bytes).
type SxTime struct {
	Sec      uint64
	Nsec     uint32
	Reserved Padding32
}

// Statx mirrors struct statx as relayed by the kernel (256 bytes).
type Statx struct {
	Mask           uint32
	Blksize        uint32
	Attributes     uint64
	Nlink          uint32
	Uid            uint32
	Gid            uint32
	Mode           uint16
	Spare0         Padding16
	Ino            uint64
	Size           uint64
	Blocks         uint64
	AttributesMask uint64
	Atime          SxTime
	Btime          SxTime
	Ctime          SxTime
	Mtime          SxTime
	RdevMajor      uint32
	RdevMinor      uint32
	DevMajor       uint32
	DevMinor       uint32
	Spare2         [14]Padding64
}

////////////////////////////////////////////////////////////////////////
// Inodes
////////////////////////////////////////////////////////////////////////

// EntryOut answers LOOKUP, MKNOD, MKDIR, SYMLINK and LINK, and leads the
// replies to CREATE and TMPFILE (128 bytes).
type EntryOut struct {
	NodeID         uint64
	Generation     uint64
	EntryValid     uint64
	AttrValid      uint64
	EntryValidNsec uint32
	AttrValidNsec  uint32
	Attr           Attr
}

// ForgetIn is the payload of FORGET (8 bytes). There is no reply.
type ForgetIn struct {
	Nlookup uint64
}

// ForgetOne is one element of the array following BatchForgetIn (16 bytes).
type ForgetOne struct {
	NodeID  uint64
	Nlookup uint64
}

// BatchForgetIn is followed by Count ForgetOne records (8 bytes). There is no
// reply.
type BatchForgetIn struct {
	Count uint32
	Dummy uint32
}

// GetattrIn (16 bytes). Fh is meaningful only when GetattrFh is set.
type GetattrIn struct {
	GetattrFlags GetattrFlags
	Dummy        uint32
	Fh           uint64
}

// AttrOut answers GETATTR and SETATTR (104 bytes).
type AttrOut struct {
	AttrValid     uint64
	AttrValidNsec uint32
	Dummy         Padding32
	Attr          Attr
}

// SetattrIn (88 bytes). Only the fields named in Valid carry new values.
type SetattrIn struct {
	Valid     SetattrValid
	Padding   uint32
	Fh        uint64
	Size      uint64
	LockOwner uint64
	Atime     uint64
	Mtime     uint64
	Ctime     uint64
	AtimeNsec uint32
	MtimeNsec uint32
	CtimeNsec uint32
	Mode      uint32
	Unused4   uint32
	Uid       uint32
	Gid       uint32
	Unused5   uint32
}

// StatxIn (24 bytes).
type StatxIn struct {
	GetattrFlags GetattrFlags
	Reserved     uint32
	Fh           uint64
	SxFlags      uint32
	SxMask       uint32
}

// StatxOut answers STATX (288 bytes).
type StatxOut struct {
	AttrValid     uint64
	AttrValidNsec uint32
	Flags         uint32
	Spare         [2]Padding64
	Stat          Statx
}

////////////////////////////////////////////////////////////////////////
// Inode creation and removal
////////////////////////////////////////////////////////////////////////

// MknodIn is followed by the new entry's name (16 bytes).
type MknodIn struct {
	Mode    uint32
	Rdev    uint32
	Umask   uint32
	Padding uint32
}

// MkdirIn is followed by the new directory's name (8 bytes).
type MkdirIn struct {
	Mode  uint32
	Umask uint32
}

// RenameIn is followed by the old and new names (8 bytes).
type RenameIn struct {
	Newdir uint64
}

// Rename2In is followed by the old and new names (16 bytes).
type Rename2In struct {
	Newdir  uint64
	Flags   uint32
	Padding uint32
}

// LinkIn is followed by the new link's name (8 bytes).
type LinkIn struct {
	Oldnodeid uint64
}

// CreateIn is followed by the new file's name. TMPFILE uses it too (16
// bytes).
type CreateIn struct {
	Flags     uint32
	Mode      uint32
	Umask     uint32
	OpenFlags OpenInFlags
}

////////////////////////////////////////////////////////////////////////
// Handles and I/O
////////////////////////////////////////////////////////////////////////

// OpenIn is shared by OPEN and OPENDIR (8 bytes). Flags are those given to
// open(2).
type OpenIn struct {
	Flags     uint32
	OpenFlags OpenInFlags
}

// OpenOut answers OPEN and OPENDIR, and trails EntryOut in the replies to
// CREATE and TMPFILE (16 bytes).
type OpenOut struct {
	Fh        uint64
	OpenFlags OpenOutFlags
	BackingID int32
}

// ReadIn is shared by READ, READDIR and READDIRPLUS (40 bytes).
type ReadIn struct {
	Fh        uint64
	Offset    uint64
	Size      uint32
	ReadFlags ReadFlags
	LockOwner uint64
	Flags     uint32
	Padding   uint32
}

// WriteIn is followed by Size bytes of data (40 bytes).
type WriteIn struct {
	Fh         uint64
	Offset     uint64
	Size       uint32
	WriteFlags WriteFlags
	LockOwner  uint64
	Flags      uint32
	Padding    uint32
}

// WriteOut answers WRITE and COPY_FILE_RANGE (8 bytes).
type WriteOut struct {
	Size    uint32
	Padding Padding32
}

// StatfsOut answers STATFS (80 bytes).
type StatfsOut struct {
	St Kstatfs
}

// ReleaseIn is shared by RELEASE and RELEASEDIR (24 bytes).
type ReleaseIn struct {
	Fh           uint64
	Flags        uint32
	ReleaseFlags ReleaseFlags
	LockOwner    uint64
}

// FsyncIn is shared by FSYNC and FSYNCDIR (16 bytes).
type FsyncIn struct {
	Fh         uint64
	FsyncFlags FsyncFlags
	Padding    uint32
}

// FlushIn (24 bytes).
type FlushIn struct {
	Fh        uint64
	Unused    uint32
	Padding   uint32
	LockOwner uint64
}

// FallocateIn (32 bytes).
type FallocateIn struct {
	Fh      uint64
	Offset  uint64
	Length  uint64
	Mode    uint32
	Padding uint32
}

// LseekIn (24 bytes).
type LseekIn struct {
	Fh      uint64
	Offset  uint64
	Whence  uint32
	Padding uint32
}

// LseekOut (8 bytes).
type LseekOut struct {
	Offset uint64
}

// CopyFileRangeIn is shared by COPY_FILE_RANGE and COPY_FILE_RANGE_64 (56
// bytes).
type CopyFileRangeIn struct {
	FhIn      uint64
	OffIn     uint64
	NodeIDOut uint64
	FhOut     uint64
	OffOut    uint64
	Len       uint64
	Flags     uint64
}

// CopyFileRangeOut answers COPY_FILE_RANGE_64 (8 bytes).
type CopyFileRangeOut struct {
	BytesCopied uint64
}

////////////////////////////////////////////////////////////////////////
// Extended attributes
////////////////////////////////////////////////////////////////////////

// SetxattrIn is followed by the attribute's name and Size bytes of value.
// This is the extended layout used once InitSetxattrExt has been negotiated
// (16 bytes).
type SetxattrIn struct {
	Size          uint32
	Flags         uint32
	SetxattrFlags SetxattrFlags
	Padding       uint32
}

// GetxattrIn is shared by GETXATTR, where it is followed by a name, and
// LISTXATTR (8 bytes).
type GetxattrIn struct {
	Size    uint32
	Padding uint32
}

// GetxattrOut reports the size of a value or list when the request's Size
// was zero (8 bytes).
type GetxattrOut struct {
	Size    uint32
	Padding Padding32
}

////////////////////////////////////////////////////////////////////////
// Locks
////////////////////////////////////////////////////////////////////////

// LkIn is shared by GETLK, SETLK and SETLKW (48 bytes).
type LkIn struct {
	Fh      uint64
	Owner   uint64
	Lk      FileLock
	LkFlags LockFlags
	Padding uint32
}

// LkOut answers GETLK (24 bytes).
type LkOut struct {
	Lk FileLock
}

////////////////////////////////////////////////////////////////////////
// Miscellaneous
////////////////////////////////////////////////////////////////////////

// AccessIn (8 bytes).
type AccessIn struct {
	Mask    uint32
	Padding uint32
}

// InitIn opens the session (64 bytes). Kernels older than 7.36 send only the
// first InitInCompatSize bytes of it.
type InitIn struct {
	Major        uint32
	Minor        uint32
	MaxReadahead uint32
	Flags        InitFlags
	Flags2       InitFlags2
	Unused       [11]uint32
}

// The size of InitIn as sent before protocol 7.36: the fields up to and
// including Flags.
const InitInCompatSize = 16

// InitOut answers INIT (64 bytes).
type InitOut struct {
	Major               uint32
	Minor               uint32
	MaxReadahead        uint32
	Flags               InitFlags
	MaxBackground       uint16
	CongestionThreshold uint16
	MaxWrite            uint32
	TimeGran            uint32
	MaxPages            uint16
	MapAlignment        uint16
	Flags2              InitFlags2
	MaxStackDepth       uint32
	RequestTimeout      uint16
	Unused              [11]Padding16
}

// InterruptIn names the request the kernel would like to abandon (8 bytes).
type InterruptIn struct {
	Unique uint64
}

// BmapIn (16 bytes).
type BmapIn struct {
	Block     uint64
	Blocksize uint32
	Padding   uint32
}

// BmapOut (8 bytes).
type BmapOut struct {
	Block uint64
}

// IoctlIn is followed by InSize bytes of input (32 bytes).
type IoctlIn struct {
	Fh      uint64
	Flags   IoctlFlags
	Cmd     uint32
	Arg     uint64
	InSize  uint32
	OutSize uint32
}

// IoctlOut is followed by InIovs+OutIovs IoctlIovec records when IoctlRetry
// is set, and by output data otherwise (16 bytes).
type IoctlOut struct {
	Result  int32
	Flags   IoctlFlags
	InIovs  uint32
	OutIovs uint32
}

// IoctlIovec (16 bytes).
type IoctlIovec struct {
	Base uint64
	Len  uint64
}

// PollIn (24 bytes).
type PollIn struct {
	Fh     uint64
	Kh     uint64
	Flags  PollFlags
	Events uint32
}

// PollOut (8 bytes).
type PollOut struct {
	Revents uint32
	Padding Padding32
}

// SetupMappingIn (40 bytes).
type SetupMappingIn struct {
	Fh      uint64
	Foffset uint64
	Len     uint64
	Flags   SetupMappingFlags
	Moffset uint64
}

// RemoveMappingIn is followed by Count RemoveMappingOne records (4 bytes).
type RemoveMappingIn struct {
	Count uint32
}

// RemoveMappingOne (16 bytes).
type RemoveMappingOne struct {
	Moffset uint64
	Len     uint64
}

// SyncfsIn (8 bytes).
type SyncfsIn struct {
	Padding uint64
}

////////////////////////////////////////////////////////////////////////
// Directory entries
////////////////////////////////////////////////////////////////////////

// Dirent heads each entry in the data returned for READDIR, and follows an
// EntryOut in each entry returned for READDIRPLUS. It is followed by Namelen
// bytes of name, then zeroes up to a multiple of DirentAlign (24 bytes).
type Dirent struct {
	Ino     uint64
	Off     uint64
	Namelen uint32
	Type    uint32
}

// The alignment of each entry in READDIR and READDIRPLUS data.
const DirentAlign = 8
