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
	"github.com/jacobsa/rawfuse/internal/flagset"
)

// Each bit set below is its own type so that, say, an OpenOutFlags value
// cannot be stored where InitFlags are expected. Bits this package has no name
// for are carried through decoding and encoding unchanged; String renders
// them in hex after the named ones.

// SetFlags returns f with bits set when on is true and cleared otherwise.
// Toggling distinct bits commutes.
func SetFlags[T flagset.Bits](f T, bits T, on bool) T {
	return flagset.Set(f, bits, on)
}

// HasFlags reports whether every bit of bits is set in f.
func HasFlags[T flagset.Bits](f T, bits T) bool {
	return flagset.Has(f, bits)
}

////////////////////////////////////////////////////////////////////////
// GetattrFlags
////////////////////////////////////////////////////////////////////////

// Flags of GetattrIn and StatxIn.
type GetattrFlags uint32

const (
	GetattrFh GetattrFlags = 1 << 0 // FUSE_GETATTR_FH
)

var getattrFlagsNames = []flagset.Name[GetattrFlags]{
	{Bit: GetattrFh, Name: "FUSE_GETATTR_FH"},
}

func (fl GetattrFlags) String() string { return flagset.Format(fl, getattrFlagsNames) }

// Known returns the bits of fl that this package has a name for.
func (fl GetattrFlags) Known() GetattrFlags { return fl & flagset.Mask(getattrFlagsNames) }

////////////////////////////////////////////////////////////////////////
// AttrFlags
////////////////////////////////////////////////////////////////////////

// Flags of Attr.
type AttrFlags uint32

const (
	AttrSubmount AttrFlags = 1 << 0 // FUSE_ATTR_SUBMOUNT
	AttrDAX      AttrFlags = 1 << 1 // FUSE_ATTR_DAX
)

var attrFlagsNames = []flagset.Name[AttrFlags]{
	{Bit: AttrSubmount, Name: "FUSE_ATTR_SUBMOUNT"},
	{Bit: AttrDAX, Name: "FUSE_ATTR_DAX"},
}

func (fl AttrFlags) String() string { return flagset.Format(fl, attrFlagsNames) }

func (fl AttrFlags) Known() AttrFlags { return fl & flagset.Mask(attrFlagsNames) }

////////////////////////////////////////////////////////////////////////
// SetattrValid
////////////////////////////////////////////////////////////////////////

// Bitmask of the SetattrIn fields that carry a new value.
type SetattrValid uint32

const (
	SetattrMode        SetattrValid = 1 << 0  // FATTR_MODE
	SetattrUid         SetattrValid = 1 << 1  // FATTR_UID
	SetattrGid         SetattrValid = 1 << 2  // FATTR_GID
	SetattrSize        SetattrValid = 1 << 3  // FATTR_SIZE
	SetattrAtime       SetattrValid = 1 << 4  // FATTR_ATIME
	SetattrMtime       SetattrValid = 1 << 5  // FATTR_MTIME
	SetattrHandle      SetattrValid = 1 << 6  // FATTR_FH
	SetattrAtimeNow    SetattrValid = 1 << 7  // FATTR_ATIME_NOW
	SetattrMtimeNow    SetattrValid = 1 << 8  // FATTR_MTIME_NOW
	SetattrLockOwner   SetattrValid = 1 << 9  // FATTR_LOCKOWNER
	SetattrCtime       SetattrValid = 1 << 10 // FATTR_CTIME
	SetattrKillSuidgid SetattrValid = 1 << 11 // FATTR_KILL_SUIDGID
)

var setattrValidNames = []flagset.Name[SetattrValid]{
	{Bit: SetattrMode, Name: "FATTR_MODE"},
	{Bit: SetattrUid, Name: "FATTR_UID"},
	{Bit: SetattrGid, Name: "FATTR_GID"},
	{Bit: SetattrSize, Name: "FATTR_SIZE"},
	{Bit: SetattrAtime, Name: "FATTR_ATIME"},
	{Bit: SetattrMtime, Name: "FATTR_MTIME"},
	{Bit: SetattrHandle, Name: "FATTR_FH"},
	{Bit: SetattrAtimeNow, Name: "FATTR_ATIME_NOW"},
	{Bit: SetattrMtimeNow, Name: "FATTR_MTIME_NOW"},
	{Bit: SetattrLockOwner, Name: "FATTR_LOCKOWNER"},
	{Bit: SetattrCtime, Name: "FATTR_CTIME"},
	{Bit: SetattrKillSuidgid, Name: "FATTR_KILL_SUIDGID"},
}

func (fl SetattrValid) String() string { return flagset.Format(fl, setattrValidNames) }

func (fl SetattrValid) Known() SetattrValid { return fl & flagset.Mask(setattrValidNames) }

////////////////////////////////////////////////////////////////////////
// OpenInFlags
////////////////////////////////////////////////////////////////////////

// FUSE-specific flags of OpenIn and CreateIn, next to the open(2) flags.
type OpenInFlags uint32

const (
	OpenKillSuidgid OpenInFlags = 1 << 0 // FUSE_OPEN_KILL_SUIDGID
)

var openInFlagsNames = []flagset.Name[OpenInFlags]{
	{Bit: OpenKillSuidgid, Name: "FUSE_OPEN_KILL_SUIDGID"},
}

func (fl OpenInFlags) String() string { return flagset.Format(fl, openInFlagsNames) }

func (fl OpenInFlags) Known() OpenInFlags { return fl & flagset.Mask(openInFlagsNames) }

////////////////////////////////////////////////////////////////////////
// OpenOutFlags
////////////////////////////////////////////////////////////////////////

// Flags returned by the file system in OpenOut.
type OpenOutFlags uint32

const (
	OpenDirectIO             OpenOutFlags = 1 << 0 // FOPEN_DIRECT_IO
	OpenKeepCache            OpenOutFlags = 1 << 1 // FOPEN_KEEP_CACHE
	OpenNonSeekable          OpenOutFlags = 1 << 2 // FOPEN_NONSEEKABLE
	OpenCacheDir             OpenOutFlags = 1 << 3 // FOPEN_CACHE_DIR
	OpenStream               OpenOutFlags = 1 << 4 // FOPEN_STREAM
	OpenNoFlush              OpenOutFlags = 1 << 5 // FOPEN_NOFLUSH
	OpenParallelDirectWrites OpenOutFlags = 1 << 6 // FOPEN_PARALLEL_DIRECT_WRITES
	OpenPassthrough          OpenOutFlags = 1 << 7 // FOPEN_PASSTHROUGH
)

var openOutFlagsNames = []flagset.Name[OpenOutFlags]{
	{Bit: OpenDirectIO, Name: "FOPEN_DIRECT_IO"},
	{Bit: OpenKeepCache, Name: "FOPEN_KEEP_CACHE"},
	{Bit: OpenNonSeekable, Name: "FOPEN_NONSEEKABLE"},
	{Bit: OpenCacheDir, Name: "FOPEN_CACHE_DIR"},
	{Bit: OpenStream, Name: "FOPEN_STREAM"},
	{Bit: OpenNoFlush, Name: "FOPEN_NOFLUSH"},
	{Bit: OpenParallelDirectWrites, Name: "FOPEN_PARALLEL_DIRECT_WRITES"},
	{Bit: OpenPassthrough, Name: "FOPEN_PASSTHROUGH"},
}

func (fl OpenOutFlags) String() string { return flagset.Format(fl, openOutFlagsNames) }

func (fl OpenOutFlags) Known() OpenOutFlags { return fl & flagset.Mask(openOutFlagsNames) }

////////////////////////////////////////////////////////////////////////
// ReadFlags
////////////////////////////////////////////////////////////////////////

// Flags of ReadIn.
type ReadFlags uint32

const (
	ReadLockOwner ReadFlags = 1 << 1 // FUSE_READ_LOCKOWNER
)

var readFlagsNames = []flagset.Name[ReadFlags]{
	{Bit: ReadLockOwner, Name: "FUSE_READ_LOCKOWNER"},
}

func (fl ReadFlags) String() string { return flagset.Format(fl, readFlagsNames) }

func (fl ReadFlags) Known() ReadFlags { return fl & flagset.Mask(readFlagsNames) }

////////////////////////////////////////////////////////////////////////
// WriteFlags
////////////////////////////////////////////////////////////////////////

// Flags of WriteIn.
type WriteFlags uint32

const (
	WriteCache       WriteFlags = 1 << 0 // FUSE_WRITE_CACHE
	WriteLockOwner   WriteFlags = 1 << 1 // FUSE_WRITE_LOCKOWNER
	WriteKillSuidgid WriteFlags = 1 << 2 // FUSE_WRITE_KILL_SUIDGID
)

var writeFlagsNames = []flagset.Name[WriteFlags]{
	{Bit: WriteCache, Name: "FUSE_WRITE_CACHE"},
	{Bit: WriteLockOwner, Name: "FUSE_WRITE_LOCKOWNER"},
	{Bit: WriteKillSuidgid, Name: "FUSE_WRITE_KILL_SUIDGID"},
}

func (fl WriteFlags) String() string { return flagset.Format(fl, writeFlagsNames) }

func (fl WriteFlags) Known() WriteFlags { return fl & flagset.Mask(writeFlagsNames) }

////////////////////////////////////////////////////////////////////////
// ReleaseFlags
////////////////////////////////////////////////////////////////////////

// Flags of ReleaseIn.
type ReleaseFlags uint32

const (
	ReleaseFlush       ReleaseFlags = 1 << 0 // FUSE_RELEASE_FLUSH
	ReleaseFlockUnlock ReleaseFlags = 1 << 1 // FUSE_RELEASE_FLOCK_UNLOCK
)

var releaseFlagsNames = []flagset.Name[ReleaseFlags]{
	{Bit: ReleaseFlush, Name: "FUSE_RELEASE_FLUSH"},
	{Bit: ReleaseFlockUnlock, Name: "FUSE_RELEASE_FLOCK_UNLOCK"},
}

func (fl ReleaseFlags) String() string { return flagset.Format(fl, releaseFlagsNames) }

func (fl ReleaseFlags) Known() ReleaseFlags { return fl & flagset.Mask(releaseFlagsNames) }

////////////////////////////////////////////////////////////////////////
// FsyncFlags
////////////////////////////////////////////////////////////////////////

// Flags of FsyncIn.
type FsyncFlags uint32

const (
	FsyncFdatasync FsyncFlags = 1 << 0 // FUSE_FSYNC_FDATASYNC
)

var fsyncFlagsNames = []flagset.Name[FsyncFlags]{
	{Bit: FsyncFdatasync, Name: "FUSE_FSYNC_FDATASYNC"},
}

func (fl FsyncFlags) String() string { return flagset.Format(fl, fsyncFlagsNames) }

func (fl FsyncFlags) Known() FsyncFlags { return fl & flagset.Mask(fsyncFlagsNames) }

////////////////////////////////////////////////////////////////////////
// SetxattrFlags
////////////////////////////////////////////////////////////////////////

// FUSE-specific flags of SetxattrIn.
type SetxattrFlags uint32

const (
	SetxattrACLKillSgid SetxattrFlags = 1 << 0 // FUSE_SETXATTR_ACL_KILL_SGID
)

var setxattrFlagsNames = []flagset.Name[SetxattrFlags]{
	{Bit: SetxattrACLKillSgid, Name: "FUSE_SETXATTR_ACL_KILL_SGID"},
}

func (fl SetxattrFlags) String() string { return flagset.Format(fl, setxattrFlagsNames) }

func (fl SetxattrFlags) Known() SetxattrFlags { return fl & flagset.Mask(setxattrFlagsNames) }

////////////////////////////////////////////////////////////////////////
// InitFlags
////////////////////////////////////////////////////////////////////////

// Capabilities exchanged in the first word of InitIn and InitOut.
type InitFlags uint32

const (
	InitAsyncRead         InitFlags = 1 << 0  // FUSE_ASYNC_READ
	InitPosixLocks        InitFlags = 1 << 1  // FUSE_POSIX_LOCKS
	InitFileOps           InitFlags = 1 << 2  // FUSE_FILE_OPS
	InitAtomicTrunc       InitFlags = 1 << 3  // FUSE_ATOMIC_O_TRUNC
	InitExportSupport     InitFlags = 1 << 4  // FUSE_EXPORT_SUPPORT
	InitBigWrites         InitFlags = 1 << 5  // FUSE_BIG_WRITES
	InitDontMask          InitFlags = 1 << 6  // FUSE_DONT_MASK
	InitSpliceWrite       InitFlags = 1 << 7  // FUSE_SPLICE_WRITE
	InitSpliceMove        InitFlags = 1 << 8  // FUSE_SPLICE_MOVE
	InitSpliceRead        InitFlags = 1 << 9  // FUSE_SPLICE_READ
	InitFlockLocks        InitFlags = 1 << 10 // FUSE_FLOCK_LOCKS
	InitHasIoctlDir       InitFlags = 1 << 11 // FUSE_HAS_IOCTL_DIR
	InitAutoInvalData     InitFlags = 1 << 12 // FUSE_AUTO_INVAL_DATA
	InitDoReaddirplus     InitFlags = 1 << 13 // FUSE_DO_READDIRPLUS
	InitReaddirplusAuto   InitFlags = 1 << 14 // FUSE_READDIRPLUS_AUTO
	InitAsyncDIO          InitFlags = 1 << 15 // FUSE_ASYNC_DIO
	InitWritebackCache    InitFlags = 1 << 16 // FUSE_WRITEBACK_CACHE
	InitNoOpenSupport     InitFlags = 1 << 17 // FUSE_NO_OPEN_SUPPORT
	InitParallelDirops    InitFlags = 1 << 18 // FUSE_PARALLEL_DIROPS
	InitHandleKillpriv    InitFlags = 1 << 19 // FUSE_HANDLE_KILLPRIV
	InitPosixACL          InitFlags = 1 << 20 // FUSE_POSIX_ACL
	InitAbortError        InitFlags = 1 << 21 // FUSE_ABORT_ERROR
	InitMaxPages          InitFlags = 1 << 22 // FUSE_MAX_PAGES
	InitCacheSymlinks     InitFlags = 1 << 23 // FUSE_CACHE_SYMLINKS
	InitNoOpendirSupport  InitFlags = 1 << 24 // FUSE_NO_OPENDIR_SUPPORT
	InitExplicitInvalData InitFlags = 1 << 25 // FUSE_EXPLICIT_INVAL_DATA
	InitMapAlignment      InitFlags = 1 << 26 // FUSE_MAP_ALIGNMENT
	InitSubmounts         InitFlags = 1 << 27 // FUSE_SUBMOUNTS
	InitHandleKillprivV2  InitFlags = 1 << 28 // FUSE_HANDLE_KILLPRIV_V2
	InitSetxattrExt       InitFlags = 1 << 29 // FUSE_SETXATTR_EXT
	InitExt               InitFlags = 1 << 30 // FUSE_INIT_EXT
)

var initFlagsNames = []flagset.Name[InitFlags]{
	{Bit: InitAsyncRead, Name: "FUSE_ASYNC_READ"},
	{Bit: InitPosixLocks, Name: "FUSE_POSIX_LOCKS"},
	{Bit: InitFileOps, Name: "FUSE_FILE_OPS"},
	{Bit: InitAtomicTrunc, Name: "FUSE_ATOMIC_O_TRUNC"},
	{Bit: InitExportSupport, Name: "FUSE_EXPORT_SUPPORT"},
	{Bit: InitBigWrites, Name: "FUSE_BIG_WRITES"},
	{Bit: InitDontMask, Name: "FUSE_DONT_MASK"},
	{Bit: InitSpliceWrite, Name: "FUSE_SPLICE_WRITE"},
	{Bit: InitSpliceMove, Name: "FUSE_SPLICE_MOVE"},
	{Bit: InitSpliceRead, Name: "FUSE_SPLICE_READ"},
	{Bit: InitFlockLocks, Name: "FUSE_FLOCK_LOCKS"},
	{Bit: InitHasIoctlDir, Name: "FUSE_HAS_IOCTL_DIR"},
	{Bit: InitAutoInvalData, Name: "FUSE_AUTO_INVAL_DATA"},
	{Bit: InitDoReaddirplus, Name: "FUSE_DO_READDIRPLUS"},
	{Bit: InitReaddirplusAuto, Name: "FUSE_READDIRPLUS_AUTO"},
	{Bit: InitAsyncDIO, Name: "FUSE_ASYNC_DIO"},
	{Bit: InitWritebackCache, Name: "FUSE_WRITEBACK_CACHE"},
	{Bit: InitNoOpenSupport, Name: "FUSE_NO_OPEN_SUPPORT"},
	{Bit: InitParallelDirops, Name: "FUSE_PARALLEL_DIROPS"},
	{Bit: InitHandleKillpriv, Name: "FUSE_HANDLE_KILLPRIV"},
	{Bit: InitPosixACL, Name: "FUSE_POSIX_ACL"},
	{Bit: InitAbortError, Name: "FUSE_ABORT_ERROR"},
	{Bit: InitMaxPages, Name: "FUSE_MAX_PAGES"},
	{Bit: InitCacheSymlinks, Name: "FUSE_CACHE_SYMLINKS"},
	{Bit: InitNoOpendirSupport, Name: "FUSE_NO_OPENDIR_SUPPORT"},
	{Bit: InitExplicitInvalData, Name: "FUSE_EXPLICIT_INVAL_DATA"},
	{Bit: InitMapAlignment, Name: "FUSE_MAP_ALIGNMENT"},
	{Bit: InitSubmounts, Name: "FUSE_SUBMOUNTS"},
	{Bit: InitHandleKillprivV2, Name: "FUSE_HANDLE_KILLPRIV_V2"},
	{Bit: InitSetxattrExt, Name: "FUSE_SETXATTR_EXT"},
	{Bit: InitExt, Name: "FUSE_INIT_EXT"},
}

func (fl InitFlags) String() string { return flagset.Format(fl, initFlagsNames) }

func (fl InitFlags) Known() InitFlags { return fl & flagset.Mask(initFlagsNames) }

////////////////////////////////////////////////////////////////////////
// InitFlags2
////////////////////////////////////////////////////////////////////////

// Capabilities exchanged in the second word of InitIn and InitOut. The word
// is only meaningful when both sides set InitExt.
type InitFlags2 uint32

const (
	InitSecurityCtx       InitFlags2 = 1 << 0  // FUSE_SECURITY_CTX
	InitHasInodeDAX       InitFlags2 = 1 << 1  // FUSE_HAS_INODE_DAX
	InitCreateSuppGroup   InitFlags2 = 1 << 2  // FUSE_CREATE_SUPP_GROUP
	InitHasExpireOnly     InitFlags2 = 1 << 3  // FUSE_HAS_EXPIRE_ONLY
	InitDirectIOAllowMmap InitFlags2 = 1 << 4  // FUSE_DIRECT_IO_ALLOW_MMAP
	InitPassthrough       InitFlags2 = 1 << 5  // FUSE_PASSTHROUGH
	InitNoExportSupport   InitFlags2 = 1 << 6  // FUSE_NO_EXPORT_SUPPORT
	InitHasResend         InitFlags2 = 1 << 7  // FUSE_HAS_RESEND
	InitAllowIdmap        InitFlags2 = 1 << 8  // FUSE_ALLOW_IDMAP
	InitOverIOUring       InitFlags2 = 1 << 9  // FUSE_OVER_IO_URING
	InitRequestTimeout    InitFlags2 = 1 << 10 // FUSE_REQUEST_TIMEOUT
)

var initFlags2Names = []flagset.Name[InitFlags2]{
	{Bit: InitSecurityCtx, Name: "FUSE_SECURITY_CTX"},
	{Bit: InitHasInodeDAX, Name: "FUSE_HAS_INODE_DAX"},
	{Bit: InitCreateSuppGroup, Name: "FUSE_CREATE_SUPP_GROUP"},
	{Bit: InitHasExpireOnly, Name: "FUSE_HAS_EXPIRE_ONLY"},
	{Bit: InitDirectIOAllowMmap, Name: "FUSE_DIRECT_IO_ALLOW_MMAP"},
	{Bit: InitPassthrough, Name: "FUSE_PASSTHROUGH"},
	{Bit: InitNoExportSupport, Name: "FUSE_NO_EXPORT_SUPPORT"},
	{Bit: InitHasResend, Name: "FUSE_HAS_RESEND"},
	{Bit: InitAllowIdmap, Name: "FUSE_ALLOW_IDMAP"},
	{Bit: InitOverIOUring, Name: "FUSE_OVER_IO_URING"},
	{Bit: InitRequestTimeout, Name: "FUSE_REQUEST_TIMEOUT"},
}

func (fl InitFlags2) String() string { return flagset.Format(fl, initFlags2Names) }

func (fl InitFlags2) Known() InitFlags2 { return fl & flagset.Mask(initFlags2Names) }

////////////////////////////////////////////////////////////////////////
// LockFlags
////////////////////////////////////////////////////////////////////////

// Flags of LkIn.
type LockFlags uint32

const (
	LockFlock LockFlags = 1 << 0 // FUSE_LK_FLOCK
)

var lockFlagsNames = []flagset.Name[LockFlags]{
	{Bit: LockFlock, Name: "FUSE_LK_FLOCK"},
}

func (fl LockFlags) String() string { return flagset.Format(fl, lockFlagsNames) }

func (fl LockFlags) Known() LockFlags { return fl & flagset.Mask(lockFlagsNames) }

////////////////////////////////////////////////////////////////////////
// IoctlFlags
////////////////////////////////////////////////////////////////////////

// Flags of IoctlIn and IoctlOut.
type IoctlFlags uint32

const (
	IoctlCompat       IoctlFlags = 1 << 0 // FUSE_IOCTL_COMPAT
	IoctlUnrestricted IoctlFlags = 1 << 1 // FUSE_IOCTL_UNRESTRICTED
	IoctlRetry        IoctlFlags = 1 << 2 // FUSE_IOCTL_RETRY
	Ioctl32Bit        IoctlFlags = 1 << 3 // FUSE_IOCTL_32BIT
	IoctlDir          IoctlFlags = 1 << 4 // FUSE_IOCTL_DIR
	IoctlCompatX32    IoctlFlags = 1 << 5 // FUSE_IOCTL_COMPAT_X32
)

var ioctlFlagsNames = []flagset.Name[IoctlFlags]{
	{Bit: IoctlCompat, Name: "FUSE_IOCTL_COMPAT"},
	{Bit: IoctlUnrestricted, Name: "FUSE_IOCTL_UNRESTRICTED"},
	{Bit: IoctlRetry, Name: "FUSE_IOCTL_RETRY"},
	{Bit: Ioctl32Bit, Name: "FUSE_IOCTL_32BIT"},
	{Bit: IoctlDir, Name: "FUSE_IOCTL_DIR"},
	{Bit: IoctlCompatX32, Name: "FUSE_IOCTL_COMPAT_X32"},
}

func (fl IoctlFlags) String() string { return flagset.Format(fl, ioctlFlagsNames) }

func (fl IoctlFlags) Known() IoctlFlags { return fl & flagset.Mask(ioctlFlagsNames) }

////////////////////////////////////////////////////////////////////////
// PollFlags
////////////////////////////////////////////////////////////////////////

// Flags of PollIn.
type PollFlags uint32

const (
	PollScheduleNotify PollFlags = 1 << 0 // FUSE_POLL_SCHEDULE_NOTIFY
)

var pollFlagsNames = []flagset.Name[PollFlags]{
	{Bit: PollScheduleNotify, Name: "FUSE_POLL_SCHEDULE_NOTIFY"},
}

func (fl PollFlags) String() string { return flagset.Format(fl, pollFlagsNames) }

func (fl PollFlags) Known() PollFlags { return fl & flagset.Mask(pollFlagsNames) }

////////////////////////////////////////////////////////////////////////
// SetupMappingFlags
////////////////////////////////////////////////////////////////////////

// Flags of SetupMappingIn.
type SetupMappingFlags uint64

const (
	SetupMappingWrite SetupMappingFlags = 1 << 0 // FUSE_SETUPMAPPING_FLAG_WRITE
	SetupMappingRead  SetupMappingFlags = 1 << 1 // FUSE_SETUPMAPPING_FLAG_READ
)

var setupMappingFlagsNames = []flagset.Name[SetupMappingFlags]{
	{Bit: SetupMappingWrite, Name: "FUSE_SETUPMAPPING_FLAG_WRITE"},
	{Bit: SetupMappingRead, Name: "FUSE_SETUPMAPPING_FLAG_READ"},
}

func (fl SetupMappingFlags) String() string { return flagset.Format(fl, setupMappingFlagsNames) }

func (fl SetupMappingFlags) Known() SetupMappingFlags { return fl & flagset.Mask(setupMappingFlagsNames) }
