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
	"reflect"

	"github.com/NVIDIA/cstruct"
)

// Shape describes one fixed-layout record type: its size on the wire and
// the byte offset of each top-level field.
type Shape struct {
	Type   reflect.Type
	Size   uintptr
	Fields []Field
}

// Field is one entry of a Shape's offset table.
type Field struct {
	Name   string
	Offset uintptr
	Size   uintptr
}

// New returns a pointer to a fresh zero value of the shape's record type.
func (s *Shape) New() interface{} {
	return reflect.New(s.Type).Interface()
}

// Field returns the entry for the named field, or nil.
func (s *Shape) Field(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}

	return nil
}

func sizeOf(v interface{}) uintptr {
	n, trailing, err := cstruct.Examine(v)
	if err != nil {
		panic(fmt.Sprintf("cstruct.Examine(%T): %v", v, err))
	}

	if trailing {
		panic(fmt.Sprintf("%T has a trailing slice", v))
	}

	return uintptr(n)
}

// Compute the shape of the supplied record value. Panics if the type cannot
// be packed, which is a bug in this package.
func shapeOf(rec interface{}) *Shape {
	t := reflect.TypeOf(rec)
	s := &Shape{
		Type: t,
		Size: sizeOf(rec),
	}

	var off uintptr
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		size := sizeOf(reflect.Zero(f.Type).Interface())
		s.Fields = append(s.Fields, Field{Name: f.Name, Offset: off, Size: size})
		off += size
	}

	return s
}

var shapes = make(map[reflect.Type]*Shape)

// ShapeOf returns the cached shape for the type of rec, which may be a
// record value or a pointer to one.
func ShapeOf(rec interface{}) *Shape {
	t := reflect.TypeOf(rec)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if s, ok := shapes[t]; ok {
		return s
	}

	// Not one of the catalog's records. Compute it without caching, since the
	// map is read concurrently.
	return shapeOf(reflect.Zero(t).Interface())
}

func shape(rec interface{}) *Shape {
	t := reflect.TypeOf(rec)
	if s, ok := shapes[t]; ok {
		return s
	}

	s := shapeOf(rec)
	shapes[t] = s
	return s
}

////////////////////////////////////////////////////////////////////////
// Catalog
////////////////////////////////////////////////////////////////////////

// TailKind says what, if anything, follows the fixed record of a request.
// The codec hands the tail over untouched; the kind is a hint for whoever
// interprets it.
type TailKind int

const (
	TailNone      TailKind = iota
	TailName               // one NUL-terminated name
	TailTwoNames           // two NUL-terminated names
	TailNameValue          // a NUL-terminated name, then a raw value
	TailData               // raw bytes
	TailArray              // a counted array of fixed records
)

// OpInfo is the catalog entry for one operation.
type OpInfo struct {
	Opcode Opcode
	Name   string

	// The fixed record following InHeader, or nil if there is none.
	In *Shape

	// If nonzero, the shortest payload accepted for In. Older kernels send a
	// prefix of some records; the missing fields read as zero.
	MinIn uintptr

	// What follows the fixed record.
	Tail TailKind

	// The element type of the array tail, for TailArray.
	Elem *Shape

	// The fixed records of a successful reply, in order. Empty for replies
	// consisting of the header alone.
	Out []*Shape

	// Whether a successful reply may carry raw bytes after Out.
	OutData bool

	// The kernel does not expect a reply at all.
	NoReply bool
}

func (info *OpInfo) String() string {
	return info.Name
}

var catalog = make(map[Opcode]*OpInfo)

func register(infos ...OpInfo) {
	for i := range infos {
		info := infos[i]
		if _, ok := catalog[info.Opcode]; ok {
			panic(fmt.Sprintf("Duplicate opcode %d (%s)", info.Opcode, info.Name))
		}

		catalog[info.Opcode] = &info
	}
}

// LookupOp returns the catalog entry for the supplied opcode. ok is false for
// values that are not part of the protocol, including the retired slots 7
// and 19.
func LookupOp(op Opcode) (info *OpInfo, ok bool) {
	info, ok = catalog[op]
	return
}

// Ops returns the catalog entries, in no particular order.
func Ops() (infos []*OpInfo) {
	for _, info := range catalog {
		infos = append(infos, info)
	}

	return
}

func outs(recs ...interface{}) (s []*Shape) {
	for _, r := range recs {
		s = append(s, shape(r))
	}

	return
}

func init() {
	shape(InHeader{})
	shape(OutHeader{})
	shape(Dirent{})

	entry := shape(EntryOut{})
	open := shape(OpenOut{})
	attr := shape(AttrOut{})

	register(
		// Inodes
		OpInfo{Opcode: OpLookup, Name: "LOOKUP", Tail: TailName, Out: []*Shape{entry}},
		OpInfo{Opcode: OpForget, Name: "FORGET", In: shape(ForgetIn{}), NoReply: true},
		OpInfo{Opcode: OpBatchForget, Name: "BATCH_FORGET", In: shape(BatchForgetIn{}), Tail: TailArray, Elem: shape(ForgetOne{}), NoReply: true},
		OpInfo{Opcode: OpGetattr, Name: "GETATTR", In: shape(GetattrIn{}), Out: []*Shape{attr}},
		OpInfo{Opcode: OpSetattr, Name: "SETATTR", In: shape(SetattrIn{}), Out: []*Shape{attr}},
		OpInfo{Opcode: OpStatx, Name: "STATX", In: shape(StatxIn{}), Out: outs(StatxOut{})},
		OpInfo{Opcode: OpAccess, Name: "ACCESS", In: shape(AccessIn{})},
		OpInfo{Opcode: OpBmap, Name: "BMAP", In: shape(BmapIn{}), Out: outs(BmapOut{})},

		// Names
		OpInfo{Opcode: OpReadlink, Name: "READLINK", OutData: true},
		OpInfo{Opcode: OpSymlink, Name: "SYMLINK", Tail: TailTwoNames, Out: []*Shape{entry}},
		OpInfo{Opcode: OpMknod, Name: "MKNOD", In: shape(MknodIn{}), Tail: TailName, Out: []*Shape{entry}},
		OpInfo{Opcode: OpMkdir, Name: "MKDIR", In: shape(MkdirIn{}), Tail: TailName, Out: []*Shape{entry}},
		OpInfo{Opcode: OpUnlink, Name: "UNLINK", Tail: TailName},
		OpInfo{Opcode: OpRmdir, Name: "RMDIR", Tail: TailName},
		OpInfo{Opcode: OpRename, Name: "RENAME", In: shape(RenameIn{}), Tail: TailTwoNames},
		OpInfo{Opcode: OpRename2, Name: "RENAME2", In: shape(Rename2In{}), Tail: TailTwoNames},
		OpInfo{Opcode: OpLink, Name: "LINK", In: shape(LinkIn{}), Tail: TailName, Out: []*Shape{entry}},
		OpInfo{Opcode: OpCreate, Name: "CREATE", In: shape(CreateIn{}), Tail: TailName, Out: []*Shape{entry, open}},
		OpInfo{Opcode: OpTmpfile, Name: "TMPFILE", In: shape(CreateIn{}), Tail: TailName, Out: []*Shape{entry, open}},

		// Files
		OpInfo{Opcode: OpOpen, Name: "OPEN", In: shape(OpenIn{}), Out: []*Shape{open}},
		OpInfo{Opcode: OpRead, Name: "READ", In: shape(ReadIn{}), OutData: true},
		OpInfo{Opcode: OpWrite, Name: "WRITE", In: shape(WriteIn{}), Tail: TailData, Out: outs(WriteOut{})},
		OpInfo{Opcode: OpFlush, Name: "FLUSH", In: shape(FlushIn{})},
		OpInfo{Opcode: OpRelease, Name: "RELEASE", In: shape(ReleaseIn{})},
		OpInfo{Opcode: OpFsync, Name: "FSYNC", In: shape(FsyncIn{})},
		OpInfo{Opcode: OpFallocate, Name: "FALLOCATE", In: shape(FallocateIn{})},
		OpInfo{Opcode: OpLseek, Name: "LSEEK", In: shape(LseekIn{}), Out: outs(LseekOut{})},
		OpInfo{Opcode: OpCopyFileRange, Name: "COPY_FILE_RANGE", In: shape(CopyFileRangeIn{}), Out: outs(WriteOut{})},
		OpInfo{Opcode: OpCopyFileRange64, Name: "COPY_FILE_RANGE_64", In: shape(CopyFileRangeIn{}), Out: outs(CopyFileRangeOut{})},
		OpInfo{Opcode: OpIoctl, Name: "IOCTL", In: shape(IoctlIn{}), Tail: TailData, Out: outs(IoctlOut{}), OutData: true},
		OpInfo{Opcode: OpPoll, Name: "POLL", In: shape(PollIn{}), Out: outs(PollOut{})},
		OpInfo{Opcode: OpSetupMapping, Name: "SETUPMAPPING", In: shape(SetupMappingIn{})},
		OpInfo{Opcode: OpRemoveMapping, Name: "REMOVEMAPPING", In: shape(RemoveMappingIn{}), Tail: TailArray, Elem: shape(RemoveMappingOne{})},

		// Directories
		OpInfo{Opcode: OpOpendir, Name: "OPENDIR", In: shape(OpenIn{}), Out: []*Shape{open}},
		OpInfo{Opcode: OpReaddir, Name: "READDIR", In: shape(ReadIn{}), OutData: true},
		OpInfo{Opcode: OpReaddirplus, Name: "READDIRPLUS", In: shape(ReadIn{}), OutData: true},
		OpInfo{Opcode: OpReleasedir, Name: "RELEASEDIR", In: shape(ReleaseIn{})},
		OpInfo{Opcode: OpFsyncdir, Name: "FSYNCDIR", In: shape(FsyncIn{})},

		// Extended attributes. A zero Size in the request asks for GetxattrOut;
		// otherwise the reply is the raw value or name list.
		OpInfo{Opcode: OpSetxattr, Name: "SETXATTR", In: shape(SetxattrIn{}), Tail: TailNameValue},
		OpInfo{Opcode: OpGetxattr, Name: "GETXATTR", In: shape(GetxattrIn{}), Tail: TailName, Out: outs(GetxattrOut{}), OutData: true},
		OpInfo{Opcode: OpListxattr, Name: "LISTXATTR", In: shape(GetxattrIn{}), Out: outs(GetxattrOut{}), OutData: true},
		OpInfo{Opcode: OpRemovexattr, Name: "REMOVEXATTR", Tail: TailName},

		// Locks
		OpInfo{Opcode: OpGetlk, Name: "GETLK", In: shape(LkIn{}), Out: outs(LkOut{})},
		OpInfo{Opcode: OpSetlk, Name: "SETLK", In: shape(LkIn{})},
		OpInfo{Opcode: OpSetlkw, Name: "SETLKW", In: shape(LkIn{})},

		// File system
		OpInfo{Opcode: OpStatfs, Name: "STATFS", Out: outs(StatfsOut{})},
		OpInfo{Opcode: OpSyncfs, Name: "SYNCFS", In: shape(SyncfsIn{})},

		// Session
		OpInfo{Opcode: OpInit, Name: "INIT", In: shape(InitIn{}), MinIn: InitInCompatSize, Out: outs(InitOut{})},
		OpInfo{Opcode: OpDestroy, Name: "DESTROY"},
		OpInfo{Opcode: OpInterrupt, Name: "INTERRUPT", In: shape(InterruptIn{}), NoReply: true},

		// Answers a retrieve notification, which this package does not send.
		OpInfo{Opcode: OpNotifyReply, Name: "NOTIFY_REPLY", Tail: TailData, NoReply: true},
	)
}
