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

package fuseutil

import (
	"os"
	"syscall"

	"github.com/jacobsa/rawfuse/fuseops"
	"github.com/jacobsa/rawfuse/fusekernel"
)

type DirentType uint32

const (
	DT_Unknown   DirentType = 0
	DT_Socket    DirentType = syscall.DT_SOCK
	DT_Link      DirentType = syscall.DT_LNK
	DT_File      DirentType = syscall.DT_REG
	DT_Block     DirentType = syscall.DT_BLK
	DT_Directory DirentType = syscall.DT_DIR
	DT_Char      DirentType = syscall.DT_CHR
	DT_FIFO      DirentType = syscall.DT_FIFO
)

// Return the dirent type corresponding to the type bits of mode.
func DirentTypeOf(mode os.FileMode) DirentType {
	switch {
	case mode&os.ModeDir != 0:
		return DT_Directory
	case mode&os.ModeSymlink != 0:
		return DT_Link
	case mode&os.ModeNamedPipe != 0:
		return DT_FIFO
	case mode&os.ModeSocket != 0:
		return DT_Socket
	case mode&os.ModeCharDevice != 0:
		return DT_Char
	case mode&os.ModeDevice != 0:
		return DT_Block
	case mode&os.ModeType == 0:
		return DT_File
	}

	return DT_Unknown
}

// A struct representing an entry within a directory file, describing a child.
// See notes on AppendDirent for details.
type Dirent struct {
	// The (opaque) offset within the directory file of the entry following this
	// one. The kernel hands it back in ReadIn.Offset to continue a listing.
	Offset uint64

	// The inode of the child file or directory, and its name within the parent.
	Inode fuseops.InodeID
	Name  string

	// The type of the child. The zero value (DT_Unknown) is legal, but means
	// that the kernel will need to call GetAttr when the type is needed.
	Type DirentType
}

// Return the number of bytes AppendDirent would add for d.
func DirentSize(d Dirent) int {
	const nameOffset = 8 + 8 + 4 + 4
	return align(nameOffset + len(d.Name))
}

// Append the supplied directory entry to the given buffer in the format
// expected in the reply to READDIR, returning the resulting buffer.
func AppendDirent(input []byte, d Dirent) (output []byte) {
	de := fusekernel.Dirent{
		Ino:     uint64(d.Inode),
		Off:     d.Offset,
		Namelen: uint32(len(d.Name)),
		Type:    uint32(d.Type),
	}

	output = appendRecord(input, &de)
	output = appendName(output, d.Name)
	return
}

// Append an entry in the format expected in the reply to READDIRPLUS: the
// child's entry, as for LOOKUP, followed by the dirent. The kernel takes a
// reference on e.NodeID unless it is zero, just as for LOOKUP.
func AppendDirentPlus(
	input []byte,
	e fusekernel.EntryOut,
	d Dirent) (output []byte) {
	output = appendRecord(input, &e)
	output = AppendDirent(output, d)
	return
}

func appendRecord(b []byte, rec interface{}) []byte {
	p, err := fusekernel.Pack(rec)
	if err != nil {
		panic(err)
	}

	return append(b, p...)
}

// Append the name followed by padding up to fusekernel.DirentAlign.
func appendName(b []byte, name string) []byte {
	b = append(b, name...)
	if pad := align(len(name)) - len(name); pad > 0 {
		var padding [fusekernel.DirentAlign]byte
		b = append(b, padding[:pad]...)
	}

	return b
}

func align(n int) int {
	return (n + fusekernel.DirentAlign - 1) &^ (fusekernel.DirentAlign - 1)
}
