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

// Package fusekernel describes the binary protocol spoken over /dev/fuse:
// the request and reply headers, the catalog of operation codes, the
// fixed-layout record that accompanies each operation, and the bit sets
// carried inside those records.
//
// Every record is laid out with the field order and widths of the kernel's
// include/uapi/linux/fuse.h, without implicit alignment padding. Multi-byte
// integers are in the host's native byte order: the protocol never leaves
// the machine, so there is no byte order negotiation. See HostOrder.
package fusekernel

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/NVIDIA/cstruct"
)

// The protocol version implemented by this package.
const (
	KernelVersion      = 7
	KernelMinorVersion = 45
)

// The node ID of the root of the file system.
const RootID = 1

// The maximum number of iovecs the kernel accepts in an ioctl retry reply.
const IoctlMaxIov = 256

// Sizes of the fixed headers that open every request and reply.
const (
	InHeaderSize  = 40
	OutHeaderSize = 16
)

// HostOrder is the byte order of the machine we are running on. All records
// are packed and unpacked using it.
var HostOrder binary.ByteOrder = hostOrder()

func hostOrder() binary.ByteOrder {
	var x uint16 = 1
	if *(*byte)(unsafe.Pointer(&x)) == 1 {
		return cstruct.LittleEndian
	}

	return cstruct.BigEndian
}

// Protocol is a FUSE protocol version.
type Protocol struct {
	Major uint32
	Minor uint32
}

func (a Protocol) String() string {
	return fmt.Sprintf("%d.%d", a.Major, a.Minor)
}

// LT returns whether a < b.
func (a Protocol) LT(b Protocol) bool {
	return a.Major < b.Major ||
		(a.Major == b.Major && a.Minor < b.Minor)
}

// GE returns whether a >= b.
func (a Protocol) GE(b Protocol) bool {
	return a.Major > b.Major ||
		(a.Major == b.Major && a.Minor >= b.Minor)
}
