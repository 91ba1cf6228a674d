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
	"github.com/jacobsa/rawfuse/buffer"
	"github.com/jacobsa/rawfuse/fusekernel"
)

// InitConfig is the server side of the INIT exchange: what this process is
// willing to do, and the limits it wants the kernel to observe.
type InitConfig struct {
	// The features the server implements. Only those the kernel also offers
	// are enabled.
	Flags  fusekernel.InitFlags
	Flags2 fusekernel.InitFlags2

	// A ceiling on the kernel's read-ahead. Zero means accept whatever the
	// kernel proposes.
	MaxReadahead uint32

	// The largest WRITE the server accepts. Clamped to buffer.MaxWriteSize.
	MaxWrite uint32

	// The number of background requests the kernel may have outstanding, and
	// the count at which it considers the connection congested.
	MaxBackground       uint16
	CongestionThreshold uint16

	// The granularity of timestamps in nanoseconds.
	TimeGran uint32

	// The largest number of pages in one request. Sent only when
	// fusekernel.InitMaxPages is negotiated.
	MaxPages uint16

	// Seconds after which the kernel aborts a request the server has not
	// answered. Sent only when fusekernel.InitRequestTimeout is negotiated.
	RequestTimeout uint16
}

// DefaultInitConfig returns the configuration Connection.Init uses when
// given nil.
//
// SETXATTR is always decoded in its extended form, so InitSetxattrExt must
// stay enabled for SETXATTR requests to be understood.
func DefaultInitConfig() *InitConfig {
	return &InitConfig{
		Flags: fusekernel.InitAsyncRead |
			fusekernel.InitAtomicTrunc |
			fusekernel.InitBigWrites |
			fusekernel.InitParallelDirops |
			fusekernel.InitMaxPages |
			fusekernel.InitSetxattrExt |
			fusekernel.InitExt,
		MaxWrite:            128 << 10,
		MaxBackground:       12,
		CongestionThreshold: 9,
		TimeGran:            1,
		MaxPages:            32,
	}
}

// The protocol version this package speaks.
var libraryProtocol = fusekernel.Protocol{
	Major: fusekernel.KernelVersion,
	Minor: fusekernel.KernelMinorVersion,
}

// Negotiate computes the reply to the kernel's INIT request. It fails with a
// *ProtocolError if the kernel speaks a different major version.
//
// A feature is enabled in the reply only if the kernel offers it, cfg
// supports it, and this package knows it.
func Negotiate(
	in *fusekernel.InitIn,
	cfg *InitConfig) (out *fusekernel.InitOut, err error) {
	kernel := fusekernel.Protocol{Major: in.Major, Minor: in.Minor}
	if kernel.Major != libraryProtocol.Major {
		err = &ProtocolError{Kernel: kernel, Library: libraryProtocol}
		return
	}

	out = &fusekernel.InitOut{
		Major:               libraryProtocol.Major,
		Minor:               libraryProtocol.Minor,
		MaxReadahead:        in.MaxReadahead,
		Flags:               in.Flags & cfg.Flags & cfg.Flags.Known(),
		MaxBackground:       cfg.MaxBackground,
		CongestionThreshold: cfg.CongestionThreshold,
		MaxWrite:            cfg.MaxWrite,
		TimeGran:            cfg.TimeGran,
	}

	if kernel.LT(libraryProtocol) {
		out.Minor = kernel.Minor
	}

	if cfg.MaxReadahead != 0 && cfg.MaxReadahead < out.MaxReadahead {
		out.MaxReadahead = cfg.MaxReadahead
	}

	if out.MaxWrite > buffer.MaxWriteSize {
		out.MaxWrite = buffer.MaxWriteSize
	}

	// The second flags word is meaningful only with the extension flag.
	if out.Flags&fusekernel.InitExt != 0 {
		out.Flags2 = in.Flags2 & cfg.Flags2 & cfg.Flags2.Known()
	}

	if out.Flags&fusekernel.InitMaxPages != 0 {
		out.MaxPages = cfg.MaxPages
	}

	if out.Flags2&fusekernel.InitRequestTimeout != 0 {
		out.RequestTimeout = cfg.RequestTimeout
	}

	return
}
