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

package fusekernel_test

import (
	"testing"

	"github.com/jacobsa/rawfuse/fusekernel"
	. "github.com/jacobsa/ogletest"
)

func TestFlags(t *testing.T) { RunTests(t) }

////////////////////////////////////////////////////////////////////////
// Boilerplate
////////////////////////////////////////////////////////////////////////

type FlagsTest struct {
}

func init() { RegisterTestSuite(&FlagsTest{}) }

////////////////////////////////////////////////////////////////////////
// Tests
////////////////////////////////////////////////////////////////////////

func (t *FlagsTest) KernelBitValues() {
	ExpectEq(1<<0, fusekernel.InitAsyncRead)
	ExpectEq(1<<22, fusekernel.InitMaxPages)
	ExpectEq(1<<29, fusekernel.InitSetxattrExt)
	ExpectEq(1<<30, fusekernel.InitExt)
	ExpectEq(1<<5, fusekernel.InitPassthrough)
	ExpectEq(1<<3, fusekernel.SetattrSize)
	ExpectEq(1<<2, fusekernel.IoctlRetry)
	ExpectEq(1<<0, fusekernel.SetupMappingWrite)
	ExpectEq(1<<1, fusekernel.SetupMappingRead)
}

func (t *FlagsTest) Formatting() {
	ExpectEq("0", fusekernel.InitFlags(0).String())
	ExpectEq(
		"FUSE_ASYNC_READ|FUSE_BIG_WRITES",
		(fusekernel.InitBigWrites | fusekernel.InitAsyncRead).String())

	ExpectEq("FATTR_MODE|FATTR_FH", (fusekernel.SetattrMode | fusekernel.SetattrHandle).String())
	ExpectEq("FOPEN_DIRECT_IO|0x10000", (fusekernel.OpenDirectIO | 1<<16).String())
}

func (t *FlagsTest) UnknownBitsSurvive() {
	const unknown fusekernel.InitFlags = 1 << 31

	f := fusekernel.SetFlags(unknown, fusekernel.InitAsyncRead, true)
	f = fusekernel.SetFlags(f, fusekernel.InitAsyncRead, false)
	ExpectEq(unknown, f)

	ExpectEq(fusekernel.InitFlags(0), unknown.Known())
	ExpectEq(fusekernel.InitExt, (unknown | fusekernel.InitExt).Known())
}

func (t *FlagsTest) TogglesCommute() {
	a := fusekernel.OpenKeepCache
	b := fusekernel.OpenNonSeekable

	for _, start := range []fusekernel.OpenOutFlags{0, a, b, a | b, 0xffff} {
		x := fusekernel.SetFlags(fusekernel.SetFlags(start, a, false), b, true)
		y := fusekernel.SetFlags(fusekernel.SetFlags(start, b, true), a, false)
		ExpectEq(x, y)
	}
}

func (t *FlagsTest) HasFlags() {
	f := fusekernel.WriteCache | fusekernel.WriteLockOwner

	ExpectTrue(fusekernel.HasFlags(f, fusekernel.WriteLockOwner))
	ExpectTrue(fusekernel.HasFlags(f, fusekernel.WriteCache|fusekernel.WriteLockOwner))
	ExpectFalse(fusekernel.HasFlags(f, fusekernel.WriteKillSuidgid))
}

func (t *FlagsTest) SixtyFourBitDomain() {
	f := fusekernel.SetupMappingFlags(1 << 40)
	f = fusekernel.SetFlags(f, fusekernel.SetupMappingRead, true)

	ExpectEq(fusekernel.SetupMappingRead, f.Known())
	ExpectEq("FUSE_SETUPMAPPING_FLAG_READ|0x10000000000", f.String())
}
