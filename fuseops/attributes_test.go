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

package fuseops_test

import (
	"os"
	"testing"
	"time"

	"github.com/jacobsa/rawfuse/fuseops"
	"github.com/jacobsa/timeutil"
	. "github.com/jacobsa/ogletest"
	"golang.org/x/sys/unix"
)

func TestAttributes(t *testing.T) { RunTests(t) }

////////////////////////////////////////////////////////////////////////
// Boilerplate
////////////////////////////////////////////////////////////////////////

type AttributesTest struct {
	clock timeutil.SimulatedClock
}

func init() { RegisterTestSuite(&AttributesTest{}) }

func (t *AttributesTest) SetUp(ti *TestInfo) {
	t.clock.SetTime(time.Unix(1428200100, 0))
}

////////////////////////////////////////////////////////////////////////
// Tests
////////////////////////////////////////////////////////////////////////

func (t *AttributesTest) FileModes() {
	testCases := []struct {
		in       os.FileMode
		expected uint32
	}{
		{0644, unix.S_IFREG | 0644},
		{os.ModeDir | 0755, unix.S_IFDIR | 0755},
		{os.ModeSymlink | 0777, unix.S_IFLNK | 0777},
		{os.ModeNamedPipe | 0600, unix.S_IFIFO | 0600},
		{os.ModeSocket | 0600, unix.S_IFSOCK | 0600},
		{os.ModeDevice | os.ModeCharDevice | 0620, unix.S_IFCHR | 0620},
		{os.ModeDevice | 0660, unix.S_IFBLK | 0660},
		{os.ModeSetuid | 0755, unix.S_IFREG | unix.S_ISUID | 0755},
		{os.ModeSetgid | 0755, unix.S_IFREG | unix.S_ISGID | 0755},
		{os.ModeDir | os.ModeSticky | 0777, unix.S_IFDIR | unix.S_ISVTX | 0777},
	}

	for _, tc := range testCases {
		ExpectEq(tc.expected, fuseops.ConvertFileMode(tc.in), "mode: %v", tc.in)
	}
}

func (t *AttributesTest) Attributes() {
	attrs := fuseops.InodeAttributes{
		Size:  1025,
		Nlink: 2,
		Mode:  0640,
		Atime: time.Unix(100, 1),
		Mtime: time.Unix(200, 2),
		Ctime: time.Unix(300, 3),
		Uid:   1000,
		Gid:   1001,
	}

	a := fuseops.ConvertAttributes(17, &attrs)
	ExpectEq(17, a.Ino)
	ExpectEq(1025, a.Size)
	ExpectEq(3, a.Blocks)
	ExpectEq(100, a.Atime)
	ExpectEq(1, a.AtimeNsec)
	ExpectEq(200, a.Mtime)
	ExpectEq(2, a.MtimeNsec)
	ExpectEq(300, a.Ctime)
	ExpectEq(3, a.CtimeNsec)
	ExpectEq(unix.S_IFREG|0640, a.Mode)
	ExpectEq(2, a.Nlink)
	ExpectEq(1000, a.Uid)
	ExpectEq(1001, a.Gid)
}

func (t *AttributesTest) AttrOut() {
	attrs := fuseops.InodeAttributes{Mode: os.ModeDir | 0700}
	exp := t.clock.Now().Add(1500 * time.Millisecond)

	out := fuseops.ConvertAttrOut(&t.clock, fuseops.RootInodeID, &attrs, exp)
	ExpectEq(1, out.AttrValid)
	ExpectEq(500000000, out.AttrValidNsec)
	ExpectEq(fuseops.RootInodeID, out.Attr.Ino)
	ExpectEq(unix.S_IFDIR|0700, out.Attr.Mode)
}

func (t *AttributesTest) ChildInodeEntry() {
	e := fuseops.ChildInodeEntry{
		Child:                23,
		Generation:           4,
		Attributes:           fuseops.InodeAttributes{Size: 512},
		AttributesExpiration: t.clock.Now().Add(time.Second),
		EntryExpiration:      t.clock.Now().Add(time.Minute),
	}

	out := fuseops.ConvertChildInodeEntry(&t.clock, &e)
	ExpectEq(23, out.NodeID)
	ExpectEq(4, out.Generation)
	ExpectEq(60, out.EntryValid)
	ExpectEq(0, out.EntryValidNsec)
	ExpectEq(1, out.AttrValid)
	ExpectEq(23, out.Attr.Ino)
	ExpectEq(1, out.Attr.Blocks)
}

func (t *AttributesTest) ZeroExpirationMeansNoCaching() {
	e := fuseops.ChildInodeEntry{Child: 23}

	out := fuseops.ConvertChildInodeEntry(&t.clock, &e)
	ExpectEq(0, out.EntryValid)
	ExpectEq(0, out.EntryValidNsec)
	ExpectEq(0, out.AttrValid)
	ExpectEq(0, out.AttrValidNsec)
}
