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
	"math"
	"testing"
	"time"

	"github.com/jacobsa/rawfuse/fusekernel"
	"github.com/jacobsa/timeutil"
	. "github.com/jacobsa/oglematchers"
	. "github.com/jacobsa/ogletest"
	"golang.org/x/sys/unix"
)

func TestConvert(t *testing.T) { RunTests(t) }

////////////////////////////////////////////////////////////////////////
// Boilerplate
////////////////////////////////////////////////////////////////////////

type ConvertTest struct {
	clock timeutil.SimulatedClock
}

func init() { RegisterTestSuite(&ConvertTest{}) }

func (t *ConvertTest) SetUp(ti *TestInfo) {
	t.clock.SetTime(time.Date(2015, 4, 5, 2, 15, 0, 0, time.Local))
}

////////////////////////////////////////////////////////////////////////
// Tests
////////////////////////////////////////////////////////////////////////

func (t *ConvertTest) TimeToWire() {
	secs, nsec := fusekernel.TimeToWire(time.Unix(1428200100, 123456789))
	ExpectEq(1428200100, secs)
	ExpectEq(123456789, nsec)
}

func (t *ConvertTest) TimeToWire_BeforeEpoch() {
	secs, nsec := fusekernel.TimeToWire(time.Unix(-1, 5))
	ExpectEq(0, secs)
	ExpectEq(0, nsec)
}

func (t *ConvertTest) ExpirationInFuture() {
	exp := t.clock.Now().Add(3*time.Second + 250*time.Millisecond)

	secs, nsec := fusekernel.ExpirationToWire(&t.clock, exp)
	ExpectEq(3, secs)
	ExpectEq(250000000, nsec)
}

func (t *ConvertTest) ExpirationInPast() {
	exp := t.clock.Now().Add(-time.Minute)

	secs, nsec := fusekernel.ExpirationToWire(&t.clock, exp)
	ExpectEq(0, secs)
	ExpectEq(0, nsec)
}

func (t *ConvertTest) ZeroExpiration() {
	secs, nsec := fusekernel.ExpirationToWire(&t.clock, time.Time{})
	ExpectEq(0, secs)
	ExpectEq(0, nsec)
}

func (t *ConvertTest) ExpirationMovesWithClock() {
	exp := t.clock.Now().Add(time.Hour)
	t.clock.AdvanceTime(59 * time.Minute)

	secs, _ := fusekernel.ExpirationToWire(&t.clock, exp)
	ExpectEq(60, secs)
}

////////////////////////////////////////////////////////////////////////
// Locks
////////////////////////////////////////////////////////////////////////

func (t *ConvertTest) LockToUnix() {
	l := fusekernel.FileLock{Start: 10, End: 19, Type: fusekernel.LockWrite, Pid: 7}

	f, err := l.ToUnix()
	AssertEq(nil, err)

	ExpectEq(unix.F_WRLCK, f.Type)
	ExpectEq(unix.SEEK_SET, f.Whence)
	ExpectEq(10, f.Start)
	ExpectEq(10, f.Len)
	ExpectEq(7, f.Pid)
}

func (t *ConvertTest) LockToUnix_ThroughEOF() {
	l := fusekernel.FileLock{Start: 100, End: math.MaxInt64, Type: fusekernel.LockRead}

	f, err := l.ToUnix()
	AssertEq(nil, err)

	ExpectEq(unix.F_RDLCK, f.Type)
	ExpectEq(100, f.Start)
	ExpectEq(0, f.Len)
}

func (t *ConvertTest) LockToUnix_BadType() {
	l := fusekernel.FileLock{Type: 17}

	_, err := l.ToUnix()
	ExpectThat(err, Error(HasSubstr("lock type 17")))
}

func (t *ConvertTest) LockToUnix_BadRange() {
	l := fusekernel.FileLock{Start: 10, End: 9, Type: fusekernel.LockRead}

	_, err := l.ToUnix()
	ExpectThat(err, Error(HasSubstr("range")))
}

func (t *ConvertTest) LockRoundTrip() {
	locks := []fusekernel.FileLock{
		{Start: 0, End: math.MaxInt64, Type: fusekernel.LockUnlock, Pid: 1},
		{Start: 4096, End: 8191, Type: fusekernel.LockRead, Pid: 2},
		{Start: 1, End: 1, Type: fusekernel.LockWrite, Pid: 3},
	}

	for _, l := range locks {
		f, err := l.ToUnix()
		AssertEq(nil, err)

		back, err := fusekernel.FileLockFromUnix(&f)
		AssertEq(nil, err)
		ExpectThat(back, DeepEquals(l))
	}
}
