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
	"time"

	"github.com/jacobsa/timeutil"
)

// TimeToWire splits t into the (seconds, nanoseconds) pair used by Attr and
// SxTime. Times before the epoch are clamped to it.
func TimeToWire(t time.Time) (secs uint64, nsec uint32) {
	if t.Unix() < 0 {
		return
	}

	secs = uint64(t.Unix())
	nsec = uint32(t.Nanosecond())
	return
}

// ExpirationToWire converts an absolute expiration time into the relative
// (seconds, nanoseconds) validity period carried by EntryOut and AttrOut,
// measured from the clock's current time. An expiration in the past yields a
// zero period, meaning the kernel must not cache at all.
func ExpirationToWire(
	clock timeutil.Clock,
	t time.Time) (secs uint64, nsec uint32) {
	d := t.Sub(clock.Now())
	if d <= 0 {
		return
	}

	secs = uint64(d / time.Second)
	nsec = uint32((d % time.Second) / time.Nanosecond)
	return
}
