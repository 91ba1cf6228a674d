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

package buffer_test

import (
	"testing"

	"github.com/jacobsa/rawfuse/buffer"
	"github.com/jacobsa/rawfuse/fusekernel"
	. "github.com/jacobsa/ogletest"
)

func TestMessageProvider(t *testing.T) { RunTests(t) }

////////////////////////////////////////////////////////////////////////
// Boilerplate
////////////////////////////////////////////////////////////////////////

type MessageProviderTest struct {
	p buffer.DefaultMessageProvider
}

func init() { RegisterTestSuite(&MessageProviderTest{}) }

////////////////////////////////////////////////////////////////////////
// Tests
////////////////////////////////////////////////////////////////////////

func (t *MessageProviderTest) InMessagesAreRecycled() {
	a := t.p.GetInMessage()
	b := t.p.GetInMessage()
	AssertNe(nil, a)
	ExpectNe(a, b)

	t.p.PutInMessage(a)
	ExpectEq(a, t.p.GetInMessage())

	// Once the list is empty, fresh messages are allocated.
	c := t.p.GetInMessage()
	ExpectNe(a, c)
	ExpectNe(b, c)
}

func (t *MessageProviderTest) OutMessagesAreRecycled() {
	a := t.p.GetOutMessage()
	t.p.PutOutMessage(a)

	ExpectEq(a, t.p.GetOutMessage())
}

func (t *MessageProviderTest) OutMessagesComeBackReset() {
	a := t.p.GetOutMessage()
	a.SetUnique(17)
	a.Append([]byte("taco"))
	t.p.PutOutMessage(a)

	b := t.p.GetOutMessage()
	AssertEq(a, b)
	ExpectEq(fusekernel.OutHeaderSize, b.Len())
	ExpectEq(0, b.OutHeader().Unique)
}
