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
	"errors"
	"testing"

	"github.com/jacobsa/rawfuse/buffer"
	"github.com/jacobsa/rawfuse/fusekernel"
	"github.com/jacobsa/rawfuse/fusetesting"
	"github.com/kylelemons/godebug/pretty"
	. "github.com/jacobsa/oglematchers"
	. "github.com/jacobsa/ogletest"
)

func TestRequest(t *testing.T) { RunTests(t) }

////////////////////////////////////////////////////////////////////////
// Helpers
////////////////////////////////////////////////////////////////////////

func header(op fusekernel.Opcode, unique uint64) fusekernel.InHeader {
	return fusekernel.InHeader{
		Opcode: op,
		Unique: unique,
		NodeID: 1,
		Uid:    1000,
		Gid:    1000,
		Pid:    4242,
	}
}

func decodeError(err error) *buffer.DecodeError {
	var de *buffer.DecodeError
	AssertTrue(errors.As(err, &de), "Expected a *DecodeError, got %T: %v", err, err)
	return de
}

////////////////////////////////////////////////////////////////////////
// Boilerplate
////////////////////////////////////////////////////////////////////////

type RequestTest struct {
}

func init() { RegisterTestSuite(&RequestTest{}) }

////////////////////////////////////////////////////////////////////////
// Tests
////////////////////////////////////////////////////////////////////////

func (t *RequestTest) Getattr() {
	in := &fusekernel.GetattrIn{
		GetattrFlags: fusekernel.GetattrFh,
		Fh:           17,
	}

	frame := fusetesting.RequestFrame(header(fusekernel.OpGetattr, 1), in, nil)
	AssertEq(fusekernel.InHeaderSize+16, len(frame))

	r, err := buffer.Decode(frame)
	AssertEq(nil, err)

	ExpectEq(len(frame), r.Header.Len)
	ExpectEq(fusekernel.OpGetattr, r.Header.Opcode)
	ExpectEq(1, r.Header.Unique)
	ExpectEq(1, r.Header.NodeID)
	ExpectEq(4242, r.Header.Pid)
	ExpectEq("GETATTR", r.Op.Name)

	body, ok := r.Body.(*fusekernel.GetattrIn)
	AssertTrue(ok, "Body: %T", r.Body)
	if diff := pretty.Compare(in, body); diff != "" {
		AddFailure("Body differs (-want +got):\n%s", diff)
	}

	ExpectTrue(r.Tail == nil)
}

func (t *RequestTest) LengthFieldTooLarge() {
	frame := fusetesting.RequestFrame(
		header(fusekernel.OpGetattr, 1),
		&fusekernel.GetattrIn{},
		nil)

	_, err := buffer.Decode(frame[:len(frame)-1])
	ExpectThat(err, fusetesting.IsErr(buffer.ErrLengthMismatch))

	unique, ok := decodeError(err).Unique()
	ExpectTrue(ok)
	ExpectEq(1, unique)
}

func (t *RequestTest) LengthFieldTooSmall() {
	frame := fusetesting.RequestFrame(
		header(fusekernel.OpStatfs, 9),
		nil,
		nil)

	frame = append(frame, 0)

	_, err := buffer.Decode(frame)
	ExpectThat(err, fusetesting.IsErr(buffer.ErrLengthMismatch))
	ExpectThat(err, Error(HasSubstr("have 41")))
}

func (t *RequestTest) ShorterThanHeader() {
	frame := fusetesting.RequestFrame(header(fusekernel.OpStatfs, 3), nil, nil)

	for _, n := range []int{0, 1, fusekernel.InHeaderSize - 1} {
		_, err := buffer.Decode(frame[:n])
		ExpectThat(err, fusetesting.IsErr(buffer.ErrTruncated), "n: %d", n)

		_, ok := decodeError(err).Unique()
		ExpectFalse(ok, "n: %d", n)
	}
}

func (t *RequestTest) PayloadShorterThanRecord() {
	// A header claiming WRITE, with only part of the fixed record.
	frame := fusetesting.RequestFrame(
		header(fusekernel.OpWrite, 5),
		nil,
		make([]byte, 12))

	_, err := buffer.Decode(frame)
	ExpectThat(err, fusetesting.IsErr(buffer.ErrTruncated))
	ExpectThat(err, Error(HasSubstr("WRITE needs 40 payload bytes, have 12")))

	unique, ok := decodeError(err).Unique()
	ExpectTrue(ok)
	ExpectEq(5, unique)
}

func (t *RequestTest) ShortInitFromOlderKernel() {
	in := fusekernel.InitIn{
		Major:        7,
		Minor:        31,
		MaxReadahead: 1 << 17,
		Flags:        fusekernel.InitAsyncRead | fusekernel.InitBigWrites,
	}

	full, err := fusekernel.Pack(&in)
	AssertEq(nil, err)
	frame := fusetesting.RequestFrame(
		header(fusekernel.OpInit, 1),
		nil,
		full[:fusekernel.InitInCompatSize])

	r, err := buffer.Decode(frame)
	AssertEq(nil, err)

	ExpectEq(fusekernel.OpInit, r.Op.Opcode)
	ExpectTrue(r.Tail == nil)
	if diff := pretty.Compare(&in, r.Body); diff != "" {
		AddFailure("Body differs (-want +got):\n%s", diff)
	}

	// Anything shorter is still rejected.
	frame = fusetesting.RequestFrame(
		header(fusekernel.OpInit, 2),
		nil,
		full[:fusekernel.InitInCompatSize-4])

	_, err = buffer.Decode(frame)
	ExpectThat(err, fusetesting.IsErr(buffer.ErrTruncated))
	ExpectThat(err, Error(HasSubstr("INIT needs 16 payload bytes, have 12")))
}

func (t *RequestTest) UnknownOpcodes() {
	for _, op := range []fusekernel.Opcode{0, 7, 19, 54, 0xffffffff} {
		frame := fusetesting.RequestFrame(header(op, 11), nil, nil)

		_, err := buffer.Decode(frame)
		ExpectThat(err, fusetesting.IsErr(buffer.ErrUnknownOpcode), "op: %d", op)

		unique, ok := decodeError(err).Unique()
		ExpectTrue(ok)
		ExpectEq(11, unique)
	}
}

func (t *RequestTest) NoFixedRecord() {
	frame := fusetesting.RequestFrame(header(fusekernel.OpStatfs, 2), nil, nil)

	r, err := buffer.Decode(frame)
	AssertEq(nil, err)

	ExpectEq(nil, r.Body)
	ExpectTrue(r.Tail == nil)
}

func (t *RequestTest) TailFollowsRecord() {
	in := &fusekernel.WriteIn{
		Fh:     3,
		Offset: 4096,
		Size:   5,
	}

	frame := fusetesting.RequestFrame(
		header(fusekernel.OpWrite, 7),
		in,
		[]byte("taco!"))

	r, err := buffer.Decode(frame)
	AssertEq(nil, err)

	ExpectEq("taco!", string(r.Tail))
	ExpectEq(4096, r.Body.(*fusekernel.WriteIn).Offset)
}

func (t *RequestTest) FieldValuesAreNotInspected() {
	// The size field claims far more data than is present. Only the tail
	// helpers care.
	in := &fusekernel.WriteIn{Size: 1 << 30}
	frame := fusetesting.RequestFrame(header(fusekernel.OpWrite, 7), in, nil)

	_, err := buffer.Decode(frame)
	ExpectEq(nil, err)
}

func (t *RequestTest) DecodeDoesNotModifyBuffer() {
	frame := fusetesting.RequestFrame(
		header(fusekernel.OpWrite, 7),
		&fusekernel.WriteIn{Size: 3},
		[]byte("abc"))

	before := append([]byte(nil), frame...)

	_, err := buffer.Decode(frame)
	AssertEq(nil, err)
	ExpectThat(frame, DeepEquals(before))
}

func (t *RequestTest) ErrorMessages() {
	frame := fusetesting.RequestFrame(header(54, 0x1234), nil, nil)

	_, err := buffer.Decode(frame)
	ExpectThat(err, Error(HasSubstr("request 4660 (opcode 54)")))
	ExpectThat(err, Error(HasSubstr("unknown opcode")))

	_, err = buffer.Decode(nil)
	ExpectThat(err, Error(HasSubstr("0 bytes is shorter than the header")))
}
