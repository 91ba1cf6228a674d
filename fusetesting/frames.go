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

package fusetesting

import (
	"fmt"

	"github.com/NVIDIA/cstruct"
	"github.com/jacobsa/rawfuse/fusekernel"
)

// Build the frame the kernel would write for a request with the given
// header, fixed record and trailing bytes. body may be nil. The header's
// length field is filled in.
func RequestFrame(
	h fusekernel.InHeader,
	body interface{},
	tail []byte) (frame []byte) {
	var payload []byte
	if body != nil {
		payload = pack(body)
	}

	h.Len = uint32(fusekernel.InHeaderSize + len(payload) + len(tail))

	frame = pack(&h)
	frame = append(frame, payload...)
	frame = append(frame, tail...)

	return
}

// Split a reply frame into its header and payload, checking that the
// header's length field matches.
func ParseReply(frame []byte) (h fusekernel.OutHeader, payload []byte, err error) {
	if len(frame) < fusekernel.OutHeaderSize {
		err = fmt.Errorf("is only %d bytes long", len(frame))
		return
	}

	if err = Unpack(frame[:fusekernel.OutHeaderSize], &h); err != nil {
		return
	}

	if int(h.Len) != len(frame) {
		err = fmt.Errorf("has length field %d but is %d bytes long", h.Len, len(frame))
		return
	}

	payload = frame[fusekernel.OutHeaderSize:]
	return
}

// Unpack the front of b into the record pointed to by rec.
func Unpack(b []byte, rec interface{}) (err error) {
	if _, err = cstruct.Unpack(b, rec, fusekernel.HostOrder); err != nil {
		err = fmt.Errorf("cstruct.Unpack: %v", err)
	}

	return
}

func pack(rec interface{}) []byte {
	b, err := cstruct.Pack(rec, fusekernel.HostOrder)
	if err != nil {
		panic(fmt.Sprintf("cstruct.Pack: %v", err))
	}

	return b
}
