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

// Package fuseops wraps a decoded request in a handle that carries its trace
// span and knows how to send exactly one reply, plus helpers for converting
// file system state into reply records.
package fuseops

import (
	"fmt"
	"syscall"

	"github.com/jacobsa/rawfuse/buffer"
	"github.com/jacobsa/reqtrace"
	"golang.org/x/net/context"
)

// A header that is included with every request.
type OpHeader struct {
	// The inode the request concerns.
	Inode InodeID

	// Credentials information for the process making the request.
	Uid uint32
	Gid uint32
	Pid uint32
}

// An Op is one request read from the kernel, with the means to answer it.
// Ops are created by the connection that read them. Call exactly one of
// Respond and RespondErr for each, including those whose operation takes no
// reply; for those nothing is written, but resources are released.
type Op struct {
	// The decoded request. Its Tail is valid until the op is answered.
	Request *buffer.Request

	ctx    context.Context
	report reqtrace.ReportFunc
	log    func(int, string, ...interface{})
	newOut func() *buffer.OutMessage
	send   func(*buffer.Request, *buffer.OutMessage) error

	answered bool
}

// Create an op for r. send is responsible for writing the reply (if the
// operation takes one) and for releasing the message.
func NewOp(
	ctx context.Context,
	r *buffer.Request,
	log func(int, string, ...interface{}),
	newOut func() *buffer.OutMessage,
	send func(*buffer.Request, *buffer.OutMessage) error) (o *Op) {
	o = &Op{
		Request: r,
		log:     log,
		newOut:  newOut,
		send:    send,
	}

	// Set up a trace span for this op.
	o.ctx, o.report = reqtrace.StartSpan(ctx, r.Op.Name)
	return
}

func (o *Op) Header() OpHeader {
	h := o.Request.Header
	return OpHeader{
		Inode: InodeID(h.NodeID),
		Uid:   h.Uid,
		Gid:   h.Gid,
		Pid:   h.Pid,
	}
}

func (o *Op) Context() context.Context {
	return o.ctx
}

func (o *Op) Logf(format string, v ...interface{}) {
	const calldepth = 2
	o.log(calldepth, format, v...)
}

func (o *Op) String() string {
	return fmt.Sprintf("%s (unique %d)", o.Request.Op.Name, o.Request.Header.Unique)
}

// Answer successfully with the supplied records, in order, followed by data.
func (o *Op) Respond(data []byte, recs ...interface{}) (err error) {
	o.checkUnanswered()
	o.report(nil)

	m := o.newOut()
	for _, rec := range recs {
		m.AppendRecord(rec)
	}

	m.Append(data)

	o.Logf("-> (%v) OK", o)
	err = o.send(o.Request, m)
	return
}

// Answer with the supplied error, which must be non-zero.
func (o *Op) RespondErr(errno syscall.Errno) (err error) {
	if errno == 0 {
		panic("Expect non-zero errno here.")
	}

	o.checkUnanswered()
	o.report(errno)

	m := o.newOut()
	m.SetError(errno)

	o.Logf("-> (%v) error: %v", o, errno)
	err = o.send(o.Request, m)
	return
}

func (o *Op) checkUnanswered() {
	if o.answered {
		panic(fmt.Sprintf("%v answered twice", o))
	}

	o.answered = true
}
