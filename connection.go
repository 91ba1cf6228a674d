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
	"errors"
	"fmt"
	"io"
	"log"
	"syscall"

	"github.com/jacobsa/rawfuse/buffer"
	"github.com/jacobsa/rawfuse/fusekernel"
	"github.com/jacobsa/rawfuse/fuseops"
	"golang.org/x/net/context"
)

// A connection to the fuse kernel process, over the device opened by Mount.
//
// Reads and writes each move exactly one frame. ReadRequest and ReadOp must
// not be called concurrently with each other, but replies may be written
// from any goroutine, in any order: the kernel matches them to requests by
// their unique IDs.
type Connection struct {
	debugLogger *log.Logger
	errorLogger *log.Logger

	dev      io.ReadWriteCloser
	provider buffer.MessageProvider

	// The protocol version agreed by Init. Zero until then.
	protocol fusekernel.Protocol
}

// Create a connection over dev, which is usually the *os.File for
// /dev/fuse. If provider is nil, a buffer.DefaultMessageProvider is used.
// Responsibility for closing dev is transferred to the result.
func NewConnection(
	dev io.ReadWriteCloser,
	provider buffer.MessageProvider,
	debugLogger *log.Logger,
	errorLogger *log.Logger) (c *Connection) {
	if provider == nil {
		provider = &buffer.DefaultMessageProvider{}
	}

	c = &Connection{
		debugLogger: debugLoggerOrDefault(debugLogger),
		errorLogger: errorLoggerOrDefault(errorLogger),
		dev:         dev,
		provider:    provider,
	}

	return
}

// Log information for an operation with the given unique ID. calldepth is
// the depth to use when recovering file:line information with
// runtime.Caller.
func (c *Connection) debugLog(
	unique uint64,
	calldepth int,
	format string,
	v ...interface{}) {
	// Get the fuse unique ID in front of the message.
	msg := fmt.Sprintf("Op 0x%08x %v", unique, fmt.Sprintf(format, v...))
	c.debugLogger.Output(calldepth+1, msg)
}

// Protocol returns the protocol version negotiated by Init.
func (c *Connection) Protocol() fusekernel.Protocol {
	return c.protocol
}

// Init reads the kernel's INIT request and answers it according to cfg, or
// DefaultInitConfig if cfg is nil. It must be the first thing done with a
// new connection; the kernel sends nothing else until it is answered.
//
// If the kernel speaks an incompatible protocol, INIT is failed with EPROTO
// and a *ProtocolError is returned.
func (c *Connection) Init(cfg *InitConfig) (out *fusekernel.InitOut, err error) {
	if cfg == nil {
		cfg = DefaultInitConfig()
	}

	m := c.provider.GetInMessage()
	defer c.provider.PutInMessage(m)

	r, err := c.ReadRequest(m)
	if err != nil {
		err = fmt.Errorf("ReadRequest: %w", err)
		return
	}

	in, ok := r.Body.(*fusekernel.InitIn)
	if !ok {
		c.ReplyError(r, EIO)
		err = fmt.Errorf("Expected INIT, got %v", r.Op)
		return
	}

	c.debugLog(r.Header.Unique, 1, "Kernel offers %d.%d: %v, %v", in.Major, in.Minor, in.Flags, in.Flags2)

	out, err = Negotiate(in, cfg)
	if err != nil {
		c.ReplyError(r, EPROTO)
		return
	}

	if err = c.Reply(r, buffer.Reply(r.Header.Unique, nil, out)); err != nil {
		out = nil
		err = fmt.Errorf("Reply: %v", err)
		return
	}

	c.protocol = fusekernel.Protocol{Major: out.Major, Minor: out.Minor}
	c.debugLog(r.Header.Unique, 1, "Negotiated %v: %v, %v", c.protocol, out.Flags, out.Flags2)

	return
}

// Read the next request into m and decode it. Return io.EOF if the kernel
// has closed the connection, which happens when the file system is
// unmounted.
//
// A request that fails to decode but whose unique ID can be recovered is
// answered with EIO and skipped. One whose header cannot be read leaves no
// way to answer it, and its *buffer.DecodeError is returned.
//
// The result aliases m, so m must not be reused until the request has been
// answered.
func (c *Connection) ReadRequest(m *buffer.InMessage) (r *buffer.Request, err error) {
	for {
		if err = c.readMessage(m); err != nil {
			return
		}

		r, err = m.Decode()
		if err == nil {
			c.debugLog(r.Header.Unique, 1, "<- %v (inode %d)", r.Op, r.Header.NodeID)
			return
		}

		var decodeErr *buffer.DecodeError
		if !errors.As(err, &decodeErr) {
			return
		}

		unique, ok := decodeErr.Unique()
		if !ok {
			c.errorLogger.Printf("Unanswerable request: %v", err)
			return
		}

		c.errorLogger.Printf("Answering with EIO: %v", err)
		if err = c.WriteMessage(buffer.ErrorReply(unique, EIO)); err != nil {
			err = fmt.Errorf("WriteMessage: %v", err)
			return
		}
	}
}

func (c *Connection) readMessage(m *buffer.InMessage) (err error) {
	for {
		err = m.Init(c.dev)
		switch {
		case err == nil:
			return

		// The request was interrupted before we could read it, or the read
		// itself was interrupted.
		case errors.Is(err, syscall.ENOENT),
			errors.Is(err, syscall.EINTR),
			errors.Is(err, syscall.EAGAIN):
			continue

		// Unmounted.
		case errors.Is(err, syscall.ENODEV), errors.Is(err, io.EOF):
			err = io.EOF
			return

		default:
			err = fmt.Errorf("Init: %w", err)
			return
		}
	}
}

// Read the next request and wrap it in an op whose trace span descends from
// ctx. Errors are as for ReadRequest.
func (c *Connection) ReadOp(ctx context.Context) (op *fuseops.Op, err error) {
	m := c.provider.GetInMessage()

	r, err := c.ReadRequest(m)
	if err != nil {
		c.provider.PutInMessage(m)
		return
	}

	logf := func(calldepth int, format string, v ...interface{}) {
		c.debugLog(r.Header.Unique, calldepth+1, format, v...)
	}

	send := func(r *buffer.Request, out *buffer.OutMessage) error {
		defer c.provider.PutInMessage(m)
		defer c.provider.PutOutMessage(out)

		out.SetUnique(r.Header.Unique)
		return c.Reply(r, out.Bytes())
	}

	op = fuseops.NewOp(ctx, r, logf, c.provider.GetOutMessage, send)
	return
}

// Reply writes frame, which must answer r, unless r's operation takes no
// reply, in which case nothing is written.
func (c *Connection) Reply(r *buffer.Request, frame []byte) (err error) {
	if r.Op.NoReply {
		return
	}

	err = c.WriteMessage(frame)
	return
}

// ReplyError fails r with errno, unless r's operation takes no reply.
func (c *Connection) ReplyError(r *buffer.Request, errno syscall.Errno) (err error) {
	c.debugLog(r.Header.Unique, 1, "-> %v error: %v", r.Op, errno)
	err = c.Reply(r, buffer.ErrorReply(r.Header.Unique, errno))
	return
}

// Write one complete frame to the kernel with a single write.
func (c *Connection) WriteMessage(frame []byte) (err error) {
	n, err := c.dev.Write(frame)

	// The kernel returns ENOENT when the request has since been interrupted.
	// There is nobody left to tell.
	if errors.Is(err, syscall.ENOENT) {
		err = nil
		return
	}

	if err == nil && n != len(frame) {
		err = fmt.Errorf("Wrote %d bytes; expected %d", n, len(frame))
	}

	return
}

// Close the device. Any blocked read returns an error. This does not
// unmount the file system.
func (c *Connection) Close() (err error) {
	err = c.dev.Close()
	return
}
