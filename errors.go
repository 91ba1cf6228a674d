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

	"github.com/jacobsa/rawfuse/fusekernel"
	"golang.org/x/sys/unix"
)

const (
	// Errors corresponding to kernel error numbers, for use in replies.
	EIO    = unix.EIO
	ENOSYS = unix.ENOSYS
	EPROTO = unix.EPROTO
)

// ErrBuilderConsumed is returned by MountBuilder.Build after the first call.
var ErrBuilderConsumed = errors.New("mount builder already consumed")

// DeviceNotFoundError is returned by Mount when the fuse device does not
// exist, which almost always means the kernel module is not loaded.
type DeviceNotFoundError struct {
	Path string
	Err  error
}

func (e *DeviceNotFoundError) Error() string {
	return fmt.Sprintf(
		"%s not found (is the fuse kernel module loaded? try `modprobe fuse`): %v",
		e.Path,
		e.Err)
}

func (e *DeviceNotFoundError) Unwrap() error {
	return e.Err
}

// MountError is returned by Mount when mount(2) fails. Err is the
// syscall.Errno returned by the kernel.
type MountError struct {
	Dir string
	Err error
}

func (e *MountError) Error() string {
	return fmt.Sprintf("mount(2) on %q: %v", e.Dir, e.Err)
}

func (e *MountError) Unwrap() error {
	return e.Err
}

// ConfigError is returned by the MountBuilder method that was handed a value
// that cannot be passed to the kernel.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// ProtocolError is returned when the kernel speaks a major protocol version
// this package does not.
type ProtocolError struct {
	Kernel  fusekernel.Protocol
	Library fusekernel.Protocol
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf(
		"kernel speaks FUSE protocol %v, which is incompatible with %v",
		e.Kernel,
		e.Library)
}
