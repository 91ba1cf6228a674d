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
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/jacobsa/reqtrace"
	"golang.org/x/net/context"
	"golang.org/x/sys/unix"
)

// The fuse device. Variable for testing.
var devicePath = "/dev/fuse"

// The file system type given to mount(2).
const fsType = "fuse"

// Variables for testing.
var (
	openDevice = func(path string) (*os.File, error) {
		return os.OpenFile(path, os.O_RDWR|syscall.O_CLOEXEC, 0)
	}

	mountFunc = unix.Mount
)

// Mount opens the fuse device, finalizes b against it, and mounts the file
// system with mount(2). This requires CAP_SYS_ADMIN; there is no fallback to
// fusermount.
//
// If the device does not exist the error is a *DeviceNotFoundError, and if
// the kernel rejects the mount it is a *MountError. Nothing is retried. On
// failure the device is closed again.
//
// The kernel's INIT request is waiting on the connection when Mount
// returns; answer it with Connection.Init before anything else.
//
// A mount point of the form /dev/fd/N means that a privileged parent has
// already opened the device, mounted it, and passed down descriptor N. In
// that case N is adopted as the connection and no mount(2) takes place.
func Mount(
	ctx context.Context,
	b *MountBuilder) (mfs *MountedFileSystem, err error) {
	_, report := reqtrace.StartSpan(ctx, "Mount")
	defer func() { report(err) }()

	debugLogger := debugLoggerOrDefault(b.debugLogger)

	if strings.HasPrefix(b.dir, "/dev/fd/") {
		if b.consumed {
			err = ErrBuilderConsumed
			return
		}

		var fd int
		if fd, err = parseFuseFd(b.dir); err != nil {
			return
		}

		debugLogger.Printf("Adopting descriptor %d", fd)
		b.consumed = true

		dev := os.NewFile(uintptr(fd), b.dir)
		conn := NewConnection(dev, b.messageProvider, b.debugLogger, b.errorLogger)
		mfs = newMountedFileSystem(b.dir, conn)
		return
	}

	// Open the device.
	dev, err := openDevice(devicePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = &DeviceNotFoundError{Path: devicePath, Err: err}
			return
		}

		err = fmt.Errorf("OpenFile: %w", err)
		return
	}

	// Work out the arguments to mount(2).
	opts, err := b.Build(dev)
	if err != nil {
		dev.Close()
		err = fmt.Errorf("Build: %w", err)
		return
	}

	debugLogger.Printf("Mounting: %v", opts)

	// Mount.
	err = mountFunc(opts.Source, opts.Target, fsType, uintptr(opts.Flags), opts.Options)
	if err != nil {
		dev.Close()
		err = &MountError{Dir: opts.Target, Err: err}
		return
	}

	conn := NewConnection(dev, b.messageProvider, b.debugLogger, b.errorLogger)
	mfs = newMountedFileSystem(opts.Dir, conn)

	return
}

func parseFuseFd(dir string) (fd int, err error) {
	fd, err = strconv.Atoi(strings.TrimPrefix(dir, "/dev/fd/"))
	if err != nil || fd < 0 {
		fd = -1
		err = &ConfigError{Field: "mount point", Value: dir, Reason: "not a valid /dev/fd/N path"}
	}

	return
}
