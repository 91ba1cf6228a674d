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
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
)

// ErrExternallyManagedMountPoint is returned by Unmount for /dev/fd/N mount
// points, which belong to whoever mounted them on our behalf.
var ErrExternallyManagedMountPoint = errors.New("externally managed mount point")

// Just for testing purposes to mock the actual unmount functions.
var (
	unmountFunc      = unix.Unmount
	fuserunmountMock = fuserunmount
)

// Unmount attempts to unmount the file system whose mount point is the
// supplied directory. It first calls umount2(2) directly, which requires
// privileges, and falls back to `fusermount -u` on EPERM.
//
// Unmounting makes reads from the file system's connection return io.EOF.
func Unmount(dir string) (err error) {
	err = unmountFunc(dir, 0)
	if err == nil {
		return
	}

	if !errors.Is(err, unix.EPERM) && !strings.HasPrefix(dir, "/dev/fd/") {
		err = fmt.Errorf("umount2: %w", err)
		return
	}

	err = unmount(dir)
	return
}

func unmount(dir string) error {
	err := fuserunmountMock(dir)
	if err != nil {
		// Return custom error for fusermount unmount error for /dev/fd/N mountpoints
		if strings.HasPrefix(dir, "/dev/fd/") {
			return fmt.Errorf("%w: %s", ErrExternallyManagedMountPoint, err)
		}
	}
	return err
}

// Find the fusermount binary, preferring the fuse3 name.
func findFusermount() (path string, err error) {
	for _, name := range []string{"fusermount3", "fusermount"} {
		if path, err = exec.LookPath(name); err == nil {
			return
		}
	}

	err = fmt.Errorf("LookPath(fusermount): %v", err)
	return
}

func fuserunmount(dir string) error {
	fusermount, err := findFusermount()
	if err != nil {
		return err
	}
	cmd := exec.Command(fusermount, "-u", dir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if len(output) > 0 {
			output = bytes.TrimRight(output, "\n")
			return fmt.Errorf("%v: %s", err, output)
		}

		return err
	}
	return nil
}
