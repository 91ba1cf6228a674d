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
	"io/ioutil"
	"os"
	"path"
	"testing"

	"golang.org/x/net/context"
	"golang.org/x/sys/unix"

	. "github.com/jacobsa/oglematchers"
	. "github.com/jacobsa/ogletest"
)

func Test_parseFuseFd(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		fd, err := parseFuseFd("/dev/fd/42")
		if fd != 42 {
			t.Errorf("expected 42, got %d", fd)
		}
		if err != nil {
			t.Errorf("expected no error, got %#v", err)
		}
	})

	t.Run("negative", func(t *testing.T) {
		fd, err := parseFuseFd("/dev/fd/-42")
		if fd != -1 {
			t.Errorf("expected an invalid fd, got %d", fd)
		}
		if err == nil {
			t.Errorf("expected an error, nil")
		}
	})

	t.Run("not an int", func(t *testing.T) {
		fd, err := parseFuseFd("/dev/fd/3.14159")
		if fd != -1 {
			t.Errorf("expected an invalid fd, got %d", fd)
		}

		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Errorf("expected a *ConfigError, got %#v", err)
		}
	})
}

func TestMount(t *testing.T) { RunTests(t) }

////////////////////////////////////////////////////////////////////////
// Boilerplate
////////////////////////////////////////////////////////////////////////

type mountCall struct {
	source  string
	target  string
	fstype  string
	flags   uintptr
	options string
}

type MountTest struct {
	ctx context.Context
	dir string

	// The file handed out by openDevice, if any.
	dev *os.File

	// Calls to mountFunc, and what it returns.
	calls    []mountCall
	mountErr error

	oldDevicePath string
	oldOpenDevice func(string) (*os.File, error)
	oldMountFunc  func(string, string, string, uintptr, string) error
}

func init() { RegisterTestSuite(&MountTest{}) }

func (t *MountTest) SetUp(ti *TestInfo) {
	var err error

	t.ctx = context.Background()
	t.dir, err = ioutil.TempDir("", "mount_test")
	AssertEq(nil, err)

	t.oldDevicePath = devicePath
	t.oldOpenDevice = openDevice
	t.oldMountFunc = mountFunc

	openDevice = func(string) (f *os.File, err error) {
		f, err = ioutil.TempFile("", "fake_fuse_device")
		if err != nil {
			return
		}

		os.Remove(f.Name())
		t.dev = f
		return
	}

	mountFunc = func(
		source string,
		target string,
		fstype string,
		flags uintptr,
		options string) error {
		t.calls = append(t.calls, mountCall{source, target, fstype, flags, options})
		return t.mountErr
	}
}

func (t *MountTest) TearDown() {
	devicePath = t.oldDevicePath
	openDevice = t.oldOpenDevice
	mountFunc = t.oldMountFunc

	if t.dev != nil {
		t.dev.Close()
	}

	os.RemoveAll(t.dir)
}

func (t *MountTest) newBuilder() *MountBuilder {
	b, err := NewMountBuilder(t.dir, "myfs")
	AssertEq(nil, err)
	return b
}

// Whether f has been closed.
func isClosed(f *os.File) bool {
	_, err := f.Write([]byte("x"))
	return errors.Is(err, os.ErrClosed)
}

////////////////////////////////////////////////////////////////////////
// Tests
////////////////////////////////////////////////////////////////////////

func (t *MountTest) DeviceMissing() {
	openDevice = t.oldOpenDevice
	devicePath = path.Join(t.dir, "no_such_device")

	_, err := Mount(t.ctx, t.newBuilder())

	var dnf *DeviceNotFoundError
	AssertTrue(errors.As(err, &dnf), "err: %v", err)
	ExpectEq(devicePath, dnf.Path)
	ExpectTrue(errors.Is(err, os.ErrNotExist))
	ExpectThat(err, Error(HasSubstr("modprobe fuse")))

	ExpectEq(0, len(t.calls))
}

func (t *MountTest) DeviceUnopenable() {
	openDevice = func(string) (*os.File, error) {
		return nil, unix.EACCES
	}

	_, err := Mount(t.ctx, t.newBuilder())
	ExpectThat(err, Error(HasSubstr("OpenFile")))
	ExpectTrue(errors.Is(err, unix.EACCES))
}

func (t *MountTest) MountFails() {
	t.mountErr = unix.EPERM

	_, err := Mount(t.ctx, t.newBuilder())

	var me *MountError
	AssertTrue(errors.As(err, &me), "err: %v", err)
	ExpectEq(t.dir, me.Dir)
	ExpectTrue(errors.Is(err, unix.EPERM))

	AssertEq(1, len(t.calls))
	AssertNe(nil, t.dev)
	ExpectTrue(isClosed(t.dev))
}

func (t *MountTest) BuildFails() {
	b := t.newBuilder()
	_, err := b.build(3, realMountEnv)
	AssertEq(nil, err)

	_, err = Mount(t.ctx, b)
	ExpectTrue(errors.Is(err, ErrBuilderConsumed))
	ExpectEq(0, len(t.calls))

	AssertNe(nil, t.dev)
	ExpectTrue(isClosed(t.dev))
}

func (t *MountTest) Success() {
	b := t.newBuilder()
	b.ReadOnly(true).DefaultPermissions(true)

	mfs, err := Mount(t.ctx, b)
	AssertEq(nil, err)

	AssertEq(1, len(t.calls))
	c := t.calls[0]
	ExpectEq("myfs", c.source)
	ExpectEq(t.dir, c.target)
	ExpectEq("fuse", c.fstype)
	ExpectEq(unix.MS_RDONLY, c.flags)
	ExpectThat(c.options, HasSubstr(fmt.Sprintf("fd=%d,", t.dev.Fd())))
	ExpectThat(c.options, HasSubstr(",default_permissions"))

	ExpectEq(t.dir, mfs.Dir())
	ExpectNe(nil, mfs.Connection())
	ExpectFalse(isClosed(t.dev))

	// Close releases the device, and only once.
	ExpectEq(nil, mfs.Close())
	ExpectTrue(isClosed(t.dev))
	ExpectTrue(mfs.Connection() == nil)
	ExpectEq(nil, mfs.Close())
}

func (t *MountTest) BuilderIsConsumed() {
	b := t.newBuilder()

	_, err := Mount(t.ctx, b)
	AssertEq(nil, err)

	_, err = Mount(t.ctx, b)
	ExpectTrue(errors.Is(err, ErrBuilderConsumed), "err: %v", err)
}

func (t *MountTest) AdoptDescriptor() {
	f, err := ioutil.TempFile("", "adopted_fuse_device")
	AssertEq(nil, err)
	defer os.Remove(f.Name())

	fd, err := unix.Dup(int(f.Fd()))
	AssertEq(nil, err)
	f.Close()

	dir := fmt.Sprintf("/dev/fd/%d", fd)
	b, err := NewMountBuilder(dir, "myfs")
	AssertEq(nil, err)

	mfs, err := Mount(t.ctx, b)
	AssertEq(nil, err)

	ExpectEq(0, len(t.calls))
	ExpectEq(nil, t.dev)
	ExpectEq(dir, mfs.Dir())

	conn := mfs.Connection()
	AssertNe(nil, conn)
	ExpectEq(nil, conn.WriteMessage([]byte("taco")))
	ExpectEq(nil, mfs.Close())

	// A second attempt with the same builder is refused.
	_, err = Mount(t.ctx, b)
	ExpectEq(ErrBuilderConsumed, err)
}

func (t *MountTest) AdoptBadDescriptor() {
	b, err := NewMountBuilder("/dev/fd/taco", "myfs")
	AssertEq(nil, err)

	_, err = Mount(t.ctx, b)

	var ce *ConfigError
	ExpectTrue(errors.As(err, &ce), "err: %v", err)
	ExpectEq(0, len(t.calls))
}
