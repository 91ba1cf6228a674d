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
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jacobsa/rawfuse/buffer"
	"github.com/jacobsa/rawfuse/internal/flagset"
	"golang.org/x/sys/unix"
)

////////////////////////////////////////////////////////////////////////
// Mount flags
////////////////////////////////////////////////////////////////////////

// MountFlags is the flags word handed to mount(2). Its bits are the kernel's
// MS_* bits.
type MountFlags uint64

const (
	MountDirsync     MountFlags = unix.MS_DIRSYNC
	MountNoatime     MountFlags = unix.MS_NOATIME
	MountNodev       MountFlags = unix.MS_NODEV
	MountNodiratime  MountFlags = unix.MS_NODIRATIME
	MountNoexec      MountFlags = unix.MS_NOEXEC
	MountNosuid      MountFlags = unix.MS_NOSUID
	MountReadOnly    MountFlags = unix.MS_RDONLY
	MountSynchronous MountFlags = unix.MS_SYNCHRONOUS
)

var mountFlagsNames = []flagset.Name[MountFlags]{
	{Bit: MountReadOnly, Name: "MS_RDONLY"},
	{Bit: MountNosuid, Name: "MS_NOSUID"},
	{Bit: MountNodev, Name: "MS_NODEV"},
	{Bit: MountNoexec, Name: "MS_NOEXEC"},
	{Bit: MountSynchronous, Name: "MS_SYNCHRONOUS"},
	{Bit: MountDirsync, Name: "MS_DIRSYNC"},
	{Bit: MountNoatime, Name: "MS_NOATIME"},
	{Bit: MountNodiratime, Name: "MS_NODIRATIME"},
}

func (fl MountFlags) String() string { return flagset.Format(fl, mountFlagsNames) }

////////////////////////////////////////////////////////////////////////
// Mount options
////////////////////////////////////////////////////////////////////////

// MountOptions is everything needed to call mount(2), as produced by
// MountBuilder.Build.
type MountOptions struct {
	// The mount point as given to NewMountBuilder.
	Dir string

	// The arguments to mount(2). The file system type is always "fuse".
	Source  string
	Target  string
	Flags   MountFlags
	Options string
}

func (o *MountOptions) String() string {
	return fmt.Sprintf(
		"mount(%q, %q, \"fuse\", %v, %q)",
		o.Source,
		o.Target,
		o.Flags,
		o.Options)
}

////////////////////////////////////////////////////////////////////////
// Builder
////////////////////////////////////////////////////////////////////////

// MountBuilder accumulates the configuration for one mount. Create one with
// NewMountBuilder, configure it, then either pass it to Mount or call Build
// yourself. Build may succeed only once.
//
// The flag setters each toggle a single bit of the mount flags word, so they
// may be called in any order and any number of times. They return the
// builder to allow chaining:
//
//     b.Nodev(true).Nosuid(true).ReadOnly(readOnly)
//
// A MountBuilder must not be used concurrently.
type MountBuilder struct {
	dir    string
	fsName string

	subtype            string
	rootMode           uint32
	haveRootMode       bool
	defaultPermissions bool
	allowOther         bool
	maxRead            uint32
	haveMaxRead        bool

	flags MountFlags

	debugLogger     *log.Logger
	errorLogger     *log.Logger
	messageProvider buffer.MessageProvider

	consumed bool
}

// NewMountBuilder creates a builder for mounting a file system labelled
// fsName (the "device" column of /proc/mounts) on dir.
func NewMountBuilder(dir string, fsName string) (b *MountBuilder, err error) {
	if strings.IndexByte(dir, 0) >= 0 {
		err = &ConfigError{Field: "mount point", Value: dir, Reason: "contains a NUL byte"}
		return
	}

	if err = checkLabel("fsname", fsName); err != nil {
		return
	}

	b = &MountBuilder{
		dir:    dir,
		fsName: fsName,
	}

	return
}

// Labels end up inside a NUL-terminated, comma-separated options string.
func checkLabel(field string, v string) error {
	switch {
	case v == "":
		return &ConfigError{Field: field, Value: v, Reason: "must not be empty"}

	case strings.IndexByte(v, 0) >= 0:
		return &ConfigError{Field: field, Value: v, Reason: "contains a NUL byte"}

	case strings.IndexByte(v, ',') >= 0:
		return &ConfigError{Field: field, Value: v, Reason: "contains a comma"}
	}

	return nil
}

// Subtype sets the file system subtype, shown by the kernel as
// "fuse.<subtype>". Unlike the other setters it validates its argument, so it
// returns an error alongside the builder; on error the builder is unchanged.
func (b *MountBuilder) Subtype(subtype string) (*MountBuilder, error) {
	if err := checkLabel("subtype", subtype); err != nil {
		return b, err
	}

	b.subtype = subtype
	return b, nil
}

// RootMode overrides the mode reported for the root inode. By default it is
// the mode of the mount point itself, including its file type bits.
func (b *MountBuilder) RootMode(mode uint32) *MountBuilder {
	b.rootMode = mode
	b.haveRootMode = true
	return b
}

// DefaultPermissions asks the kernel to do its own permission checking based
// on the modes and owners the file system reports.
func (b *MountBuilder) DefaultPermissions(enable bool) *MountBuilder {
	b.defaultPermissions = enable
	return b
}

// AllowOther allows users other than the one mounting the file system to
// access it. Requires privileges or user_allow_other in /etc/fuse.conf.
func (b *MountBuilder) AllowOther(enable bool) *MountBuilder {
	b.allowOther = enable
	return b
}

// MaxRead limits the size of READ requests.
func (b *MountBuilder) MaxRead(n uint32) *MountBuilder {
	b.maxRead = n
	b.haveMaxRead = true
	return b
}

// MaxReadUnlimited undoes MaxRead.
func (b *MountBuilder) MaxReadUnlimited() *MountBuilder {
	b.maxRead = 0
	b.haveMaxRead = false
	return b
}

func (b *MountBuilder) setFlag(bit MountFlags, on bool) *MountBuilder {
	b.flags = flagset.Set(b.flags, bit, on)
	return b
}

func (b *MountBuilder) Dirsync(on bool) *MountBuilder { return b.setFlag(MountDirsync, on) }
func (b *MountBuilder) Noatime(on bool) *MountBuilder { return b.setFlag(MountNoatime, on) }
func (b *MountBuilder) Nodev(on bool) *MountBuilder { return b.setFlag(MountNodev, on) }
func (b *MountBuilder) Nodiratime(on bool) *MountBuilder { return b.setFlag(MountNodiratime, on) }
func (b *MountBuilder) Noexec(on bool) *MountBuilder { return b.setFlag(MountNoexec, on) }
func (b *MountBuilder) Nosuid(on bool) *MountBuilder { return b.setFlag(MountNosuid, on) }
func (b *MountBuilder) ReadOnly(on bool) *MountBuilder { return b.setFlag(MountReadOnly, on) }
func (b *MountBuilder) Synchronous(on bool) *MountBuilder { return b.setFlag(MountSynchronous, on) }

// Flags returns the mount flags word configured so far.
func (b *MountBuilder) Flags() MountFlags {
	return b.flags
}

// DebugLogger sets a logger for debug output. If nil, output is controlled
// by the --fuse.debug flag.
func (b *MountBuilder) DebugLogger(l *log.Logger) *MountBuilder {
	b.debugLogger = l
	return b
}

// ErrorLogger sets a logger for errors the caller never sees directly, such
// as requests that could not be decoded. If nil, they are not logged.
func (b *MountBuilder) ErrorLogger(l *log.Logger) *MountBuilder {
	b.errorLogger = l
	return b
}

// MessageProvider sets the source of message buffers for the connection.
// If nil, a buffer.DefaultMessageProvider is used.
func (b *MountBuilder) MessageProvider(p buffer.MessageProvider) *MountBuilder {
	b.messageProvider = p
	return b
}

// The parts of the process environment that Build consults.
type mountEnv struct {
	abs    func(string) (string, error)
	stat   func(string, *unix.Stat_t) error
	getuid func() int
	getgid func() int
}

var realMountEnv = mountEnv{
	abs:    filepath.Abs,
	stat:   unix.Stat,
	getuid: unix.Getuid,
	getgid: unix.Getgid,
}

// Build finalizes the configuration against the opened fuse device dev,
// whose descriptor is passed to the kernel. It consumes the builder: a
// second call returns ErrBuilderConsumed.
func (b *MountBuilder) Build(dev *os.File) (opts *MountOptions, err error) {
	opts, err = b.build(int(dev.Fd()), realMountEnv)
	return
}

func (b *MountBuilder) build(fd int, env mountEnv) (opts *MountOptions, err error) {
	if b.consumed {
		err = ErrBuilderConsumed
		return
	}

	target, err := env.abs(b.dir)
	if err != nil {
		err = fmt.Errorf("Abs: %v", err)
		return
	}

	rootMode := b.rootMode
	if !b.haveRootMode {
		var st unix.Stat_t
		if err = env.stat(target, &st); err != nil {
			err = &os.PathError{Op: "stat", Path: target, Err: err}
			return
		}

		rootMode = st.Mode
	}

	// Order matters only to readers of /proc/mounts and to tests.
	var sb strings.Builder
	fmt.Fprintf(
		&sb,
		"fd=%d,rootmode=%o,user_id=%d,group_id=%d,fsname=%s",
		fd,
		rootMode,
		env.getuid(),
		env.getgid(),
		b.fsName)

	if b.subtype != "" {
		fmt.Fprintf(&sb, ",subtype=%s", b.subtype)
	}

	if b.defaultPermissions {
		sb.WriteString(",default_permissions")
	}

	if b.allowOther {
		sb.WriteString(",allow_other")
	}

	if b.haveMaxRead {
		fmt.Fprintf(&sb, ",max_read=%d", b.maxRead)
	}

	opts = &MountOptions{
		Dir:     b.dir,
		Source:  b.fsName,
		Target:  target,
		Flags:   b.flags,
		Options: sb.String(),
	}

	b.consumed = true
	return
}
