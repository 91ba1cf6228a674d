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

// Package rawfuse mounts file systems by talking to the Linux fuse device
// directly, without libfuse or a fusermount helper. The primary elements of
// interest are:
//
//  *  MountBuilder, which accumulates mount options and flags and composes
//     the arguments to mount(2).
//
//  *  Mount, which opens /dev/fuse, mounts it, and returns a
//     MountedFileSystem owning the resulting Connection.
//
//  *  Connection, which reads requests and writes replies one frame at a
//     time, and performs the INIT exchange (see Negotiate).
//
// The wire format itself lives in package fusekernel, and the decoding and
// encoding of messages in package buffer. What to do with each request is
// up to the caller.
package rawfuse
