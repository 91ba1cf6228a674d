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

// A tool that mounts an empty file system directly with mount(2), answers
// the INIT exchange, and then fails every request with ENOSYS until the file
// system is unmounted. Useful for seeing what the kernel sends with a given
// set of options. Must be run with CAP_SYS_ADMIN.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/jacobsa/rawfuse"
	"github.com/jacobsa/rawfuse/fusekernel"
	"golang.org/x/net/context"
)

var fMountPoint = flag.String("mount_point", "", "Path to mount point.")
var fFsName = flag.String("fsname", "rawfuse", "File system name shown in /proc/mounts.")
var fSubtype = flag.String("subtype", "", "File system subtype, if any.")
var fReadOnly = flag.Bool("read_only", false, "Mount read-only.")
var fAllowOther = flag.Bool("allow_other", false, "Allow other users to access the file system.")
var fMaxRead = flag.Uint("max_read", 0, "If non-zero, the largest READ the kernel may send.")

func main() {
	flag.Parse()

	if *fMountPoint == "" {
		log.Fatalf("You must set --mount_point.")
	}

	b, err := rawfuse.NewMountBuilder(*fMountPoint, *fFsName)
	if err != nil {
		log.Fatalf("NewMountBuilder: %v", err)
	}

	if *fSubtype != "" {
		if _, err = b.Subtype(*fSubtype); err != nil {
			log.Fatalf("Subtype: %v", err)
		}
	}

	b.ReadOnly(*fReadOnly).
		AllowOther(*fAllowOther).
		DefaultPermissions(true).
		Nodev(true).
		Nosuid(true).
		DebugLogger(log.New(os.Stderr, "fuse: ", log.Ltime|log.Lmicroseconds)).
		ErrorLogger(log.New(os.Stderr, "fuse: ", log.Ltime|log.Lmicroseconds))

	if *fMaxRead != 0 {
		b.MaxRead(uint32(*fMaxRead))
	}

	mfs, err := rawfuse.Mount(context.Background(), b)
	if err != nil {
		log.Fatalf("Mount: %v", err)
	}

	defer mfs.Close()

	conn := mfs.Connection()
	if _, err = conn.Init(nil); err != nil {
		log.Fatalf("Init: %v", err)
	}

	// Serve until unmounted.
	for {
		op, err := conn.ReadOp(context.Background())
		if err == io.EOF {
			return
		}

		if err != nil {
			log.Fatalf("ReadOp: %v", err)
		}

		switch op.Request.Header.Opcode {
		// Tools like df and mount want an answer here.
		case fusekernel.OpStatfs:
			err = op.Respond(nil, &fusekernel.StatfsOut{})

		default:
			err = op.RespondErr(rawfuse.ENOSYS)
		}

		if err != nil {
			log.Fatalf("Respond: %v", err)
		}
	}
}
