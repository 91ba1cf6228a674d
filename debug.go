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
	"flag"
	"io"
	"io/ioutil"
	"log"
	"os"
	"sync"
)

var fEnableDebug = flag.Bool(
	"fuse.debug",
	false,
	"Write FUSE debugging messages to stderr.")

var gLogger *log.Logger
var gLoggerOnce sync.Once

const logFlags = log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile

func initLogger() {
	var writer io.Writer = ioutil.Discard
	if flag.Parsed() && *fEnableDebug {
		writer = os.Stderr
	}

	gLogger = log.New(writer, "fuse: ", logFlags)
}

// Return the package-wide debug logger, controlled by --fuse.debug. If flags
// have not yet been parsed when this is first called, debug output is
// discarded for the life of the process.
func getLogger() *log.Logger {
	gLoggerOnce.Do(initLogger)
	return gLogger
}

// Choose the debug logger to use given the one the user supplied, if any.
func debugLoggerOrDefault(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}

	return getLogger()
}

// Like debugLoggerOrDefault, but error output is dropped unless the user
// asked for it.
func errorLoggerOrDefault(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}

	return log.New(ioutil.Discard, "", 0)
}
