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

// Package fusetesting contains helpers shared by the tests of the other
// packages: matchers, a fake fuse device, and a way to build the frames the
// kernel would send.
package fusetesting

import (
	"errors"
	"fmt"
	"reflect"
	"syscall"

	"github.com/jacobsa/oglematchers"
)

// Match byte slices (or arrays of bytes) containing only zeroes.
func AllZero() oglematchers.Matcher {
	return oglematchers.NewMatcher(allZero, "all zero")
}

func allZero(c interface{}) error {
	v := reflect.ValueOf(c)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array ||
		v.Type().Elem().Kind() != reflect.Uint8 {
		return fmt.Errorf("which is of type %v", reflect.TypeOf(c))
	}

	for i := 0; i < v.Len(); i++ {
		if v.Index(i).Uint() != 0 {
			return fmt.Errorf("which has %#x at offset %d", v.Index(i).Uint(), i)
		}
	}

	return nil
}

// Match errors e for which errors.Is(e, target).
func IsErr(target error) oglematchers.Matcher {
	return oglematchers.NewMatcher(
		func(c interface{}) error { return isErr(c, target) },
		fmt.Sprintf("error wrapping %q", target))
}

func isErr(c interface{}, target error) error {
	err, ok := c.(error)
	if !ok {
		return fmt.Errorf("which is of type %v", reflect.TypeOf(c))
	}

	if !errors.Is(err, target) {
		return fmt.Errorf("which is %q", err)
	}

	return nil
}

// Match reply frames whose header is well formed (its length field equal to
// the frame's length) and carries the given unique ID and errno.
func ReplyTo(unique uint64, errno syscall.Errno) oglematchers.Matcher {
	return oglematchers.NewMatcher(
		func(c interface{}) error { return replyTo(c, unique, errno) },
		fmt.Sprintf("reply to %d with errno %d", unique, errno))
}

func replyTo(c interface{}, unique uint64, errno syscall.Errno) error {
	frame, ok := c.([]byte)
	if !ok {
		return fmt.Errorf("which is of type %v", reflect.TypeOf(c))
	}

	h, _, err := ParseReply(frame)
	if err != nil {
		return fmt.Errorf("which %v", err)
	}

	if h.Unique != unique {
		return fmt.Errorf("which answers %d", h.Unique)
	}

	if h.Error != -int32(errno) {
		return fmt.Errorf("which has error %d", h.Error)
	}

	return nil
}
