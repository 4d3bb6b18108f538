// Copyright 2026 The gVisor Authors.
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

package cmd

import (
	"fmt"

	"github.com/gofrs/flock"
)

// lockRun takes the run lock at path without waiting. An empty path means
// no locking. The returned function releases the lock.
func lockRun(path string) (func() error, error) {
	if path == "" {
		return func() error { return nil }, nil
	}
	l := flock.NewFlock(path)
	ok, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("error acquiring lock on %q: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("another run holds the lock on %q", path)
	}
	return l.Unlock, nil
}
