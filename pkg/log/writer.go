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

package log

import (
	"fmt"
	"io"

	"gvisor.dev/riscvatomic/pkg/sync"
)

// Writer writes the output to the given writer. If a write fails, the
// message is dropped and a notice with the number of dropped messages is
// written ahead of the next successful message.
type Writer struct {
	// Next is where output is written.
	Next io.Writer

	// mu protects fields below.
	mu sync.Mutex

	// dropped is the number of messages dropped since the last notice.
	dropped int
}

// Write implements io.Writer.Write.
func (w *Writer) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dropped > 0 {
		notice := fmt.Sprintf("\n*** Dropped %d log messages ***\n", w.dropped)
		if _, err := w.Next.Write([]byte(notice)); err != nil {
			w.dropped++
			return 0, err
		}
		w.dropped = 0
	}

	n, err := w.Next.Write(data)
	if err != nil {
		w.dropped++
		return n, err
	}
	return n, nil
}
