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

// Package atomicops implements fetch-and-add, exchange and
// compare-and-exchange over 1, 4 and 8 byte operands, each taking a requested
// memory ordering. It is the riscv64 backend of a runtime's atomic layer:
// higher level synchronization (locks, reference counts, safepoint polls) is
// built on top of it.
//
// Add and exchange always finish with a full barrier, whatever ordering was
// requested. Compare-and-exchange is surrounded by full barriers unless the
// ordering is memorder.Relaxed.
//
// Operand widths are enforced at compile time through type sets. Sub-word
// add and exchange only exist when FullCompilerAtomicSupport is true.
package atomicops

import (
	"gvisor.dev/riscvatomic/pkg/memorder"
)

// Word8 is the set of 1-byte operand types.
type Word8 interface {
	~int8 | ~uint8
}

// Word32 is the set of 4-byte operand types.
type Word32 interface {
	~int32 | ~uint32
}

// Word64 is the set of 8-byte operand types.
type Word64 interface {
	~int64 | ~uint64
}

// fenceBefore issues the leading half of the barrier sandwich used by
// compare-and-exchange.
//
//go:nosplit
func fenceBefore(order memorder.Order) {
	if !order.IsRelaxed() {
		FullBarrier()
	}
}

// fenceAfter issues the trailing half of the barrier sandwich.
//
//go:nosplit
func fenceAfter(order memorder.Order) {
	if !order.IsRelaxed() {
		FullBarrier()
	}
}
