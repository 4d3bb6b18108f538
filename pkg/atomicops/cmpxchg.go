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

package atomicops

import (
	"sync/atomic"
	"unsafe"

	"gvisor.dev/riscvatomic/pkg/memorder"
)

// CompareAndExchange32 atomically replaces *addr with desired if it equals
// expected. It returns the value observed at addr, which is expected exactly
// when the store happened. It never fails spuriously.
//
// Unless order is memorder.Relaxed, the operation is surrounded by full
// barriers.
func CompareAndExchange32[T Word32](addr *T, expected, desired T, order memorder.Order) T {
	fenceBefore(order)
	v := cas32((*uint32)(unsafe.Pointer(addr)), uint32(expected), uint32(desired))
	fenceAfter(order)
	return T(v)
}

// CompareAndExchange64 is CompareAndExchange32 for 8-byte operands.
func CompareAndExchange64[T Word64](addr *T, expected, desired T, order memorder.Order) T {
	fenceBefore(order)
	v := cas64((*uint64)(unsafe.Pointer(addr)), uint64(expected), uint64(desired))
	fenceAfter(order)
	return T(v)
}

// cas64 is a strong compare-and-exchange returning the observed value. The
// barriers around it provide the ordering; the swap itself only needs to be
// atomic.
func cas64(addr *uint64, old, new uint64) uint64 {
	for {
		prev := atomic.LoadUint64(addr)
		if prev != old {
			return prev
		}
		if atomic.CompareAndSwapUint64(addr, old, new) {
			return old
		}
	}
}

// Backend returns the name of the compiled implementation: "riscv64" for
// the assembly backend, "portable" otherwise.
func Backend() string {
	return backend
}
