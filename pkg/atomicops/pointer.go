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

// ptrSize is the width of uintptr, a compile-time constant.
const ptrSize = unsafe.Sizeof(uintptr(0))

// AddAndFetchUintptr atomically adds delta to *addr and returns the new
// value. It is always followed by a full barrier.
//
//go:nosplit
func AddAndFetchUintptr(addr *uintptr, delta uintptr, order memorder.Order) uintptr {
	v := atomic.AddUintptr(addr, delta)
	FullBarrier()
	return v
}

// FetchAndAddUintptr atomically adds delta to *addr and returns the old
// value.
//
//go:nosplit
func FetchAndAddUintptr(addr *uintptr, delta uintptr, order memorder.Order) uintptr {
	return AddAndFetchUintptr(addr, delta, order) - delta
}

// ExchangeUintptr atomically stores v into *addr and returns the previous
// value. It is always followed by a full barrier.
//
//go:nosplit
func ExchangeUintptr(addr *uintptr, v uintptr, order memorder.Order) uintptr {
	old := atomic.SwapUintptr(addr, v)
	FullBarrier()
	return old
}

// CompareAndExchangeUintptr is CompareAndExchange32 or CompareAndExchange64,
// depending on the width of uintptr.
func CompareAndExchangeUintptr(addr *uintptr, expected, desired uintptr, order memorder.Order) uintptr {
	fenceBefore(order)
	var v uintptr
	if ptrSize == 4 {
		v = uintptr(cas32((*uint32)(unsafe.Pointer(addr)), uint32(expected), uint32(desired)))
	} else {
		v = uintptr(cas64((*uint64)(unsafe.Pointer(addr)), uint64(expected), uint64(desired)))
	}
	fenceAfter(order)
	return v
}

// ExchangePointer atomically stores v into *addr and returns the previous
// pointer. It is always followed by a full barrier.
//
// Pointers go through sync/atomic so that the garbage collector's write
// barrier sees them.
func ExchangePointer(addr *unsafe.Pointer, v unsafe.Pointer, order memorder.Order) unsafe.Pointer {
	old := atomic.SwapPointer(addr, v)
	FullBarrier()
	return old
}

// CompareAndExchangePointer replaces *addr with desired if it equals
// expected, and returns the pointer observed.
func CompareAndExchangePointer(addr *unsafe.Pointer, expected, desired unsafe.Pointer, order memorder.Order) unsafe.Pointer {
	fenceBefore(order)
	defer fenceAfter(order)
	for {
		prev := atomic.LoadPointer(addr)
		if prev != expected {
			return prev
		}
		if atomic.CompareAndSwapPointer(addr, expected, desired) {
			return expected
		}
	}
}
