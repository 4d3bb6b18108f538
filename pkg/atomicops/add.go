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

// The release-ordered add of the hardware does not keep later loads from
// being satisfied before the write, which conservative ordering requires.
// Every add is therefore followed by a full barrier, whatever the requested
// ordering; relaxed requests pay for it too.

// AddAndFetch32 atomically adds delta to *addr and returns the new value.
func AddAndFetch32[T Word32](addr *T, delta T, order memorder.Order) T {
	v := atomic.AddUint32((*uint32)(unsafe.Pointer(addr)), uint32(delta))
	FullBarrier()
	return T(v)
}

// FetchAndAdd32 atomically adds delta to *addr and returns the old value.
func FetchAndAdd32[T Word32](addr *T, delta T, order memorder.Order) T {
	return AddAndFetch32(addr, delta, order) - delta
}

// SubAndFetch32 atomically subtracts delta from *addr and returns the new
// value.
func SubAndFetch32[T Word32](addr *T, delta T, order memorder.Order) T {
	return AddAndFetch32(addr, ^delta+1, order)
}

// AddAndFetch64 atomically adds delta to *addr and returns the new value.
func AddAndFetch64[T Word64](addr *T, delta T, order memorder.Order) T {
	v := atomic.AddUint64((*uint64)(unsafe.Pointer(addr)), uint64(delta))
	FullBarrier()
	return T(v)
}

// FetchAndAdd64 atomically adds delta to *addr and returns the old value.
func FetchAndAdd64[T Word64](addr *T, delta T, order memorder.Order) T {
	return AddAndFetch64(addr, delta, order) - delta
}

// SubAndFetch64 atomically subtracts delta from *addr and returns the new
// value.
func SubAndFetch64[T Word64](addr *T, delta T, order memorder.Order) T {
	return AddAndFetch64(addr, ^delta+1, order)
}
