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

// Exchange32 atomically stores v into *addr and returns the previous value.
// It is always followed by a full barrier.
func Exchange32[T Word32](addr *T, v T, order memorder.Order) T {
	old := atomic.SwapUint32((*uint32)(unsafe.Pointer(addr)), uint32(v))
	FullBarrier()
	return T(old)
}

// Exchange64 atomically stores v into *addr and returns the previous value.
// It is always followed by a full barrier.
func Exchange64[T Word64](addr *T, v T, order memorder.Order) T {
	old := atomic.SwapUint64((*uint64)(unsafe.Pointer(addr)), uint64(v))
	FullBarrier()
	return T(old)
}
