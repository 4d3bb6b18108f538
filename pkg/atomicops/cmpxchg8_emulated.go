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

//go:build !gc || !go1.19 || atomicops_emulate_subword
// +build !gc !go1.19 atomicops_emulate_subword

package atomicops

import (
	"unsafe"

	"gvisor.dev/riscvatomic/pkg/memorder"
)

// CompareAndExchange8 atomically replaces the byte at addr with desired if it
// equals expected, and returns the byte observed. Neighboring bytes of the
// same aligned word are never disturbed. The aligned word containing addr
// must belong to the same allocation.
//
// This toolchain's intrinsics are not trusted below word size, so the byte is
// updated by a masked reservation loop on the containing word.
//
// Unless order is memorder.Relaxed, the operation is surrounded by full
// barriers.
func CompareAndExchange8[T Word8](addr *T, expected, desired T, order memorder.Order) T {
	fenceBefore(order)
	v := cas8((*uint8)(unsafe.Pointer(addr)), uint8(expected), uint8(desired))
	fenceAfter(order)
	return T(v)
}
