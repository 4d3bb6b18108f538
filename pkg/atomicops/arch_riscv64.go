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

//go:build riscv64 && gc && !purego
// +build riscv64,gc,!purego

package atomicops

const backend = "riscv64"

// FullBarrier orders all memory accesses before it with all accesses after
// it (fence rw,rw).
func FullBarrier()

// AcquireBarrier orders prior loads before all later accesses (fence r,rw).
func AcquireBarrier()

// ReleaseBarrier orders all prior accesses before later stores
// (fence rw,w).
func ReleaseBarrier()

// cas32 is a strong compare-and-exchange built from LR.W and SC.W. It
// returns the value observed at addr.
//
//go:noescape
func cas32(addr *uint32, old, new uint32) uint32

// cas8 is a strong compare-and-exchange of the byte at addr, performed with
// LR.W and SC.W on the aligned word containing it. It returns the byte
// observed at addr.
//
//go:noescape
func cas8(addr *uint8, old, new uint8) uint8
