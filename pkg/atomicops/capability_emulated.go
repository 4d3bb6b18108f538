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

// FullCompilerAtomicSupport reports whether the toolchain's atomic
// intrinsics are trusted for every operand width, sub-word included.
//
// This toolchain is not: 1-byte compare-and-exchange uses the manual
// reservation loop, and sub-word add and exchange are not provided.
const FullCompilerAtomicSupport = false
