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

//go:build gc && go1.19 && !atomicops_emulate_subword
// +build gc,go1.19,!atomicops_emulate_subword

package atomicops

import "gvisor.dev/riscvatomic/pkg/memorder"

// Add adds v and returns the new value.
func (u *Uint8) Add(v uint8, order memorder.Order) uint8 {
	return AddAndFetch8(u.ptr(), v, order)
}

// Swap stores v and returns the previous value.
func (u *Uint8) Swap(v uint8, order memorder.Order) uint8 {
	return Exchange8(u.ptr(), v, order)
}
