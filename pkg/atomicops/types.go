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
	"gvisor.dev/riscvatomic/pkg/sync"
)

// Int32 is an atomic int32 whose read-modify-write operations take a
// memory ordering.
//
// The default value is zero.
type Int32 struct {
	_     sync.NoCopy
	value int32
}

// FromInt32 returns an Int32 initialized to value v.
//
//go:nosplit
func FromInt32(v int32) Int32 {
	return Int32{value: v}
}

// Load is analogous to atomic.LoadInt32.
//
//go:nosplit
func (i *Int32) Load() int32 {
	return atomic.LoadInt32(&i.value)
}

// RacyLoad reads the value without synchronization.
//
//go:nosplit
func (i *Int32) RacyLoad() int32 {
	return i.value
}

// Store is analogous to atomic.StoreInt32.
//
//go:nosplit
func (i *Int32) Store(v int32) {
	atomic.StoreInt32(&i.value, v)
}

// Add adds v and returns the new value.
func (i *Int32) Add(v int32, order memorder.Order) int32 {
	return AddAndFetch32(&i.value, v, order)
}

// Swap stores v and returns the previous value.
func (i *Int32) Swap(v int32, order memorder.Order) int32 {
	return Exchange32(&i.value, v, order)
}

// CompareAndExchange is analogous to CompareAndExchange32.
func (i *Int32) CompareAndExchange(expected, desired int32, order memorder.Order) int32 {
	return CompareAndExchange32(&i.value, expected, desired, order)
}

// CompareAndSwap reports whether desired was stored.
func (i *Int32) CompareAndSwap(expected, desired int32, order memorder.Order) bool {
	return i.CompareAndExchange(expected, desired, order) == expected
}

// Uint32 is an atomic uint32 whose read-modify-write operations take a
// memory ordering.
//
// The default value is zero.
type Uint32 struct {
	_     sync.NoCopy
	value uint32
}

// FromUint32 returns a Uint32 initialized to value v.
//
//go:nosplit
func FromUint32(v uint32) Uint32 {
	return Uint32{value: v}
}

// Load is analogous to atomic.LoadUint32.
//
//go:nosplit
func (u *Uint32) Load() uint32 {
	return atomic.LoadUint32(&u.value)
}

// RacyLoad reads the value without synchronization.
//
//go:nosplit
func (u *Uint32) RacyLoad() uint32 {
	return u.value
}

// Store is analogous to atomic.StoreUint32.
//
//go:nosplit
func (u *Uint32) Store(v uint32) {
	atomic.StoreUint32(&u.value, v)
}

// Add adds v and returns the new value.
func (u *Uint32) Add(v uint32, order memorder.Order) uint32 {
	return AddAndFetch32(&u.value, v, order)
}

// Swap stores v and returns the previous value.
func (u *Uint32) Swap(v uint32, order memorder.Order) uint32 {
	return Exchange32(&u.value, v, order)
}

// CompareAndExchange is analogous to CompareAndExchange32.
func (u *Uint32) CompareAndExchange(expected, desired uint32, order memorder.Order) uint32 {
	return CompareAndExchange32(&u.value, expected, desired, order)
}

// CompareAndSwap reports whether desired was stored.
func (u *Uint32) CompareAndSwap(expected, desired uint32, order memorder.Order) bool {
	return u.CompareAndExchange(expected, desired, order) == expected
}

// Int64 is an atomic int64 that is 64-bit aligned even on 32-bit hosts.
//
// The default value is zero.
type Int64 struct {
	_     sync.NoCopy
	_     [0]atomic.Int64
	value int64
}

// FromInt64 returns an Int64 initialized to value v.
//
//go:nosplit
func FromInt64(v int64) Int64 {
	return Int64{value: v}
}

// Load is analogous to atomic.LoadInt64.
//
//go:nosplit
func (i *Int64) Load() int64 {
	return atomic.LoadInt64(&i.value)
}

// RacyLoad reads the value without synchronization.
//
//go:nosplit
func (i *Int64) RacyLoad() int64 {
	return i.value
}

// Store is analogous to atomic.StoreInt64.
//
//go:nosplit
func (i *Int64) Store(v int64) {
	atomic.StoreInt64(&i.value, v)
}

// Add adds v and returns the new value.
func (i *Int64) Add(v int64, order memorder.Order) int64 {
	return AddAndFetch64(&i.value, v, order)
}

// Swap stores v and returns the previous value.
func (i *Int64) Swap(v int64, order memorder.Order) int64 {
	return Exchange64(&i.value, v, order)
}

// CompareAndExchange is analogous to CompareAndExchange64.
func (i *Int64) CompareAndExchange(expected, desired int64, order memorder.Order) int64 {
	return CompareAndExchange64(&i.value, expected, desired, order)
}

// CompareAndSwap reports whether desired was stored.
func (i *Int64) CompareAndSwap(expected, desired int64, order memorder.Order) bool {
	return i.CompareAndExchange(expected, desired, order) == expected
}

// Uint64 is an atomic uint64 that is 64-bit aligned even on 32-bit hosts.
//
// The default value is zero.
type Uint64 struct {
	_     sync.NoCopy
	_     [0]atomic.Uint64
	value uint64
}

// FromUint64 returns a Uint64 initialized to value v.
//
//go:nosplit
func FromUint64(v uint64) Uint64 {
	return Uint64{value: v}
}

// Load is analogous to atomic.LoadUint64.
//
//go:nosplit
func (u *Uint64) Load() uint64 {
	return atomic.LoadUint64(&u.value)
}

// RacyLoad reads the value without synchronization.
//
//go:nosplit
func (u *Uint64) RacyLoad() uint64 {
	return u.value
}

// Store is analogous to atomic.StoreUint64.
//
//go:nosplit
func (u *Uint64) Store(v uint64) {
	atomic.StoreUint64(&u.value, v)
}

// Add adds v and returns the new value.
func (u *Uint64) Add(v uint64, order memorder.Order) uint64 {
	return AddAndFetch64(&u.value, v, order)
}

// Swap stores v and returns the previous value.
func (u *Uint64) Swap(v uint64, order memorder.Order) uint64 {
	return Exchange64(&u.value, v, order)
}

// CompareAndExchange is analogous to CompareAndExchange64.
func (u *Uint64) CompareAndExchange(expected, desired uint64, order memorder.Order) uint64 {
	return CompareAndExchange64(&u.value, expected, desired, order)
}

// CompareAndSwap reports whether desired was stored.
func (u *Uint64) CompareAndSwap(expected, desired uint64, order memorder.Order) bool {
	return u.CompareAndExchange(expected, desired, order) == expected
}

// Uint8 is an atomic byte.
//
// It occupies a whole aligned word, of which it uses the lowest-addressed
// byte, so that the word touched by sub-word operations is always its own.
//
// The default value is zero.
type Uint8 struct {
	_    sync.NoCopy
	word uint32
}

// FromUint8 returns a Uint8 initialized to value v.
func FromUint8(v uint8) Uint8 {
	var w uint32
	*(*uint8)(unsafe.Pointer(&w)) = v
	return Uint8{word: w}
}

//go:nosplit
func (u *Uint8) ptr() *uint8 {
	return (*uint8)(unsafe.Pointer(&u.word))
}

// Load atomically reads the byte.
//
//go:nosplit
func (u *Uint8) Load() uint8 {
	return loadLane(laneOf(unsafe.Pointer(u.ptr())))
}

// Store atomically writes the byte.
func (u *Uint8) Store(v uint8) {
	for {
		cur := u.Load()
		if CompareAndExchange8(u.ptr(), cur, v, memorder.Relaxed) == cur {
			return
		}
	}
}

// CompareAndExchange is analogous to CompareAndExchange8.
func (u *Uint8) CompareAndExchange(expected, desired uint8, order memorder.Order) uint8 {
	return CompareAndExchange8(u.ptr(), expected, desired, order)
}

// CompareAndSwap reports whether desired was stored.
func (u *Uint8) CompareAndSwap(expected, desired uint8, order memorder.Order) bool {
	return u.CompareAndExchange(expected, desired, order) == expected
}
