// Copyright (c) 2026 the xchg authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xchg

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

// headerSize is the size in bytes of the two index words a ring's
// backing buffer carries ahead of its data region: a read index
// followed by a write index, each a little-endian-native uint64.
const headerSize = 16

// ring is one direction of a [Channel]: a single-producer single-consumer
// byte-slot queue addressed in place inside a caller-supplied []byte.
// Layout: [read uint64][write uint64][data, a power-of-two multiple of
// slotSize]. Both sides publish their own index with a release store (the
// writer a filled slot, via [ring.commitWrite]; the reader a drained slot,
// via [ring.commitRead]) and refresh their view of the peer's index with
// an acquire load — the same cached-shadow-refresh structure as
// code.hybscloud.com/lfq's SPSC.
type ring struct {
	r, w     *atomix.Uint64
	data     []byte
	mask     uint64
	slotSize uint64

	cachedR uint64 // producer's cached view of the consumer's read index
	cachedW uint64 // consumer's cached view of the producer's write index
}

// newRing binds a ring to buf. buf must be headerSize + a power-of-two
// number of bytes, itself an exact multiple of slotSize.
func newRing(buf []byte, slotSize uint64) (*ring, error) {
	if len(buf) <= headerSize {
		return nil, ErrInvalidSize
	}
	dataLen := uint64(len(buf) - headerSize)
	if slotSize == 0 || dataLen%slotSize != 0 {
		return nil, ErrInvalidSize
	}
	if dataLen&(dataLen-1) != 0 {
		return nil, ErrInvalidSize
	}

	rg := &ring{
		r:        (*atomix.Uint64)(unsafe.Pointer(&buf[0])),
		w:        (*atomix.Uint64)(unsafe.Pointer(&buf[8])),
		data:     buf[headerSize:],
		mask:     dataLen - 1,
		slotSize: slotSize,
	}
	return rg, nil
}

// slots returns the ring's capacity in slots.
func (rg *ring) slots() uint64 {
	return (rg.mask + 1) / rg.slotSize
}

// freeSlot reports whether the ring has room for one more slot from the
// producer's perspective, refreshing the cached read index from the
// consumer's published value only if the stale view says no. Free space
// is cachedR + data-region size - write index. The refresh stores the
// published read index as is: unlike nr_free in the C reference, no
// data-region size is folded into cachedR.
func (rg *ring) freeSlot() bool {
	cw := rg.w.LoadRelaxed()
	free := rg.cachedR + rg.mask + 1 - cw
	if free < rg.slotSize {
		rg.cachedR = rg.r.LoadAcquire()
		free = rg.cachedR + rg.mask + 1 - cw
	}
	return free >= rg.slotSize
}

// usedSlot reports whether the ring has a full slot ready for the
// consumer, refreshing the cached write index from the producer's
// published value only if the stale view says no. Mirrors nr_used.
func (rg *ring) usedSlot() bool {
	cr := rg.r.LoadRelaxed()
	used := rg.cachedW - cr
	if used < rg.slotSize {
		rg.cachedW = rg.w.LoadAcquire()
		used = rg.cachedW - cr
	}
	return used >= rg.slotSize
}

// nextWriteSlot returns the data-region bytes for the slot the producer
// will fill next. Valid only after [ring.freeSlot] reported true.
func (rg *ring) nextWriteSlot() []byte {
	cw := rg.w.LoadRelaxed()
	off := cw & rg.mask
	return rg.data[off : off+rg.slotSize]
}

// commitWrite publishes the slot returned by nextWriteSlot as filled.
// The StoreRelease orders every byte the caller wrote into that slot
// before the index bump becomes visible to the consumer.
func (rg *ring) commitWrite() {
	rg.w.StoreRelease(rg.w.LoadRelaxed() + rg.slotSize)
}

// nextReadSlot returns the data-region bytes for the slot the consumer
// will drain next. Valid only after [ring.usedSlot] reported true.
func (rg *ring) nextReadSlot() []byte {
	cr := rg.r.LoadRelaxed()
	off := cr & rg.mask
	return rg.data[off : off+rg.slotSize]
}

// commitRead publishes the slot returned by nextReadSlot as free. The
// StoreRelease orders every byte the caller read out of that slot before
// the index bump frees it for the producer to reuse.
func (rg *ring) commitRead() {
	rg.r.StoreRelease(rg.r.LoadRelaxed() + rg.slotSize)
}
