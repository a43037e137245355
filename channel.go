// Copyright (c) 2026 the xchg authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xchg

import (
	"context"
	"unsafe"

	"code.hybscloud.com/spin"
)

// Channel is a full-duplex message exchange over one or two caller-owned
// byte buffers living in shared memory. It pairs an egress [ring] (used
// by [Channel.Prepare] / [Channel.Send]) with an ingress ring (used by
// [Channel.Receive] / [Channel.Return]).
//
// Two ends of a conversation each construct a Channel over the same pair
// of buffers with the roles swapped: what one end calls egress, the
// other calls ingress, and vice versa. A Channel with only one buffer is
// one-directional — Prepare/Send fail with [ErrNoEgress], or
// Receive/Return fail with [ErrNoIngress], on the missing side.
type Channel struct {
	egress  *ring
	ingress *ring

	egressCur  Cursor
	ingressCur Cursor

	lastErr error
}

// NewChannel builds a Channel over ingress and/or egress, each laid out
// as described in [newRing]. Either buffer may be nil to build a
// one-directional channel, but not both.
func NewChannel(slotSize int, ingress, egress []byte) (*Channel, error) {
	if slotSize <= 0 {
		return nil, ErrInvalidSize
	}
	if ingress == nil && egress == nil {
		return nil, ErrInvalidArgument
	}

	ch := &Channel{}
	if ingress != nil {
		rg, err := newRing(ingress, uint64(slotSize))
		if err != nil {
			return nil, err
		}
		ch.ingress = rg
	}
	if egress != nil {
		rg, err := newRing(egress, uint64(slotSize))
		if err != nil {
			return nil, err
		}
		ch.egress = rg
	}
	return ch, nil
}

// Err returns the error recorded by the most recent Prepare/Send/Receive/
// Return call, mirroring the C reference's strerror()-style accessor.
func (ch *Channel) Err() error {
	return ch.lastErr
}

// Prepare binds and returns a [Cursor] over the next writable egress
// slot, ready for a codec writer to fill it. It never blocks: if the
// egress ring has no free slot, it returns [ErrFull] immediately. The
// returned Cursor is owned by ch and is only valid until the matching
// [Channel.Send], or until the next Prepare call.
func (ch *Channel) Prepare() (*Cursor, error) {
	if ch.egress == nil {
		ch.lastErr = ErrNoEgress
		return nil, ErrNoEgress
	}
	if !ch.egress.freeSlot() {
		ch.lastErr = ErrFull
		return nil, ErrFull
	}
	if err := ch.egressCur.Init(ch.egress.nextWriteSlot()); err != nil {
		ch.lastErr = err
		return nil, err
	}
	ch.lastErr = nil
	return &ch.egressCur, nil
}

// Send publishes the slot bound to cur, which must be the Cursor the
// immediately preceding [Channel.Prepare] call returned and must still
// address exactly the next egress slot.
func (ch *Channel) Send(cur *Cursor) error {
	if ch.egress == nil {
		ch.lastErr = ErrNoEgress
		return ErrNoEgress
	}
	if cur != &ch.egressCur || !sameSlot(cur.data, ch.egress.nextWriteSlot()) {
		ch.lastErr = ErrInvalidMessage
		return ErrInvalidMessage
	}
	ch.egress.commitWrite()
	ch.lastErr = nil
	return nil
}

// Receive binds and returns a [Cursor] over the next readable ingress
// slot. It never blocks: if the ingress ring has no full slot yet, it
// returns [ErrEmpty] immediately. The returned Cursor is owned by ch and
// is only valid until the matching [Channel.Return], or until the next
// Receive call.
func (ch *Channel) Receive() (*Cursor, error) {
	if ch.ingress == nil {
		ch.lastErr = ErrNoIngress
		return nil, ErrNoIngress
	}
	if !ch.ingress.usedSlot() {
		ch.lastErr = ErrEmpty
		return nil, ErrEmpty
	}
	if err := ch.ingressCur.Init(ch.ingress.nextReadSlot()); err != nil {
		ch.lastErr = err
		return nil, err
	}
	ch.lastErr = nil
	return &ch.ingressCur, nil
}

// Return reclaims the slot bound to cur, which must be the Cursor the
// immediately preceding [Channel.Receive] call returned.
func (ch *Channel) Return(cur *Cursor) error {
	if ch.ingress == nil {
		ch.lastErr = ErrNoIngress
		return ErrNoIngress
	}
	if cur != &ch.ingressCur || !sameSlot(cur.data, ch.ingress.nextReadSlot()) {
		ch.lastErr = ErrInvalidMessage
		return ErrInvalidMessage
	}
	ch.ingress.commitRead()
	ch.lastErr = nil
	return nil
}

// PrepareWait is [Channel.Prepare], but it backs off with [spin.Wait]
// and retries instead of returning [ErrFull], until ctx is done.
func (ch *Channel) PrepareWait(ctx context.Context) (*Cursor, error) {
	sw := spin.Wait{}
	for {
		cur, err := ch.Prepare()
		if err == nil {
			return cur, nil
		}
		if !IsWouldBlock(err) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		sw.Once()
	}
}

// ReceiveWait is [Channel.Receive], but it backs off with [spin.Wait]
// and retries instead of returning [ErrEmpty], until ctx is done.
func (ch *Channel) ReceiveWait(ctx context.Context) (*Cursor, error) {
	sw := spin.Wait{}
	for {
		cur, err := ch.Receive()
		if err == nil {
			return cur, nil
		}
		if !IsWouldBlock(err) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		sw.Once()
	}
}

// sameSlot reports whether a and b are windows into the same backing
// array at the same offset and length — the identity check Send/Return
// use in place of the C reference's raw pointer comparison.
func sameSlot(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return unsafe.Pointer(&a[0]) == unsafe.Pointer(&b[0])
}
