// Copyright (c) 2026 the xchg authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package xchg provides a lock-free, single-producer single-consumer
// message exchange for cooperating processes or threads sharing memory.
//
// It has two tightly coupled responsibilities:
//
//   - A compact, self-describing binary codec for primitive scalars and
//     homogeneous lists ([Cursor]).
//   - A pair of SPSC ring buffers over caller-provided byte slices that
//     hand the producer a writable slot, and the consumer a readable
//     slot, directly in shared memory ([Channel]).
//
// The channel never copies a message end-to-end: [Channel.Prepare] binds
// a [Cursor] to the next writable ring slot, the codec writes into that
// slot in place, and [Channel.Send] publishes it; [Channel.Receive] binds
// a [Cursor] to the next readable slot and [Channel.Return] reclaims it
// after the codec has read it out.
//
// # Quick start
//
// A channel needs one or two caller-allocated buffers, each laid out as
// two 8-byte index words followed by a power-of-two data region that is a
// multiple of slotSize:
//
//	const slotSize = 64
//	egressBuf := make([]byte, 16+4096) // 4096 = 64 * 64 slots
//	ingressBuf := make([]byte, 16+4096)
//
//	producer, err := xchg.NewChannel(slotSize, ingressBuf, egressBuf)
//	consumer, err := xchg.NewChannel(slotSize, egressBuf, ingressBuf) // buffers swapped
//
// # Producer side
//
//	cur, err := producer.Prepare()
//	if err != nil {
//	    // xchg.ErrFull: no free slot yet, back off and retry
//	}
//	_ = xchg.WriteUint64(cur, 42)
//	_ = xchg.WriteInt32List(cur, []int32{1, 2, 3})
//	if err := producer.Send(cur); err != nil {
//	    // xchg.ErrInvalidMessage: cur was not the cursor Prepare handed back
//	}
//
// # Consumer side
//
//	cur, err := consumer.Receive()
//	if err != nil {
//	    // xchg.ErrEmpty: nothing sent yet, back off and retry
//	}
//	v, _ := xchg.ReadUint64(cur)
//	list, _, _ := xchg.ReadInt32List(cur)
//	if err := consumer.Return(cur); err != nil {
//	    // xchg.ErrInvalidMessage
//	}
//
// # Backoff
//
// [Channel.Prepare] and [Channel.Receive] never block: they return
// [ErrFull] / [ErrEmpty] immediately when no slot is available. A caller
// that wants to wait should poll with a backoff, the same pattern
// code.hybscloud.com/spin documents for its own callers:
//
//	sw := spin.Wait{}
//	for {
//	    cur, err := producer.Prepare()
//	    if err == nil {
//	        break
//	    }
//	    if !xchg.IsWouldBlock(err) {
//	        panic(err) // programmer error: bad channel configuration
//	    }
//	    sw.Once()
//	}
//
// [Channel.PrepareWait] and [Channel.ReceiveWait] wrap exactly this loop,
// taking a context.Context for cancellation instead of spinning forever.
//
// # Peek then dispatch
//
// [Cursor.Peek] inspects the next value's type, nullness, list-ness, and
// element count without consuming it. If Peek succeeds, the matching
// typed reader is guaranteed to succeed — this lets a decoder dispatch on
// type before committing to a read:
//
//	info, err := cur.Peek()
//	if err != nil {
//	    return err
//	}
//	switch {
//	case info.Null:
//	    _, _ = cur.ReadNull()
//	case info.Type == xchg.Uint16 && !info.List:
//	    v, _ := xchg.ReadUint16(cur)
//	    handle(v)
//	}
//
// # Zero-copy lists
//
// List readers return a slice backed directly by the cursor's buffer — no
// allocation, no copy. (Scalar readers copy their value out.) The slice
// is valid only until the cursor is rebound by the
// next [Channel.Prepare] or [Channel.Receive] on that direction, or until
// the underlying ring buffer is reclaimed. An empty, non-null list reads
// back as (nil, 0, nil) — distinct from a null list, which ReadXList
// rejects with [ErrTypeMismatch].
//
// # Thread safety
//
// Exactly one goroutine may call [Channel.Prepare]/[Channel.Send] on a
// given channel (the producer); exactly one goroutine may call
// [Channel.Receive]/[Channel.Return] (the consumer). These may be two
// different goroutines running concurrently — that is the whole point —
// but two producers on the same channel, or two consumers, will corrupt
// the ring. [Cursor] itself is not safe for concurrent use from more than
// one goroutine at a time; it is meant to be owned by whichever goroutine
// Prepare/Receive handed it to until that goroutine calls Send/Return.
//
// Prepare, Send, Receive, Return and the codec never block and take no
// cancellation; only [Channel.PrepareWait] and [Channel.ReceiveWait]
// wait, and they stop when their context is done. A caller that wants to
// give up on a Prepare/Receive loop simply stops polling; any slot
// already bound to a live Cursor remains valid and is delivered (or
// reused) the next time someone polls.
package xchg
