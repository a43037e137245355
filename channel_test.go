// Copyright (c) 2026 the xchg authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xchg_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/forsterxchg/xchg"
)

// testHeaderSize mirrors the unexported ring header size (two uint64
// index words) so test buffers can be sized without reaching into the
// package's internals.
const testHeaderSize = 16

func newLoopbackBuf(slots int, slotSize int) []byte {
	return make([]byte, testHeaderSize+slots*slotSize)
}

func TestChannelSendReceiveRoundTrip(t *testing.T) {
	const slotSize = 32
	buf := newLoopbackBuf(4, slotSize)

	producer, err := xchg.NewChannel(slotSize, nil, buf)
	if err != nil {
		t.Fatal(err)
	}
	consumer, err := xchg.NewChannel(slotSize, buf, nil)
	if err != nil {
		t.Fatal(err)
	}

	cur, err := producer.Prepare()
	if err != nil {
		t.Fatal(err)
	}
	if err := xchg.WriteUint32(cur, 0xC0FFEE); err != nil {
		t.Fatal(err)
	}
	if err := producer.Send(cur); err != nil {
		t.Fatal(err)
	}

	rcur, err := consumer.Receive()
	if err != nil {
		t.Fatal(err)
	}
	v, err := xchg.ReadUint32(rcur)
	if err != nil || v != 0xC0FFEE {
		t.Fatalf("ReadUint32 = %#x, %v", v, err)
	}
	if err := consumer.Return(rcur); err != nil {
		t.Fatal(err)
	}
}

// TestChannelFullThenDrained exercises FIFO ordering and wraparound: fill
// every slot, confirm the next Prepare reports ErrFull, drain one,
// confirm a new Prepare then succeeds and the FIFO order is preserved.
func TestChannelFullThenDrained(t *testing.T) {
	const slotSize = 16
	const slots = 4
	buf := newLoopbackBuf(slots, slotSize)

	producer, _ := xchg.NewChannel(slotSize, nil, buf)
	consumer, _ := xchg.NewChannel(slotSize, buf, nil)

	for i := 0; i < slots; i++ {
		cur, err := producer.Prepare()
		if err != nil {
			t.Fatalf("Prepare #%d: %v", i, err)
		}
		if err := xchg.WriteInt32(cur, int32(i)); err != nil {
			t.Fatal(err)
		}
		if err := producer.Send(cur); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := producer.Prepare(); !errors.Is(err, xchg.ErrFull) {
		t.Fatalf("Prepare on full ring = %v, want ErrFull", err)
	}

	cur, err := consumer.Receive()
	if err != nil {
		t.Fatal(err)
	}
	v, _ := xchg.ReadInt32(cur)
	if v != 0 {
		t.Fatalf("first received = %d, want 0 (FIFO order)", v)
	}
	if err := consumer.Return(cur); err != nil {
		t.Fatal(err)
	}

	cur, err = producer.Prepare()
	if err != nil {
		t.Fatalf("Prepare after drain: %v", err)
	}
	if err := xchg.WriteInt32(cur, 99); err != nil {
		t.Fatal(err)
	}
	if err := producer.Send(cur); err != nil {
		t.Fatal(err)
	}

	for i := 1; i < slots; i++ {
		cur, err := consumer.Receive()
		if err != nil {
			t.Fatal(err)
		}
		v, _ := xchg.ReadInt32(cur)
		if v != int32(i) {
			t.Fatalf("received #%d = %d, want %d", i, v, i)
		}
		if err := consumer.Return(cur); err != nil {
			t.Fatal(err)
		}
	}
	cur, err = consumer.Receive()
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := xchg.ReadInt32(cur); v != 99 {
		t.Fatalf("wrapped slot = %d, want 99", v)
	}
	_ = consumer.Return(cur)
}

func TestChannelReceiveEmpty(t *testing.T) {
	buf := newLoopbackBuf(2, 16)
	consumer, err := xchg.NewChannel(16, buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := consumer.Receive(); !errors.Is(err, xchg.ErrEmpty) {
		t.Fatalf("Receive on empty ring = %v, want ErrEmpty", err)
	}
}

func TestChannelDirectionGuards(t *testing.T) {
	buf := newLoopbackBuf(2, 16)
	producerOnly, err := xchg.NewChannel(16, nil, buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := producerOnly.Receive(); !errors.Is(err, xchg.ErrNoIngress) {
		t.Fatalf("Receive without ingress = %v, want ErrNoIngress", err)
	}

	consumerOnly, err := xchg.NewChannel(16, buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := consumerOnly.Prepare(); !errors.Is(err, xchg.ErrNoEgress) {
		t.Fatalf("Prepare without egress = %v, want ErrNoEgress", err)
	}
}

func TestChannelSendWrongCursorRejected(t *testing.T) {
	buf := newLoopbackBuf(2, 16)
	producer, _ := xchg.NewChannel(16, nil, buf)

	if _, err := producer.Prepare(); err != nil {
		t.Fatal(err)
	}

	var stray xchg.Cursor
	_ = stray.Init(make([]byte, 16))
	if err := producer.Send(&stray); !errors.Is(err, xchg.ErrInvalidMessage) {
		t.Fatalf("Send(stray cursor) = %v, want ErrInvalidMessage", err)
	}
}

func TestNewChannelRejectsBadSizes(t *testing.T) {
	if _, err := xchg.NewChannel(16, nil, nil); !errors.Is(err, xchg.ErrInvalidArgument) {
		t.Fatalf("NewChannel(nil, nil) = %v, want ErrInvalidArgument", err)
	}
	// data region (len(buf)-testHeaderSize) not a multiple of slotSize.
	bad := make([]byte, testHeaderSize+17)
	if _, err := xchg.NewChannel(16, bad, nil); !errors.Is(err, xchg.ErrInvalidSize) {
		t.Fatalf("NewChannel with non-multiple data region = %v, want ErrInvalidSize", err)
	}
	// data region not a power of two.
	bad2 := make([]byte, testHeaderSize+48) // 48 = 3*16, not pow2
	if _, err := xchg.NewChannel(16, bad2, nil); !errors.Is(err, xchg.ErrInvalidSize) {
		t.Fatalf("NewChannel with non-pow2 data region = %v, want ErrInvalidSize", err)
	}
}

// TestChannelPrepareWaitReceiveWait exercises the waiting wrappers when a
// slot is available: a goroutine takes the ready message with ReceiveWait
// and returns it, then PrepareWait gets the freed slot and ReceiveWait
// delivers the second message, with no ErrFull / ErrEmpty surfacing.
func TestChannelPrepareWaitReceiveWait(t *testing.T) {
	const slotSize = 16
	buf := newLoopbackBuf(1, slotSize)

	producer, _ := xchg.NewChannel(slotSize, nil, buf)
	consumer, _ := xchg.NewChannel(slotSize, buf, nil)

	ctx := context.Background()

	cur, err := producer.Prepare()
	if err != nil {
		t.Fatal(err)
	}
	if err := xchg.WriteInt32(cur, 1); err != nil {
		t.Fatal(err)
	}
	if err := producer.Send(cur); err != nil {
		t.Fatal(err)
	}

	// Ring has exactly one slot and it's full: ReceiveWait returns the
	// ready value at once, and PrepareWait runs only after the goroutine's
	// Return has freed the slot.
	done := make(chan error, 1)
	go func() {
		rcur, err := consumer.ReceiveWait(ctx)
		if err != nil {
			done <- err
			return
		}
		v, err := xchg.ReadInt32(rcur)
		if err != nil {
			done <- err
			return
		}
		if v != 1 {
			done <- fmt.Errorf("ReceiveWait value = %d, want 1", v)
			return
		}
		done <- consumer.Return(rcur)
	}()
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	cur, err = producer.PrepareWait(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := xchg.WriteInt32(cur, 2); err != nil {
		t.Fatal(err)
	}
	if err := producer.Send(cur); err != nil {
		t.Fatal(err)
	}

	rcur, err := consumer.ReceiveWait(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := xchg.ReadInt32(rcur); v != 2 {
		t.Fatalf("ReceiveWait value = %d, want 2", v)
	}
	_ = consumer.Return(rcur)
}

// TestChannelPrepareWaitCancellation confirms PrepareWait gives up as
// soon as its context is cancelled instead of spinning forever.
func TestChannelPrepareWaitCancellation(t *testing.T) {
	const slotSize = 16
	buf := newLoopbackBuf(1, slotSize)
	producer, _ := xchg.NewChannel(slotSize, nil, buf)

	cur, err := producer.Prepare()
	if err != nil {
		t.Fatal(err)
	}
	if err := xchg.WriteInt32(cur, 1); err != nil {
		t.Fatal(err)
	}
	if err := producer.Send(cur); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := producer.PrepareWait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("PrepareWait on a full ring with a cancelled context = %v, want context.Canceled", err)
	}
}
