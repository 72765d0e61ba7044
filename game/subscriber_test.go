package game

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errConnClosed = errors.New("connection closed")

func TestSubscriber_NewFillsMissingID(t *testing.T) {
	t.Parallel()

	s := NewSubscriber("", "alice", &MockChannelConnection{})
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, "alice", s.Username())

	s2 := NewSubscriber("u1", "bob", &MockChannelConnection{})
	assert.Equal(t, "u1", s2.ID())
}

func TestSubscriber_ReadPumpForwardsValidatedIntents(t *testing.T) {
	t.Parallel()

	conn := &MockChannelConnection{}
	conn.On("Read").Return([]byte(`{"type":"PLAYER_JOIN","username":"alice"}`), nil).Once()
	conn.On("Read").Return([]byte(`{"type":"START_GAME"}`), nil).Once()
	conn.On("Read").Return([]byte(nil), errConnClosed).Once()

	s := NewSubscriber("u1", "alice", conn)

	var submitted []Event
	room := &MockRoom{}
	room.On("Submit", mock.Anything).Run(func(args mock.Arguments) {
		submitted = append(submitted, args.Get(0).(Event))
	}).Return()
	room.On("RequestRemoval", s).Return().Once()
	s.SetRoom(room)

	s.ReadPump()

	require.Len(t, submitted, 2)
	// From is stamped with the subscriber id; PLAYER_JOIN without a userID
	// falls back to it too.
	assert.Equal(t, Event{Type: EventPlayerJoin, From: "u1", UserID: "u1", Username: "alice"}, submitted[0])
	assert.Equal(t, Event{Type: EventStartGame, From: "u1"}, submitted[1])
	room.AssertExpectations(t)
}

func TestSubscriber_ReadPumpRejectsMalformedIntents(t *testing.T) {
	t.Parallel()

	conn := &MockChannelConnection{}
	conn.On("Read").Return([]byte(`{"type":"HACK_THE_PLANET"}`), nil).Once()
	conn.On("Read").Return([]byte(nil), errConnClosed).Once()

	s := NewSubscriber("u1", "alice", conn)
	room := &MockRoom{}
	room.On("RequestRemoval", s).Return().Once()
	s.SetRoom(room)

	s.ReadPump()

	room.AssertNotCalled(t, "Submit", mock.Anything)

	// The rejection went straight to the subscriber's own outbox.
	select {
	case data := <-s.outbox:
		var rej Rejected
		require.NoError(t, json.Unmarshal(data, &rej))
		assert.Equal(t, EventRejected, rej.Type)
		assert.Equal(t, ErrUnknownIntent.Error(), rej.Reason)
	default:
		t.Fatal("expected a REJECTED event in the outbox")
	}
}

func TestSubscriber_ReadPumpDropsIntentsOverRateLimit(t *testing.T) {
	t.Parallel()

	conn := &MockChannelConnection{}
	// Burst of 8 back to back; the limiter allows 5.
	conn.On("Read").Return([]byte(`{"type":"START_TURN"}`), nil).Times(8)
	conn.On("Read").Return([]byte(nil), errConnClosed).Once()

	s := NewSubscriber("u1", "alice", conn)
	room := &MockRoom{}
	room.On("Submit", mock.Anything).Return()
	room.On("RequestRemoval", s).Return().Once()
	s.SetRoom(room)

	s.ReadPump()

	room.AssertNumberOfCalls(t, "Submit", 5)
}

func TestSubscriber_WritePumpDrainsOutboxAndPings(t *testing.T) {
	t.Parallel()

	written := make(chan []byte, 1)
	pinged := make(chan struct{}, 1)
	conn := &MockChannelConnection{}
	conn.On("Write", mock.Anything).Run(func(args mock.Arguments) {
		written <- args.Get(0).([]byte)
	}).Return(nil)
	conn.On("Ping").Run(func(mock.Arguments) { pinged <- struct{}{} }).Return(nil)
	conn.On("Close", "").Return().Once()

	s := NewSubscriber("u1", "alice", conn)
	pumpDone := make(chan struct{})
	go func() {
		s.WritePump()
		close(pumpDone)
	}()

	require.NoError(t, s.Send([]byte("hello")))
	select {
	case data := <-written:
		assert.Equal(t, []byte("hello"), data)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the write")
	}

	require.NoError(t, s.Ping())
	select {
	case <-pinged:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the ping")
	}

	s.CancelAndRelease()
	select {
	case <-pumpDone:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the pump to stop")
	}
	conn.AssertExpectations(t)
}

func TestSubscriber_SendOnFullOutboxDropsTheMessage(t *testing.T) {
	t.Parallel()

	s := NewSubscriber("u1", "alice", &MockChannelConnection{})
	for i := 0; i < cap(s.outbox); i++ {
		require.NoError(t, s.Send([]byte("x")))
	}
	assert.ErrorIs(t, s.Send([]byte("one too many")), ErrOutboxFull)
}

func TestSubscriber_CancelAndReleaseIsIdempotent(t *testing.T) {
	t.Parallel()

	conn := &MockChannelConnection{}
	conn.On("Close", "").Return().Once()

	s := NewSubscriber("u1", "alice", conn)
	s.CancelAndRelease()
	s.CancelAndRelease()

	assert.ErrorIs(t, s.Send([]byte("late")), ErrSubscriberGone)
	assert.ErrorIs(t, s.Ping(), ErrSubscriberGone)
	conn.AssertExpectations(t)
}
