package game

import (
	"context"
	"sync/atomic"
	"time"
)

// ChannelConnection is the transport a subscriber speaks over. The concrete
// implementation wraps a websocket; tests substitute a mock.
type ChannelConnection interface {
	Close(errCode string)
	Write(data []byte) error
	Read() ([]byte, error)
	Ping() error
}

// Subscriber is one connected client of a session.
type Subscriber interface {
	ID() string
	Username() string
	Send(data []byte) error
	Ping() error
	SetRoom(r Room)
	CancelAndRelease()
}

// Room hosts one session: a sequential event queue over the canonical state.
type Room interface {
	GameLoop()
	Submit(ev Event)
	RequestJoin(jreq roomJoinRequest)
	RequestRemoval(sub Subscriber)
	Tick(now time.Time)
	PingPlayers()
	SetParentLobby(l Lobby)
	SetId(id string)
	Id() string
	CloseAndRelease()
}

// Lobby is the registry of live rooms.
type Lobby interface {
	RequestAddAndRunRoom(ctx context.Context, r Room)
	ForwardPlayerJoinRequestToRoom(ctx context.Context, jreq roomJoinRequest)
	RemoveRoom(gameID string)
}

// UniqueIdGenerator hands out game codes that are unique among live sessions.
type UniqueIdGenerator interface {
	Generate() string
	Dispose(id string)
}

type roomJoinRequest struct {
	gameID  string
	sub     Subscriber
	errChan chan error
	claimed *atomic.Bool
}

func NewRoomJoinRequest(gameID string, sub Subscriber) roomJoinRequest {
	return roomJoinRequest{
		gameID:  gameID,
		sub:     sub,
		errChan: make(chan error, 1),
		claimed: new(atomic.Bool),
	}
}

// claim resolves who owns the request's outcome. Exactly one caller wins: the
// room or lobby right before answering on errChan, or the waiting handler when
// it gives up. A claimed request gets no answer and must not be adopted.
func (j roomJoinRequest) claim() bool {
	return j.claimed.CompareAndSwap(false, true)
}
