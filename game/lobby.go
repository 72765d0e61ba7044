package game

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// lobby owns the registry of live rooms and the two shared tickers: the 1s
// game tick every room measures its phase deadline against, and the 30s
// websocket keepalive. Registry mutations all happen on the LobbyActor
// goroutine.
type lobby struct {
	rooms map[string]Room

	addAndRunRoomChan chan Room
	removeRoomChan    chan string
	roomJoinReqs      chan roomJoinRequest

	idGenerator   UniqueIdGenerator
	tickerCreator PeriodicTickerChannelCreator
}

func NewLobby(idgen UniqueIdGenerator, tickerCreator PeriodicTickerChannelCreator) *lobby {
	return &lobby{
		rooms:             map[string]Room{},
		addAndRunRoomChan: make(chan Room, 32),
		removeRoomChan:    make(chan string, 32),
		roomJoinReqs:      make(chan roomJoinRequest, 256),
		idGenerator:       idgen,
		tickerCreator:     tickerCreator,
	}
}

func (l *lobby) RequestAddAndRunRoom(ctx context.Context, r Room) {
	select {
	case l.addAndRunRoomChan <- r:
	case <-ctx.Done():
	}
}

func (l *lobby) ForwardPlayerJoinRequestToRoom(ctx context.Context, jreq roomJoinRequest) {
	select {
	case l.roomJoinReqs <- jreq:
	case <-ctx.Done():
	}
}

func (l *lobby) RemoveRoom(gameID string) {
	l.removeRoomChan <- gameID
}

func (l *lobby) LobbyActor(started chan struct{}) {
	ticker := l.tickerCreator.Create(time.Second)
	pingTicker := l.tickerCreator.Create(time.Second * 30)

	close(started)

	for {
		select {
		case now := <-ticker:
			for _, r := range l.rooms {
				r.Tick(now)
			}
		case <-pingTicker:
			for _, r := range l.rooms {
				r.PingPlayers()
			}

		case room := <-l.addAndRunRoomChan:
			l.handleAddAndRunRoom(room)

		case gameID := <-l.removeRoomChan:
			l.handleRemoveRoom(gameID)

		case joinReq := <-l.roomJoinReqs:
			l.handleJoinReq(joinReq)
		}
	}
}

func (l *lobby) handleAddAndRunRoom(r Room) {
	id := l.idGenerator.Generate()
	r.SetParentLobby(l)
	r.SetId(id)

	l.rooms[id] = r
	go r.GameLoop()
	log.Info().Str("gameID", id).Msg("game created")
}

func (l *lobby) handleRemoveRoom(toRemoveId string) {
	room, exists := l.rooms[toRemoveId]
	if !exists {
		return
	}
	delete(l.rooms, toRemoveId)
	room.CloseAndRelease()
	l.idGenerator.Dispose(toRemoveId)
	log.Info().Str("gameID", toRemoveId).Msg("game removed")
}

func (l *lobby) handleJoinReq(joinReq roomJoinRequest) {
	room, ok := l.rooms[joinReq.gameID]
	if !ok {
		if joinReq.claim() {
			joinReq.errChan <- ErrGameNotFound
		}
		return
	}
	room.RequestJoin(joinReq)
}
