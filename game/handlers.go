package game

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const joinForwardTimeout = time.Second * 5

type GameHandler struct {
	lobby    Lobby
	reducer  *Reducer
	upgrader websocket.Upgrader
}

func NewGameHandler(lobby Lobby, words WordPicker) *GameHandler {
	return &GameHandler{
		lobby:   lobby,
		reducer: NewReducer(words),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origins are vetted by the router middleware before we get here.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// CreateGameHandler upgrades the host's connection and spins up a fresh room.
// The assigned game code reaches the host as a GAME_CREATED event once the
// lobby registers the room.
func (h *GameHandler) CreateGameHandler(ctx *gin.Context) {
	username := ctx.Query("username")
	if username == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing-username"})
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("ip", ctx.ClientIP()).Msg("ws upgrade failed")
		return
	}

	socketConn := NewWebsocketConnection(conn)
	sub := NewSubscriber(ctx.Query("userID"), username, &socketConn)
	room := NewRoom(sub, h.reducer)
	h.lobby.RequestAddAndRunRoom(ctx.Request.Context(), room)

	go sub.ReadPump()
	go sub.WritePump()
}

// JoinGameHandler subscribes a client to an existing game by its code.
func (h *GameHandler) JoinGameHandler(ctx *gin.Context) {
	gameID := ctx.Param("gameID")
	username := ctx.Query("username")
	if username == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing-username"})
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("ip", ctx.ClientIP()).Msg("ws upgrade failed")
		return
	}

	socketConn := NewWebsocketConnection(conn)
	sub := NewSubscriber(ctx.Query("userID"), username, &socketConn)

	jreq := NewRoomJoinRequest(gameID, sub)
	h.lobby.ForwardPlayerJoinRequestToRoom(ctx.Request.Context(), jreq)

	select {
	case err := <-jreq.errChan:
		if err != nil {
			socketConn.Close("game-not-found")
			return
		}
	case <-time.After(joinForwardTimeout):
		if jreq.claim() {
			socketConn.Close("server-timeout")
			return
		}
		// The room answered as the timer fired; its answer is guaranteed to
		// follow a successful claim, so honor it.
		if err := <-jreq.errChan; err != nil {
			socketConn.Close("game-not-found")
			return
		}
	}

	go sub.ReadPump()
	go sub.WritePump()
}
