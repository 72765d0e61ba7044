package main

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/FMcIntosh/sketch-time/config"
	"github.com/FMcIntosh/sketch-time/game"
	"github.com/FMcIntosh/sketch-time/logger"
)

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", func(ctx *gin.Context) { ctx.String(200, "healthy") })

	if len(allowedOrigins) == 0 {
		return r
	}

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")

		// Non-browser clients send no Origin header; let them through.
		if origin == "" || slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func main() {
	cfg := config.Load()
	logger.Setup(cfg.Debug)

	words, err := game.LoadWords(cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	log.Info().Int("count", len(words)).Msg("word list loaded")

	idGen := game.NewIdGen()
	tickerGen := game.NewTickerGen()
	lobby := game.NewLobby(&idGen, &tickerGen)

	lobbyStarted := make(chan struct{})
	go lobby.LobbyActor(lobbyStarted)
	<-lobbyStarted

	gameHandler := game.NewGameHandler(lobby, game.NewWordList(words))

	r := CreateServer(cfg.AllowedOrigins)
	{
		gameGroup := r.Group("/game")
		gameGroup.GET("/create", gameHandler.CreateGameHandler)
		gameGroup.GET("/join/:gameID", gameHandler.JoinGameHandler)
	}

	log.Info().Str("port", cfg.Port).Msg("server listening")
	r.Run(":" + cfg.Port)
}
