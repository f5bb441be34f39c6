package socket_io

import (
	"Farol/services/game"
	"Farol/services/redis"
	"Farol/services/socket_io/handlers"

	socketio_types "Farol/services/socket_io/types"
	socketio_utils "Farol/services/socket_io/utils"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	// KEY: initialize the map, otherwise it panics
	sio.UserConnections = make(map[string]*socket.Socket)

	// One registry for the whole process: every game's serialized session
	// lives here for as long as the game is being played
	registry := game.NewRegistry()

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Check if the client is authenticated
		success, username, email := socketio_utils.VerifyUserConnection(client, db)
		if !success {
			return
		}

		// Add connection to map
		(*socketio_types.SocketServer)(sio).AddConnection(username, client)

		fmt.Println("An individual just connected!: ", username, email)

		// Join the socket room of a game the user is seated in
		client.On("join_game", handlers.HandleJoinGame(redisClient, client, db, username, (*socketio_types.SocketServer)(sio), registry))

		// Exit a game room voluntarily (the seat stays)
		client.On("leave_game", handlers.HandleLeaveGame(redisClient, client, db, username, (*socketio_types.SocketServer)(sio), registry))

		// Deal the full deck and begin play
		client.On("start_game", handlers.HandleStartGame(redisClient, client, db, username, (*socketio_types.SocketServer)(sio), registry))

		// Play cards face down with a declared rank
		client.On("play_cards", handlers.HandlePlayCards(redisClient, client, db, username, (*socketio_types.SocketServer)(sio), registry))

		// Challenge the last play
		client.On("call_bs", handlers.HandleCallBS(redisClient, client, db, username, (*socketio_types.SocketServer)(sio), registry))

		// Explicit full-state refresh, used by reconnecting clients
		client.On("request_game_state", handlers.HandleRequestGameState(client, db, username, registry))

		// In-game chat relay
		client.On("game_message", handlers.HandleGameMessage(client, db, username, (*socketio_types.SocketServer)(sio)))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(redisClient, client, db, username, (*socketio_types.SocketServer)(sio), registry))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}
