package socket_io

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"Wikirace/services/race"
	"Wikirace/services/socket_io/handlers"
	socketio_types "Wikirace/services/socket_io/types"
	"Wikirace/services/wiki"

	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, registry *race.Registry, wikiClient *wiki.Client) {
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

	sio.UserConnections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		server := (*socketio_types.SocketServer)(sio)

		// Rebind a previously-seen identity to this fresh connection
		client.On("recover_session", handlers.HandleRecoverSession(registry, client, server))

		// Create a room (no code) or join an existing one
		client.On("join_lobby", handlers.HandleJoinLobby(registry, client, server))

		// Host-only room configuration while in the lobby
		client.On("update_settings", handlers.HandleUpdateSettings(registry, client, server))

		// Host-only: kick off the next round (resetting scores on a fresh match)
		client.On("start_game", handlers.HandleStartGame(registry, wikiClient, client, server))

		// One link click inside the race surface
		client.On("player_navigated", handlers.HandlePlayerNavigated(registry, client, server))

		// Give up on the current round
		client.On("forfeit", handlers.HandleForfeit(registry, client, server))

		// Host-only room teardown
		client.On("close_room", handlers.HandleCloseRoom(registry, client, server))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(client, server))
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
