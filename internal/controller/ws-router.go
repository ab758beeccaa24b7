package controller

import (
	"github.com/swipemood/server/pkg/wsrouter"
)

func (c controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()

	mux.Use(c.wsRequestIdMw())
	mux.Use(c.loggerWSMw())

	wsrouter.Handle(mux, "join-room", c.handleJoinRoom)
	wsrouter.Handle(mux, "play-video", c.handlePlayVideo)
	wsrouter.Handle(mux, "chat-message", c.handleChatMessage)
	wsrouter.Handle(mux, "close-room", c.handleCloseRoom)

	return mux
}
