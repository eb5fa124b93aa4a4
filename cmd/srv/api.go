package main

import (
	"net/http"

	"github.com/ripple-lab/backend/internal/middleware"
	"github.com/ripple-lab/backend/pkg/router"
	"github.com/ripple-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	s.loadConfig(ct)
	s.loadLogger()
	s.loadDatabase()
	s.loadAuthenticator()
	s.loadSnowFlake()
	s.loadRedis()
	s.loadRepos()
	s.loadDomains()
	s.loadNotification()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx).ApiServer
	s.server = &http.Server{
		Addr:    cfg.Address(),
		Handler: s.router.Handler(cfg.ServerConfigs),
	}

	xcontext.Logger(s.ctx).Infof("Starting api server on port %s", cfg.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger())

	// Public API.
	router.POST(s.router, "/register", s.authDomain.Register)
	router.POST(s.router, "/login", s.authDomain.Login)
	router.GET(s.router, "/getUser", s.userDomain.GetUser)
	router.GET(s.router, "/getMessage", s.messageDomain.Get)
	router.GET(s.router, "/getUserMessages", s.messageDomain.GetUserMessages)

	// These following APIs need authentication with Access Token.
	authRouter := s.router.Branch()
	authVerifier := middleware.NewAuthVerifier().WithAccessToken()
	authRouter.Before(authVerifier.Middleware())
	{
		// User API
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.POST(authRouter, "/updateMe", s.userDomain.UpdateMe)
		router.POST(authRouter, "/follow", s.userDomain.FollowUser)
		router.POST(authRouter, "/unfollow", s.userDomain.UnfollowUser)

		// Message API
		router.POST(authRouter, "/createMessage", s.messageDomain.Create)
		router.POST(authRouter, "/deleteMessage", s.messageDomain.Delete)
		router.POST(authRouter, "/pinMessage", s.messageDomain.Pin)
		router.GET(authRouter, "/getFeed", s.messageDomain.GetFeed)
		router.POST(authRouter, "/likeMessage", s.messageDomain.Like)
		router.POST(authRouter, "/unlikeMessage", s.messageDomain.Unlike)
		router.POST(authRouter, "/repostMessage", s.messageDomain.Repost)

		// Conversation API
		router.POST(authRouter, "/createConversation", s.conversationDomain.Create)
		router.GET(authRouter, "/getMyConversations", s.conversationDomain.GetMyList)
		router.POST(authRouter, "/createConversationMessage", s.conversationDomain.CreateMessage)
		router.GET(authRouter, "/getConversationMessages", s.conversationDomain.GetMessages)

		// Realtime API
		router.Websocket(authRouter, "/realtime", s.notificationServer.ServeRealtime)
	}
}
