package main

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/ripple-lab/backend/config"
	"github.com/ripple-lab/backend/internal/domain"
	"github.com/ripple-lab/backend/internal/domain/notification/engine"
	"github.com/ripple-lab/backend/internal/repository"
	"github.com/ripple-lab/backend/pkg/authenticator"
	"github.com/ripple-lab/backend/pkg/logger"
	"github.com/ripple-lab/backend/pkg/router"
	"github.com/ripple-lab/backend/pkg/xcontext"
	"github.com/ripple-lab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	userRepo         repository.UserRepository
	messageRepo      repository.MessageRepository
	likeRepo         repository.LikeRepository
	repostRepo       repository.RepostRepository
	followerRepo     repository.FollowerRepository
	conversationRepo repository.ConversationRepository

	authDomain         domain.AuthDomain
	userDomain         domain.UserDomain
	messageDomain      domain.MessageDomain
	conversationDomain domain.ConversationDomain

	notificationServer *engine.Server

	redisClient xredis.Client

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(ct *cli.Context) {
	cfg, err := config.Load(ct.String("config"))
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func (s *srv) loadLogger() {
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(xcontext.Configs(s.ctx).LogLevel))
}

func (s *srv) loadDatabase() {
	cfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.Open(cfg.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) loadAuthenticator() {
	secret := xcontext.Configs(s.ctx).Auth.TokenSecret
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine(secret))
}

func (s *srv) loadSnowFlake() {
	node, err := snowflake.NewNode(0)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
}

func (s *srv) loadRedis() {
	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = client
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.messageRepo = repository.NewMessageRepository()
	s.likeRepo = repository.NewLikeRepository()
	s.repostRepo = repository.NewRepostRepository()
	s.followerRepo = repository.NewFollowerRepository()
	s.conversationRepo = repository.NewConversationRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.followerRepo)
	s.messageDomain = domain.NewMessageDomain(
		s.messageRepo, s.userRepo, s.followerRepo, s.likeRepo, s.repostRepo)
	s.conversationDomain = domain.NewConversationDomain(s.conversationRepo, s.userRepo)
}

func (s *srv) loadNotification() {
	registry := engine.NewRegistry()
	dispatcher := engine.NewDispatcher(
		registry,
		s.messageDomain,
		s.conversationDomain,
		s.messageRepo,
		s.userRepo,
		s.conversationRepo,
		s.redisClient,
	)

	s.notificationServer = engine.NewServer(registry, dispatcher)
}
