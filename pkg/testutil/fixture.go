package testutil

import (
	"context"

	"github.com/ripple-lab/backend/internal/entity"
	"github.com/ripple-lab/backend/internal/repository"
)

var (
	User1 = entity.User{
		Base:        entity.Base{ID: "user1"},
		Name:        "alice",
		DisplayName: "Alice",
	}

	User2 = entity.User{
		Base:        entity.Base{ID: "user2"},
		Name:        "bob",
		DisplayName: "Bob",
	}

	User3 = entity.User{
		Base:        entity.Base{ID: "user3"},
		Name:        "carol",
		DisplayName: "Carol",
	}

	Message1 = entity.Message{
		SnowFlakeBase: entity.SnowFlakeBase{ID: 1},
		AuthorID:      User1.ID,
		Content:       "hello world",
	}

	Message2 = entity.Message{
		SnowFlakeBase: entity.SnowFlakeBase{ID: 2},
		AuthorID:      User2.ID,
		Content:       "another message",
	}

	Follower1 = entity.Follower{
		Base:     entity.Base{ID: "follower1"},
		UserID:   User2.ID,
		TargetID: User1.ID,
	}

	Conversation1 = entity.Conversation{
		Base: entity.Base{ID: "conversation1"},
	}

	Conversation1Members = []entity.ConversationMember{
		{
			Base:           entity.Base{ID: "conversation1-member1"},
			ConversationID: Conversation1.ID,
			UserID:         User1.ID,
		},
		{
			Base:           entity.Base{ID: "conversation1-member2"},
			ConversationID: Conversation1.ID,
			UserID:         User2.ID,
		},
	}
)

func insertFixtures(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, user := range []entity.User{User1, User2, User3} {
		u := user
		if err := userRepo.Create(ctx, &u); err != nil {
			panic(err)
		}
	}

	messageRepo := repository.NewMessageRepository()
	for _, msg := range []entity.Message{Message1, Message2} {
		m := msg
		if err := messageRepo.Create(ctx, &m); err != nil {
			panic(err)
		}
	}

	followerRepo := repository.NewFollowerRepository()
	follower := Follower1
	if err := followerRepo.Create(ctx, &follower); err != nil {
		panic(err)
	}

	conversationRepo := repository.NewConversationRepository()
	conversation := Conversation1
	if err := conversationRepo.Create(ctx, &conversation, Conversation1Members); err != nil {
		panic(err)
	}
}
