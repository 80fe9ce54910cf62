package services

import (
	"testing"

	"github.com/SketchShifter/warbler_backend/internal/config"
	"github.com/SketchShifter/warbler_backend/internal/repository"
	"github.com/SketchShifter/warbler_backend/internal/testutil"

	"gorm.io/gorm"
)

type testEnv struct {
	cfg           *config.Config
	users         repository.UserRepository
	messages      repository.MessageRepository
	follows       repository.FollowRepository
	likes         repository.LikeRepository
	auth          AuthService
	messageSvc    MessageService
	relationships RelationshipService
}

func newTestEnv(t *testing.T, seeded bool) *testEnv {
	t.Helper()

	var db *gorm.DB
	if seeded {
		db = testutil.NewSeededDB(t)
	} else {
		db = testutil.NewDB(t)
	}
	cfg := testutil.NewConfig()

	env := &testEnv{
		cfg:      cfg,
		users:    repository.NewUserRepository(db),
		messages: repository.NewMessageRepository(db),
		follows:  repository.NewFollowRepository(db),
		likes:    repository.NewLikeRepository(db),
	}
	env.auth = NewAuthService(env.users, cfg)
	env.messageSvc = NewMessageService(env.messages, env.follows)
	env.relationships = NewRelationshipService(env.follows, env.likes, env.messages)
	return env
}

func (e *testEnv) userService(images ImageService) UserService {
	return NewUserService(e.users, e.messages, e.follows, e.likes, images, e.cfg.Storage)
}
