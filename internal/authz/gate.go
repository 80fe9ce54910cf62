package authz

import (
	"context"
	"errors"

	"github.com/SketchShifter/warbler_backend/internal/models"
	"github.com/SketchShifter/warbler_backend/internal/repository"
)

// Reason 拒否理由
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonNoSession   Reason = "no_session"
	ReasonUnknownUser Reason = "unknown_user"
	ReasonNotOwner    Reason = "not_owner"
)

// UnauthorizedMessage 拒否時にユーザーへ表示する文言
const UnauthorizedMessage = "Access unauthorized."

// Decision 認可の判定結果（拒否はエラーではなく値として返す）
type Decision struct {
	Allowed bool
	Reason  Reason
	// User 許可された場合の呼び出し元ユーザー
	User *models.User
}

func allow(user *models.User) Decision {
	return Decision{Allowed: true, User: user}
}

func deny(reason Reason) Decision {
	return Decision{Reason: reason}
}

// UserFinder ユーザーの解決に必要な操作
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// Gate メッセージの作成・削除を認可する
type Gate struct {
	users UserFinder
}

// NewGate Gateを作成
func NewGate(users UserFinder) *Gate {
	return &Gate{users: users}
}

// AuthorizeCreate セッションがあり、ユーザーが存在すれば許可
// errorはストアの障害の場合のみ返す
func (g *Gate) AuthorizeCreate(ctx context.Context, caller Caller) (Decision, error) {
	id, ok := caller.ID()
	if !ok {
		return deny(ReasonNoSession), nil
	}

	user, err := g.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return deny(ReasonUnknownUser), nil
	}
	if err != nil {
		return Decision{}, err
	}

	return allow(user), nil
}

// AuthorizeDelete AuthorizeCreate の条件に加えて、メッセージの所有者であれば許可
func (g *Gate) AuthorizeDelete(ctx context.Context, caller Caller, message *models.Message) (Decision, error) {
	decision, err := g.AuthorizeCreate(ctx, caller)
	if err != nil || !decision.Allowed {
		return decision, err
	}

	if decision.User.ID != message.UserID {
		return deny(ReasonNotOwner), nil
	}

	return decision, nil
}
