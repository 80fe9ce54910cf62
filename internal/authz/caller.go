// Package authz decides whether a caller may mutate a message.
package authz

import "context"

// Caller リクエストごとの呼び出し元（セッションが無い場合は匿名）
type Caller struct {
	userID  uint
	present bool
}

// Anonymous セッションの無い呼び出し元
func Anonymous() Caller {
	return Caller{}
}

// CallerID セッションから取り出したユーザーIDを持つ呼び出し元
func CallerID(id uint) Caller {
	return Caller{userID: id, present: true}
}

// ID ユーザーIDと、セッションが存在するかを返す
func (c Caller) ID() (uint, bool) {
	return c.userID, c.present
}

type callerKey struct{}

// WithCaller contextに呼び出し元を設定
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// FromContext contextから呼び出し元を取得（未設定なら匿名）
func FromContext(ctx context.Context) Caller {
	if c, ok := ctx.Value(callerKey{}).(Caller); ok {
		return c
	}
	return Anonymous()
}
