package session

import (
	"crypto/sha256"
	"net/http"

	"github.com/SketchShifter/warbler_backend/internal/config"

	"github.com/gorilla/securecookie"
)

// CurrUserKey セッション内でログイン中のユーザーIDを保持するキー
const CurrUserKey = "curr_user"

// Store 署名付きCookieによるセッションストア
type Store struct {
	codec  *securecookie.SecureCookie
	name   string
	maxAge int
	secure bool
}

// NewStore Storeを作成
func NewStore(cfg config.SessionConfig) *Store {
	// 任意長のシークレットから32バイトのハッシュキーを作る
	hashKey := sha256.Sum256([]byte(cfg.SecretKey))

	codec := securecookie.New(hashKey[:], nil)
	codec.MaxAge(cfg.MaxAge)

	return &Store{
		codec:  codec,
		name:   cfg.CookieName,
		maxAge: cfg.MaxAge,
		secure: cfg.Secure,
	}
}

// Name Cookie名
func (s *Store) Name() string {
	return s.name
}

// UserID リクエストのCookieからユーザーIDを取得
func (s *Store) UserID(r *http.Request) (uint, bool) {
	cookie, err := r.Cookie(s.name)
	if err != nil {
		return 0, false
	}

	values := map[string]uint{}
	if err := s.codec.Decode(s.name, cookie.Value, &values); err != nil {
		return 0, false
	}

	id, ok := values[CurrUserKey]
	return id, ok
}

// Encode ユーザーIDをCookieの値にエンコード
func (s *Store) Encode(userID uint) (string, error) {
	return s.codec.Encode(s.name, map[string]uint{CurrUserKey: userID})
}

// Login ユーザーIDをセッションに保存
func (s *Store) Login(w http.ResponseWriter, userID uint) error {
	value, err := s.Encode(userID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    value,
		Path:     "/",
		MaxAge:   s.maxAge,
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Logout セッションを破棄
func (s *Store) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
