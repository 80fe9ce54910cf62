package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SketchShifter/warbler_backend/internal/config"
	"github.com/SketchShifter/warbler_backend/internal/models"
	"github.com/SketchShifter/warbler_backend/internal/repository"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 認証に関するサービスインターフェース
type AuthService interface {
	Signup(username, email, password, imageURL string) (*models.User, error)
	Commit(ctx context.Context, users ...*models.User) error
	Register(ctx context.Context, username, email, password, imageURL string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
	GenerateToken(userID uint) (string, *Claims, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// authService AuthServiceの実装
type authService struct {
	userRepo repository.UserRepository
	config   *config.Config
}

// NewAuthService AuthServiceを作成
func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		config:   cfg,
	}
}

// Claims JWTのペイロード
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.StandardClaims
}

// Signup パスワードをハッシュ化した未保存のユーザーを作成
// 一意性はここでは確認せず、Commit 時に制約違反として検出される
func (s *authService) Signup(username, email, password, imageURL string) (*models.User, error) {
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(username) == "" {
		return nil, invalidInput("ユーザー名は必須です")
	}
	if strings.TrimSpace(email) == "" {
		return nil, invalidInput("メールアドレスは必須です")
	}

	hashedPassword, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	return &models.User{
		Username:       username,
		Email:          email,
		Password:       hashedPassword,
		ImageURL:       imageURL,
		HeaderImageURL: models.DefaultHeaderImageURL,
	}, nil
}

// Commit ユーザーをまとめて保存
func (s *authService) Commit(ctx context.Context, users ...*models.User) error {
	return s.userRepo.Create(ctx, users...)
}

// Register ユーザー登録（Signup + Commit）
func (s *authService) Register(ctx context.Context, username, email, password, imageURL string) (*models.User, error) {
	user, err := s.Signup(username, email, password, imageURL)
	if err != nil {
		return nil, err
	}

	if err := s.Commit(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate ユーザー名とパスワードを検証
// ユーザーが存在しない、またはパスワードが違う場合は nil, nil を返す
func (s *authService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !checkPassword(user.Password, password) {
		return nil, nil
	}

	return user, nil
}

// ChangePassword ユーザーのパスワードを変更
func (s *authService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	// 現在のパスワードを検証
	if !checkPassword(user.Password, currentPassword) {
		return ErrInvalidCredentials
	}

	hashedPassword, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}

// GenerateToken JWTトークンを生成
func (s *authService) GenerateToken(userID uint) (string, *Claims, error) {
	now := time.Now()

	claims := &Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			ExpiresAt: now.Add(s.config.Auth.TokenExpiry).Unix(),
			IssuedAt:  now.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", nil, err
	}

	return tokenString, claims, nil
}

// ValidateToken トークンを検証
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("予期しない署名方式です")
		}
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("無効なトークンです")
	}

	return claims, nil
}

func (s *authService) hashPassword(password string) (string, error) {
	return HashPassword(password, s.config.Auth.BcryptCost)
}

// MaxPasswordBytes bcryptが扱えるパスワードの最大バイト数（超過分は切り捨てられる）
const MaxPasswordBytes = 72

// ValidatePassword 空のパスワードと72バイトを超えるパスワードを拒否する
func ValidatePassword(password string) error {
	if password == "" {
		return invalidInput("パスワードは必須です")
	}
	if len(password) > MaxPasswordBytes {
		return invalidInput("パスワードは72バイト以内で入力してください")
	}
	return nil
}

// HashPassword パスワードをハッシュ化（範囲外のcostはデフォルト値を使う）
func HashPassword(password string, cost int) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) bool {
	// 切り捨てにより別のパスワードが一致しないようにする
	if len(password) > MaxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
