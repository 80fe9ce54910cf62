package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/SketchShifter/warbler_backend/internal/authz"
	"github.com/SketchShifter/warbler_backend/internal/middlewares"
	"github.com/SketchShifter/warbler_backend/internal/models"
	"github.com/SketchShifter/warbler_backend/internal/monitoring"
	"github.com/SketchShifter/warbler_backend/internal/repository"
	"github.com/SketchShifter/warbler_backend/internal/services"
	"github.com/SketchShifter/warbler_backend/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthController 認証に関するコントローラー
type AuthController struct {
	authService services.AuthService
	gate        *authz.Gate
	sessions    *session.Store
	revocations session.RevocationList
}

// NewAuthController AuthControllerを作成
func NewAuthController(authService services.AuthService, gate *authz.Gate, sessions *session.Store, revocations session.RevocationList) *AuthController {
	return &AuthController{
		authService: authService,
		gate:        gate,
		sessions:    sessions,
		revocations: revocations,
	}
}

// SignupRequest ユーザー登録リクエスト
type SignupRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password"`
	ImageURL string `json:"image_url" form:"image_url"`
}

// LoginRequest ログインリクエスト
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// PasswordChangeRequest パスワード変更リクエスト
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" form:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" form:"new_password" binding:"required,min=6"`
}

// AuthResponse 認証レスポンス
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Signup ユーザー登録
func (c *AuthController) Signup(ctx *gin.Context) {
	var req SignupRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := c.authService.Register(ctx.Request.Context(), req.Username, req.Email, req.Password, req.ImageURL)
	if err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "ユーザー名またはメールアドレスは既に使用されています"})
			return
		}
		respondError(ctx, err)
		return
	}
	monitoring.SignupSuccess.Inc()

	c.startSession(ctx, http.StatusCreated, user)
}

// Login ログイン
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := c.authService.Authenticate(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if user == nil {
		monitoring.LoginFailure.Inc()
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "ユーザー名またはパスワードが正しくありません"})
		return
	}
	monitoring.LoginSuccess.Inc()

	c.startSession(ctx, http.StatusOK, user)
}

// Logout セッションを破棄し、Bearerトークンを失効させる
func (c *AuthController) Logout(ctx *gin.Context) {
	c.sessions.Logout(ctx.Writer)

	if claims, ok := middlewares.TokenClaims(ctx); ok && c.revocations != nil {
		ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
		if err := c.revocations.Revoke(ctx.Request.Context(), claims.Id, ttl); err != nil {
			respondError(ctx, err)
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "ログアウトしました"})
}

// GetMe 現在のユーザー情報を取得
func (c *AuthController) GetMe(ctx *gin.Context) {
	decision, err := c.gate.AuthorizeCreate(ctx.Request.Context(), middlewares.Caller(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !decision.Allowed {
		respondUnauthorized(ctx, decision)
		return
	}

	ctx.JSON(http.StatusOK, decision.User)
}

// ChangePassword パスワードを変更
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	decision, err := c.gate.AuthorizeCreate(ctx.Request.Context(), middlewares.Caller(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !decision.Allowed {
		respondUnauthorized(ctx, decision)
		return
	}

	var req PasswordChangeRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.authService.ChangePassword(ctx.Request.Context(), decision.User.ID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "パスワードが正常に変更されました"})
}

// startSession セッションCookieを設定し、トークンと一緒にユーザーを返す
func (c *AuthController) startSession(ctx *gin.Context, status int, user *models.User) {
	// トークンを発行できなかった場合はCookieも書き込まない
	token, _, err := c.authService.GenerateToken(user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := c.sessions.Login(ctx.Writer, user.ID); err != nil {
		respondError(ctx, err)
		return
	}

	logrus.WithField("user_id", user.ID).Info("ログインしました")

	ctx.JSON(status, AuthResponse{
		User:  user,
		Token: token,
	})
}
