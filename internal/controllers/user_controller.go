package controllers

import (
	"context"
	"net/http"

	"github.com/SketchShifter/warbler_backend/internal/authz"
	"github.com/SketchShifter/warbler_backend/internal/middlewares"
	"github.com/SketchShifter/warbler_backend/internal/services"
	"github.com/SketchShifter/warbler_backend/internal/session"

	"github.com/gin-gonic/gin"
)

// UserController ユーザーに関するコントローラー
type UserController struct {
	userService         services.UserService
	relationshipService services.RelationshipService
	gate                *authz.Gate
	sessions            *session.Store
}

// NewUserController UserControllerを作成
func NewUserController(
	userService services.UserService,
	relationshipService services.RelationshipService,
	gate *authz.Gate,
	sessions *session.Store,
) *UserController {
	return &UserController{
		userService:         userService,
		relationshipService: relationshipService,
		gate:                gate,
		sessions:            sessions,
	}
}

// ProfileRequest プロフィール更新リクエスト
type ProfileRequest struct {
	Username       string `json:"username" form:"username"`
	Email          string `json:"email" form:"email" binding:"omitempty,email"`
	ImageURL       string `json:"image_url" form:"image_url"`
	HeaderImageURL string `json:"header_image_url" form:"header_image_url"`
	Bio            string `json:"bio" form:"bio"`
	Location       string `json:"location" form:"location"`
	Password       string `json:"password" form:"password" binding:"required"`
}

// List ユーザー一覧（?q= でユーザー名を検索）
func (c *UserController) List(ctx *gin.Context) {
	users, err := c.userService.List(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"users": users})
}

// Show プロフィールを取得
func (c *UserController) Show(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	profile, err := c.userService.Profile(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// Following フォロー中のユーザー一覧
func (c *UserController) Following(ctx *gin.Context) {
	id, ok := c.existingUserID(ctx)
	if !ok {
		return
	}

	users, err := c.relationshipService.Following(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"users": users})
}

// Followers フォロワー一覧
func (c *UserController) Followers(ctx *gin.Context) {
	id, ok := c.existingUserID(ctx)
	if !ok {
		return
	}

	users, err := c.relationshipService.Followers(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"users": users})
}

// Likes いいねしたメッセージ一覧
func (c *UserController) Likes(ctx *gin.Context) {
	id, ok := c.existingUserID(ctx)
	if !ok {
		return
	}

	messages, err := c.relationshipService.Likes(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"messages": messages})
}

// Follow ユーザーをフォロー
func (c *UserController) Follow(ctx *gin.Context) {
	c.mutateFollow(ctx, c.relationshipService.Follow)
}

// Unfollow フォローを解除
func (c *UserController) Unfollow(ctx *gin.Context) {
	c.mutateFollow(ctx, c.relationshipService.Unfollow)
}

func (c *UserController) mutateFollow(ctx *gin.Context, mutate func(context.Context, uint, uint) error) {
	decision, ok := c.authorize(ctx)
	if !ok {
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := mutate(ctx.Request.Context(), decision.User.ID, id); err != nil {
		respondError(ctx, err)
		return
	}

	following, err := c.relationshipService.Following(ctx.Request.Context(), decision.User.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"following": following})
}

// UpdateProfile 自分のプロフィールを更新
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	decision, ok := c.authorize(ctx)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), decision.User.ID, req.Password, services.ProfileUpdate{
		Username:       req.Username,
		Email:          req.Email,
		ImageURL:       req.ImageURL,
		HeaderImageURL: req.HeaderImageURL,
		Bio:            req.Bio,
		Location:       req.Location,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// UploadImage プロフィール画像またはヘッダー画像をアップロード
func (c *UserController) UploadImage(ctx *gin.Context) {
	decision, ok := c.authorize(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "画像ファイルが必要です"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "画像ファイルを開けませんでした"})
		return
	}
	defer file.Close()

	kind := services.ImageKind(ctx.DefaultPostForm("kind", string(services.ImageKindProfile)))

	user, err := c.userService.UploadImage(ctx.Request.Context(), decision.User.ID, kind, file, fileHeader.Filename, fileHeader.Size)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// DeleteAccount 自分のアカウントを削除してログアウト
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	decision, ok := c.authorize(ctx)
	if !ok {
		return
	}

	if err := c.userService.DeleteAccount(ctx.Request.Context(), decision.User.ID); err != nil {
		respondError(ctx, err)
		return
	}

	c.sessions.Logout(ctx.Writer)
	ctx.JSON(http.StatusOK, gin.H{"message": "アカウントを削除しました"})
}

// authorize ログイン中のユーザーを確認（拒否された場合は応答済み）
func (c *UserController) authorize(ctx *gin.Context) (authz.Decision, bool) {
	decision, err := c.gate.AuthorizeCreate(ctx.Request.Context(), middlewares.Caller(ctx))
	if err != nil {
		respondError(ctx, err)
		return decision, false
	}
	if !decision.Allowed {
		respondUnauthorized(ctx, decision)
		return decision, false
	}
	return decision, true
}

// existingUserID パスのユーザーIDを解析し、存在を確認
func (c *UserController) existingUserID(ctx *gin.Context) (uint, bool) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return 0, false
	}

	if _, err := c.userService.GetByID(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return 0, false
	}
	return id, true
}
