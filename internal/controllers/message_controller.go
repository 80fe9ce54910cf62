package controllers

import (
	"fmt"
	"net/http"

	"github.com/SketchShifter/warbler_backend/internal/authz"
	"github.com/SketchShifter/warbler_backend/internal/middlewares"
	"github.com/SketchShifter/warbler_backend/internal/monitoring"
	"github.com/SketchShifter/warbler_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// MessageController メッセージに関するコントローラー
type MessageController struct {
	messageService      services.MessageService
	relationshipService services.RelationshipService
	gate                *authz.Gate
}

// NewMessageController MessageControllerを作成
func NewMessageController(
	messageService services.MessageService,
	relationshipService services.RelationshipService,
	gate *authz.Gate,
) *MessageController {
	return &MessageController{
		messageService:      messageService,
		relationshipService: relationshipService,
		gate:                gate,
	}
}

// MessageRequest メッセージ投稿リクエスト
type MessageRequest struct {
	Text      string `json:"text" form:"text" binding:"required,max=140"`
	Timestamp string `json:"timestamp" form:"timestamp"`
}

// HomeQuery タイムラインのクエリパラメータ
type HomeQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Home ログイン中ならタイムライン、未ログインなら最新のメッセージを返す
func (c *MessageController) Home(ctx *gin.Context) {
	var query HomeQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit := query.Limit

	decision, err := c.gate.AuthorizeCreate(ctx.Request.Context(), middlewares.Caller(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	if !decision.Allowed {
		messages, err := c.messageService.Latest(ctx.Request.Context(), limit)
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"messages": messages})
		return
	}

	userID := decision.User.ID
	messages, err := c.messageService.Timeline(ctx.Request.Context(), userID, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	likes, err := c.relationshipService.LikedMessageIDs(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":     decision.User,
		"messages": messages,
		"likes":    likes,
	})
}

// Create 新しいメッセージを投稿
func (c *MessageController) Create(ctx *gin.Context) {
	decision, err := c.gate.AuthorizeCreate(ctx.Request.Context(), middlewares.Caller(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !decision.Allowed {
		respondUnauthorized(ctx, decision)
		return
	}

	var req MessageRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := c.messageService.Post(ctx.Request.Context(), decision.User.ID, req.Text, req.Timestamp); err != nil {
		respondError(ctx, err)
		return
	}
	monitoring.MessagesPosted.Inc()

	ctx.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", decision.User.ID))
}

// Show メッセージを取得
func (c *MessageController) Show(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	message, err := c.messageService.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": message})
}

// Delete メッセージを削除（所有者のみ）
func (c *MessageController) Delete(ctx *gin.Context) {
	caller := middlewares.Caller(ctx)

	// セッションの確認はメッセージの存在確認より先に行う
	decision, err := c.gate.AuthorizeCreate(ctx.Request.Context(), caller)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !decision.Allowed {
		respondUnauthorized(ctx, decision)
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	message, err := c.messageService.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	decision, err = c.gate.AuthorizeDelete(ctx.Request.Context(), caller, message)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !decision.Allowed {
		respondUnauthorized(ctx, decision)
		return
	}

	if err := c.messageService.Delete(ctx.Request.Context(), message.ID); err != nil {
		respondError(ctx, err)
		return
	}
	monitoring.MessagesDeleted.Inc()

	ctx.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", decision.User.ID))
}

// ToggleLike いいねを切り替える
func (c *MessageController) ToggleLike(ctx *gin.Context) {
	decision, err := c.gate.AuthorizeCreate(ctx.Request.Context(), middlewares.Caller(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !decision.Allowed {
		respondUnauthorized(ctx, decision)
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	liked, err := c.relationshipService.ToggleLike(ctx.Request.Context(), decision.User.ID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message_id": id, "liked": liked})
}
