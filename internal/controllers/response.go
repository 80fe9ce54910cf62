package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SketchShifter/warbler_backend/internal/authz"
	"github.com/SketchShifter/warbler_backend/internal/monitoring"
	"github.com/SketchShifter/warbler_backend/internal/repository"
	"github.com/SketchShifter/warbler_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// parseID パスパラメータのIDを解析
func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "無効なIDです"})
		return 0, false
	}
	return uint(id), true
}

// respondError サービス層のエラーをHTTPステータスに変換して返す
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrStorageDisabled):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "見つかりません"})
	case errors.Is(err, repository.ErrConstraintViolation):
		ctx.JSON(http.StatusConflict, gin.H{"error": "既に使用されているか、参照先が存在しません"})
	default:
		logrus.WithError(err).WithField("path", ctx.Request.URL.Path).Error("リクエストの処理に失敗しました")
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "サーバーエラーが発生しました"})
	}
}

// respondUnauthorized 認可が拒否された場合の応答（何も変更せず、メッセージのみ返す）
func respondUnauthorized(ctx *gin.Context, decision authz.Decision) {
	monitoring.AuthorizationDenied.WithLabelValues(string(decision.Reason)).Inc()
	ctx.JSON(http.StatusOK, gin.H{
		"error":  authz.UnauthorizedMessage,
		"reason": decision.Reason,
	})
}
