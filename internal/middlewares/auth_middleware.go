package middlewares

import (
	"strings"

	"github.com/SketchShifter/warbler_backend/internal/authz"
	"github.com/SketchShifter/warbler_backend/internal/services"
	"github.com/SketchShifter/warbler_backend/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ClaimsKey Bearerトークンで認証した場合にクレームを保存するキー
const ClaimsKey = "claims"

// CallerMiddleware 呼び出し元をリクエストのcontextに設定するミドルウェア
// Bearerトークンを優先し、無ければセッションCookieを参照する。
// 認証に失敗してもエラーは返さず匿名として続行する（判定は authz.Gate が行う）
func CallerMiddleware(authService services.AuthService, sessions *session.Store, revocations session.RevocationList) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		caller := authz.Anonymous()

		if tokenString, ok := bearerToken(ctx); ok {
			if claims, err := authService.ValidateToken(tokenString); err == nil && !isRevoked(ctx, revocations, claims) {
				caller = authz.CallerID(claims.UserID)
				ctx.Set(ClaimsKey, claims)
			}
		} else if id, ok := sessions.UserID(ctx.Request); ok {
			caller = authz.CallerID(id)
		}

		ctx.Request = ctx.Request.WithContext(authz.WithCaller(ctx.Request.Context(), caller))
		ctx.Next()
	}
}

// Caller リクエストの呼び出し元を取得
func Caller(ctx *gin.Context) authz.Caller {
	return authz.FromContext(ctx.Request.Context())
}

// TokenClaims Bearerトークンのクレームを取得
func TokenClaims(ctx *gin.Context) (*services.Claims, bool) {
	v, ok := ctx.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*services.Claims)
	return claims, ok
}

func bearerToken(ctx *gin.Context) (string, bool) {
	authHeader := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

func isRevoked(ctx *gin.Context, revocations session.RevocationList, claims *services.Claims) bool {
	if revocations == nil {
		return false
	}
	revoked, err := revocations.IsRevoked(ctx.Request.Context(), claims.Id)
	if err != nil {
		// 失効リストが参照できない場合は安全側に倒す
		logrus.WithError(err).Warn("トークン失効リストの確認に失敗しました")
		return true
	}
	return revoked
}
