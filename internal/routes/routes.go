package routes

import (
	"github.com/SketchShifter/warbler_backend/internal/authz"
	"github.com/SketchShifter/warbler_backend/internal/config"
	"github.com/SketchShifter/warbler_backend/internal/controllers"
	"github.com/SketchShifter/warbler_backend/internal/middlewares"
	"github.com/SketchShifter/warbler_backend/internal/monitoring"
	"github.com/SketchShifter/warbler_backend/internal/repository"
	"github.com/SketchShifter/warbler_backend/internal/services"
	"github.com/SketchShifter/warbler_backend/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Version アプリケーションバージョン
const Version = "1.0.0"

// Dependencies 外部サービスへの依存（未設定なら機能を無効化）
type Dependencies struct {
	Revocations session.RevocationList
	Images      services.ImageService
}

// SetupRouter ルーターを設定
func SetupRouter(cfg *config.Config, db *gorm.DB, deps Dependencies) *gin.Engine {
	r := gin.New()

	// ミドルウェアを設定
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.ErrorMiddleware())
	r.Use(middlewares.CORSMiddleware())
	r.Use(monitoring.Middleware())

	// リポジトリを作成
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	// サービスを作成
	authService := services.NewAuthService(userRepo, cfg)
	messageService := services.NewMessageService(messageRepo, followRepo)
	relationshipService := services.NewRelationshipService(followRepo, likeRepo, messageRepo)
	userService := services.NewUserService(userRepo, messageRepo, followRepo, likeRepo, deps.Images, cfg.Storage)

	var pinger services.Pinger
	if sqlDB, err := db.DB(); err == nil {
		pinger = sqlDB
	} else {
		logrus.WithError(err).Warn("SQLDBインスタンスの取得に失敗しました")
	}
	healthService := services.NewHealthService(pinger, Version)

	gate := authz.NewGate(userRepo)
	sessions := session.NewStore(cfg.Session)

	// コントローラーを作成
	authController := controllers.NewAuthController(authService, gate, sessions, deps.Revocations)
	messageController := controllers.NewMessageController(messageService, relationshipService, gate)
	userController := controllers.NewUserController(userService, relationshipService, gate, sessions)
	healthController := controllers.NewHealthController(healthService)

	// 呼び出し元の特定（拒否はしない）
	r.Use(middlewares.CallerMiddleware(authService, sessions, deps.Revocations))

	r.GET("/health", healthController.Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/", messageController.Home)

	// 認証ルート
	r.POST("/signup", authController.Signup)
	r.POST("/login", authController.Login)
	r.POST("/logout", authController.Logout)
	r.GET("/me", authController.GetMe)

	// メッセージルート
	messages := r.Group("/messages")
	{
		messages.POST("/new", messageController.Create)
		messages.GET("/:id", messageController.Show)
		messages.POST("/:id/delete", messageController.Delete)
		messages.POST("/:id/like", messageController.ToggleLike)
	}

	// ユーザールート
	users := r.Group("/users")
	{
		users.GET("", userController.List)
		users.GET("/:id", userController.Show)
		users.GET("/:id/following", userController.Following)
		users.GET("/:id/followers", userController.Followers)
		users.GET("/:id/likes", userController.Likes)
		users.POST("/:id/follow", userController.Follow)
		users.POST("/:id/unfollow", userController.Unfollow)
	}

	// 自分のアカウント
	account := r.Group("/account")
	{
		account.PUT("/profile", userController.UpdateProfile)
		account.POST("/password", authController.ChangePassword)
		account.POST("/image", userController.UploadImage)
		account.POST("/delete", userController.DeleteAccount)
	}

	return r
}
