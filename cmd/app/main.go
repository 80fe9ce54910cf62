package main

import (
	"context"
	"net/http"
	"os"

	"github.com/SketchShifter/warbler_backend/internal/config"
	"github.com/SketchShifter/warbler_backend/internal/logger"
	"github.com/SketchShifter/warbler_backend/internal/routes"
	"github.com/SketchShifter/warbler_backend/internal/services"
	"github.com/SketchShifter/warbler_backend/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 設定をロード
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	logger.Init(cfg.Log)
	logrus.Info("サーバーを起動しています...")

	// Gin モードの設定（環境変数が設定されていない場合はデバッグモード）
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.DebugMode)
	}

	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
		logrus.Debugf("エンドポイント登録: %s %s -> %s (%d handlers)", httpMethod, absolutePath, handlerName, nuHandlers)
	}

	// データベース接続
	db, err := config.InitDB(cfg)
	if err != nil {
		logrus.Fatalf("データベース接続に失敗しました: %v", err)
	}

	deps := routes.Dependencies{}

	// トークン失効リスト（REDIS_ADDR が設定されている場合のみ）
	redisClient, err := session.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		logrus.Fatalf("Redisの初期化に失敗しました: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		deps.Revocations = session.NewRedisRevocationList(redisClient)
	} else {
		logrus.Warn("REDIS_ADDR が未設定のため、ログアウト時のトークン失効は無効です")
	}

	// 画像ストレージ
	deps.Images, err = services.NewImageService(cfg)
	if err != nil {
		logrus.Fatalf("画像ストレージの初期化に失敗しました: %v", err)
	}

	// ルーターをセットアップ
	router := routes.SetupRouter(cfg, db, deps)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// サーバー起動
	logrus.Infof("サーバーを開始しています... PORT: %s", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
