package main

import (
	"fmt"
	"os"

	"github.com/SketchShifter/warbler_backend/internal/config"
	"github.com/SketchShifter/warbler_backend/internal/logger"
	"github.com/SketchShifter/warbler_backend/internal/models"
	"github.com/SketchShifter/warbler_backend/internal/seed"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Warblerのデータベースを管理する",
		SilenceUsage: true,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "テーブルを作成・更新する",
			RunE: withDB(func(cmd *cobra.Command, cfg *config.Config, db *gorm.DB) error {
				if err := models.Migrate(db); err != nil {
					return fmt.Errorf("マイグレーションに失敗しました: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "マイグレーションが成功しました")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "テーブルを削除する",
			RunE: withDB(func(cmd *cobra.Command, cfg *config.Config, db *gorm.DB) error {
				if err := models.DropAll(db); err != nil {
					return fmt.Errorf("テーブル削除に失敗しました: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "テーブルの削除が成功しました")
				return nil
			}),
		},
		newSeedCmd(),
	)

	return root
}

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "CSVからユーザー・メッセージ・フォローを投入する",
	}
	cmd.Flags().StringVarP(&file, "dir", "d", "generator", "users.csv / messages.csv / follows.csv のあるディレクトリ")

	cmd.RunE = withDB(func(cmd *cobra.Command, cfg *config.Config, db *gorm.DB) error {
		counts, err := seed.LoadDir(cmd.Context(), db, file, cfg.Auth.BcryptCost)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "投入しました: users=%d messages=%d follows=%d\n",
			counts.Users, counts.Messages, counts.Follows)
		return nil
	})

	return cmd
}

// withDB 設定を読み込んでDBに接続してから処理を実行
func withDB(run func(cmd *cobra.Command, cfg *config.Config, db *gorm.DB) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("設定の読み込みに失敗しました: %w", err)
		}
		logger.Init(cfg.Log)

		db, err := config.InitDB(cfg)
		if err != nil {
			return fmt.Errorf("データベース接続に失敗しました: %w", err)
		}

		return run(cmd, cfg, db)
	}
}
