package mock

import (
	"context"

	"github.com/SketchShifter/warbler_backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Password モックユーザー共通のパスワード
const Password = "password"

// モックユーザー
var Users = []models.User{
	{
		ID:             1,
		Email:          "john@example.com",
		Username:       "johndoe",
		ImageURL:       models.DefaultImageURL,
		HeaderImageURL: models.DefaultHeaderImageURL,
		Bio:            "Bird watcher",
		Location:       "Tokyo",
	},
	{
		ID:             2,
		Email:          "jane@example.com",
		Username:       "janesmith",
		ImageURL:       models.DefaultImageURL,
		HeaderImageURL: models.DefaultHeaderImageURL,
		Bio:            "Early riser",
		Location:       "Osaka",
	},
	{
		ID:             3,
		Email:          "bob@example.com",
		Username:       "bobby",
		ImageURL:       models.DefaultImageURL,
		HeaderImageURL: models.DefaultHeaderImageURL,
	},
}

// モックメッセージ
var Messages = []models.Message{
	{ID: 1, Text: "Hello, warblers!", Timestamp: "01 January 2024", UserID: 1},
	{ID: 2, Text: "Good morning", Timestamp: "02 January 2024", UserID: 2},
	{ID: 3, Text: "Anyone out there?", Timestamp: "03 January 2024", UserID: 3},
}

// モックフォロー（john -> jane）
var Follows = []models.Follow{
	{FollowerID: 1, FolloweeID: 2},
}

// Load モックデータを投入（パスワードは cost でハッシュ化する）
func Load(ctx context.Context, db *gorm.DB, cost int) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(Password), cost)
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range Users {
			user := u
			user.Password = string(hashed)
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
		}
		for _, m := range Messages {
			message := m
			if err := tx.Create(&message).Error; err != nil {
				return err
			}
		}
		for _, f := range Follows {
			follow := f
			if err := tx.Create(&follow).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
