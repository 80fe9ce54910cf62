// Package seed loads users, messages and follows from CSV files.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/SketchShifter/warbler_backend/internal/models"
	"github.com/SketchShifter/warbler_backend/internal/services"

	"gorm.io/gorm"
)

// Counts 投入した件数
type Counts struct {
	Users    int
	Messages int
	Follows  int
}

// LoadDir dir 内の users.csv / messages.csv / follows.csv を投入する
// 平文のパスワードは cost でハッシュ化する
func LoadDir(ctx context.Context, db *gorm.DB, dir string, cost int) (Counts, error) {
	open := func(name string) (*os.File, error) {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%s を開けませんでした: %w", name, err)
		}
		return f, nil
	}

	users, err := open("users.csv")
	if err != nil {
		return Counts{}, err
	}
	defer users.Close()

	messages, err := open("messages.csv")
	if err != nil {
		return Counts{}, err
	}
	defer messages.Close()

	follows, err := open("follows.csv")
	if err != nil {
		return Counts{}, err
	}
	defer follows.Close()

	return Load(ctx, db, cost, users, messages, follows)
}

// Load CSVを読み込んで1つのトランザクションで投入する
func Load(ctx context.Context, db *gorm.DB, cost int, users, messages, follows io.Reader) (Counts, error) {
	var counts Counts

	userRows, err := readRows(users)
	if err != nil {
		return counts, fmt.Errorf("users.csv: %w", err)
	}
	messageRows, err := readRows(messages)
	if err != nil {
		return counts, fmt.Errorf("messages.csv: %w", err)
	}
	followRows, err := readRows(follows)
	if err != nil {
		return counts, fmt.Errorf("follows.csv: %w", err)
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, row := range userRows {
			user, err := userFromRow(row, cost)
			if err != nil {
				return fmt.Errorf("users.csv %d行目: %w", i+2, err)
			}
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			counts.Users++
		}

		for i, row := range messageRows {
			if err := services.ValidateMessageText(row["text"]); err != nil {
				return fmt.Errorf("messages.csv %d行目: %w", i+2, err)
			}
			userID, err := parseUint(row["user_id"])
			if err != nil {
				return fmt.Errorf("messages.csv %d行目: %w", i+2, err)
			}
			message := &models.Message{
				Text:      row["text"],
				Timestamp: row["timestamp"],
				UserID:    userID,
			}
			if err := tx.Create(message).Error; err != nil {
				return err
			}
			counts.Messages++
		}

		for i, row := range followRows {
			follow, err := followFromRow(row)
			if err != nil {
				return fmt.Errorf("follows.csv %d行目: %w", i+2, err)
			}
			if err := tx.Create(follow).Error; err != nil {
				return err
			}
			counts.Follows++
		}
		return nil
	})
	if err != nil {
		return Counts{}, err
	}

	return counts, nil
}

func userFromRow(row map[string]string, cost int) (*models.User, error) {
	password := row["password"]
	// ハッシュ済みでなければハッシュ化する
	if !strings.HasPrefix(password, "$2") {
		hashed, err := services.HashPassword(password, cost)
		if err != nil {
			return nil, err
		}
		password = hashed
	}

	user := &models.User{
		Email:          row["email"],
		Username:       row["username"],
		ImageURL:       valueOr(row["image_url"], models.DefaultImageURL),
		HeaderImageURL: valueOr(row["header_image_url"], models.DefaultHeaderImageURL),
		Bio:            row["bio"],
		Location:       row["location"],
		Password:       password,
	}

	if id := row["id"]; id != "" {
		parsed, err := parseUint(id)
		if err != nil {
			return nil, err
		}
		user.ID = parsed
	}
	return user, nil
}

func followFromRow(row map[string]string) (*models.Follow, error) {
	followerID, err := parseUint(valueOr(row["follower_id"], row["user_following_id"]))
	if err != nil {
		return nil, err
	}
	followeeID, err := parseUint(valueOr(row["followee_id"], row["user_being_followed_id"]))
	if err != nil {
		return nil, err
	}
	return &models.Follow{FollowerID: followerID, FolloweeID: followeeID}, nil
}

// readRows ヘッダー行をキーにした行の一覧を返す
func readRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[strings.TrimSpace(name)] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("数値ではありません: %q", s)
	}
	return uint(v), nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
