package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput 入力値のバリデーションエラー（永続化の前に検出）
	ErrInvalidInput = errors.New("入力値が不正です")
	// ErrInvalidCredentials パスワードの再確認に失敗
	ErrInvalidCredentials = errors.New("パスワードが正しくありません")
	// ErrStorageDisabled 画像ストレージが設定されていない
	ErrStorageDisabled = errors.New("画像ストレージが設定されていません")
)

// invalidInput 詳細メッセージ付きで ErrInvalidInput をラップする
func invalidInput(detail string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, detail)
}
