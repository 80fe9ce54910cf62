package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrNotFound レコードが存在しない
	ErrNotFound = errors.New("レコードが見つかりません")
	// ErrConstraintViolation 一意制約・外部キー制約違反（コミット時に検出）
	ErrConstraintViolation = errors.New("制約違反です")
)

// MySQLのエラー番号
const (
	mysqlDuplicateEntry     = 1062
	mysqlRowIsReferenced    = 1451
	mysqlNoReferencedRow    = 1452
	mysqlNoReferencedRowOld = 1216
)

// translateError ドライバー固有のエラーをリポジトリのエラーに変換
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if isConstraintViolation(err) {
		return &constraintError{cause: err}
	}
	return err
}

func isConstraintViolation(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry, mysqlRowIsReferenced, mysqlNoReferencedRow, mysqlNoReferencedRowOld:
			return true
		}
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// SQLSTATE class 23: integrity constraint violation
		return strings.HasPrefix(pgErr.Code, "23")
	}

	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		return sqErr.Code == sqlite3.ErrConstraint
	}

	return false
}

// constraintError 元のドライバーエラーを保持したまま ErrConstraintViolation として扱う
type constraintError struct {
	cause error
}

func (e *constraintError) Error() string {
	return ErrConstraintViolation.Error() + ": " + e.cause.Error()
}

func (e *constraintError) Is(target error) bool {
	return target == ErrConstraintViolation
}

func (e *constraintError) Unwrap() error {
	return e.cause
}
