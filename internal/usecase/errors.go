package usecase

import (
	"errors"
	"fmt"
	"net/http"

	repo "corner/internal/repository"
)

var (
	//401 セッションがない/無効
	ErrUnauthorized = errors.New("Unauthorized")
	//403 ロールが足りない
	ErrForbidden = errors.New("Forbidden")

	//ログイン失敗（ユーザーなし・パスワード違いを区別しない）
	ErrInvalidCredentials = NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	ErrAccountInactive    = NewHTTPError(http.StatusForbidden, "Account is inactive")
)

// ハンドラでstatusとメッセージに変換されるエラー
type HTTPError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// 400。fieldsは項目ごとのメッセージ
func ValidationError(message string, fields map[string]string) error {
	return &HTTPError{Status: http.StatusBadRequest, Message: message, Fields: fields}
}

func NotFoundError(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

func ConflictError(message string) error {
	return NewHTTPError(http.StatusConflict, message)
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// unique違反を、どの項目の重複かわかるメッセージにする
func duplicateConflict(err error) error {
	var dup *repo.DuplicateError
	if !errors.As(err, &dup) {
		return ConflictError("Conflict")
	}
	switch dup.Column {
	case "restaurant_id":
		return ConflictError(msgRestaurantHasOwner)
	case "wilaya_id":
		return ConflictError(msgWilayaHasManager)
	case "email":
		return ConflictError(msgEmailTaken)
	case "username":
		return ConflictError(msgUsernameTaken)
	case "slug":
		return ConflictError("Restaurant slug already exists")
	case "code":
		return ConflictError(msgWilayaCodeTaken)
	}
	return ConflictError("Conflict")
}

// repositoryのエラーをHTTPErrorへ。それ以外はそのまま（500）
func fromRepo(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return NotFoundError(notFound)
	case errors.Is(err, repo.ErrDuplicate):
		return duplicateConflict(err)
	}
	return err
}
