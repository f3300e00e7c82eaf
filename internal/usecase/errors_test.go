package usecase

import (
	"errors"
	"net/http"
	"testing"

	repo "corner/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRepo_DuplicateColumnPicksMessage(t *testing.T) {
	cases := map[string]string{
		"restaurant_id": msgRestaurantHasOwner,
		"wilaya_id":     msgWilayaHasManager,
		"email":         msgEmailTaken,
		"username":      msgUsernameTaken,
		"code":          msgWilayaCodeTaken,
		"slug":          "Restaurant slug already exists",
		"":              "Conflict",
	}
	for column, want := range cases {
		err := fromRepo(&repo.DuplicateError{Column: column, Err: errors.New("driver")}, "x")

		he, ok := AsHTTPError(err)
		require.True(t, ok, column)
		assert.Equal(t, http.StatusConflict, he.Status)
		assert.Equal(t, want, he.Message, "column=%q", column)
	}
}

// 列名がメッセージに出ていても、列がわからなければ推測しない
func TestFromRepo_DoesNotGuessFromMessage(t *testing.T) {
	err := fromRepo(&repo.DuplicateError{Err: errors.New("duplicate key on email")}, "x")

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, "Conflict", he.Message)
}
