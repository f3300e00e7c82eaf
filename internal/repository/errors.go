package repository

import (
	"errors"
	"fmt"
)

var (
	// 対象がない
	ErrNotFound = errors.New("not found")

	// unique制約違反（username / email / 割り当て / slug / code）
	ErrDuplicate = errors.New("duplicate")
)

// どの列のunique違反か。errors.Is(err, ErrDuplicate) が通る
type DuplicateError struct {
	Column string // 例: "username", "restaurant_id"。わからなければ空
	Err    error
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s: %v", e.Column, e.Err)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

func (e *DuplicateError) Unwrap() error {
	return e.Err
}
