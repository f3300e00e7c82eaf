package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"corner/internal/usecase"

	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeOK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, SuccessResponse{Success: true, Data: data})
}

func errorBody(msg string, fields map[string]string) ErrorResponse {
	return ErrorResponse{Success: false, Error: msg, Fields: fields}
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, errorBody(usecase.ErrUnauthorized.Error(), nil))
	case errors.Is(err, usecase.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorBody(usecase.ErrForbidden.Error(), nil))
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, errorBody(he.Message, he.Fields))
	}

	//500 原因はログだけに残す
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
}

// echo全体のエラーハンドラ（404ルート・500など）も同じ形で返す
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if status < http.StatusInternalServerError {
			if s, ok := he.Message.(string); ok {
				msg = s
			} else {
				msg = http.StatusText(status)
			}
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, errorBody(msg, nil))
}

// validateの前に入力を整えるリクエスト
type normalizer interface {
	normalize()
}

// bodyを読んでvalidateタグを確認
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return usecase.ValidationError("Invalid request body", nil)
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	return c.Validate(req)
}

// 空白だけの任意項目はnil（omitemptyはnilしか飛ばさない）
func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// 空ならdef
func queryInt(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, usecase.ValidationError("invalid "+name, map[string]string{name: "must be a number"})
	}
	return i, nil
}
