package repository

import (
	"errors"
	"regexp"
	"strings"

	repo "corner/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// postgresのunique_violation
const pgUniqueViolation = "23505"

// sqlite: "UNIQUE constraint failed: users.email"
var sqliteUnique = regexp.MustCompile(`UNIQUE constraint failed: (\w+)\.(\w+)`)

// GORM/ドライバのエラーをrepositoryのエラーにそろえる
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	if column, ok := uniqueViolation(err); ok {
		return &repo.DuplicateError{Column: column, Err: err}
	}
	return err
}

// unique違反なら、その列名
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return "", false
		}
		return columnFromIndex(pgErr.TableName, pgErr.ConstraintName), true
	}
	if m := sqliteUnique.FindStringSubmatch(err.Error()); m != nil {
		return m[2], true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}
	return "", false
}

// gormのuniqueIndexタグの名前は idx_<table>_<column>
func columnFromIndex(table, index string) string {
	if table == "" {
		return ""
	}
	prefix := "idx_" + table + "_"
	if !strings.HasPrefix(index, prefix) {
		return ""
	}
	return strings.TrimPrefix(index, prefix)
}

// page/limitをそろえる
func pageWindow(page, limit int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}

func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}
