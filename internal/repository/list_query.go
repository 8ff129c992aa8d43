package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// Offset returns the number of rows to skip for the current page
func (q *ListQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PerPage
}

// paginate applies ordering and paging. sortable maps accepted sort keys to columns.
func paginate(db *gorm.DB, query *ListQuery, sortable map[string]string, defaultOrder string) *gorm.DB {
	order := defaultOrder
	if column, ok := sortable[query.SortBy]; ok {
		order = column
		if query.SortDir == "desc" {
			order += " DESC"
		}
	}
	db = db.Order(order)

	if query.PerPage > 0 {
		db = db.Offset(query.Offset()).Limit(query.PerPage)
	}
	return db
}

// IsUniqueViolation reports whether err is a unique-key violation. When column is
// not empty the violated constraint name must mention it.
func IsUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && (column == "" || strings.Contains(pgErr.ConstraintName, column))
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
