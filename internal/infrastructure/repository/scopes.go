package repository

import (
	"strings"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/pagination"
	"gorm.io/gorm"
)

// SearchScope matches search case-insensitively against any of columns.
// An empty search leaves the query untouched.
func SearchScope(search string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		search = strings.TrimSpace(search)
		if search == "" || len(columns) == 0 {
			return db
		}
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = col + " ILIKE ?"
			args[i] = "%" + search + "%"
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

// KeysetScope pages newest first on (timeColumn, id), continuing after cursor.
func KeysetScope(cursor *pagination.Cursor, timeColumn string, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if cursor != nil {
			db = db.Where("("+timeColumn+", id) < (?, ?)", cursor.At, cursor.ID)
		}
		return db.Order(timeColumn + " DESC, id DESC").Limit(limit + 1)
	}
}
