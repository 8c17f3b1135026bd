package db

import (
	"strings"

	"gorm.io/gorm"
)

// NotDeleted filters soft-deleted rows for raw Table() queries where gorm
// does not apply the deleted_at clause itself.
func NotDeleted(alias ...string) func(*gorm.DB) *gorm.DB {
	col := "deleted_at"
	if len(alias) > 0 && alias[0] != "" {
		col = alias[0] + ".deleted_at"
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(col + " IS NULL")
	}
}

// Paginate applies LIMIT/OFFSET for a 1-based page.
func Paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 || pageSize < 1 {
			return db
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// TenantScope restricts rows to a tenant when tenantID is set.
func TenantScope(column string, tenantID *uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == nil {
			return db
		}
		return db.Where(column+" = ?", *tenantID)
	}
}

// OrderBy applies a whitelisted sort. Unknown fields fall back to fallback.
func OrderBy(allowed map[string]string, field, order, fallback string, tiebreak ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		col, ok := allowed[strings.ToLower(field)]
		if !ok {
			db = db.Order(fallback)
		} else {
			dir := "DESC"
			if strings.EqualFold(order, "asc") {
				dir = "ASC"
			}
			db = db.Order(col + " " + dir)
		}
		// Tiebreaks go after the requested sort; chaining Order outside the
		// scope would put them first.
		for _, t := range tiebreak {
			db = db.Order(t)
		}
		return db
	}
}

// LikeEscape is the escape character used by LikePattern. Backslash is
// avoided because sqlite and mysql disagree on its meaning in string literals.
const LikeEscape = "!"

// LikePattern escapes the LIKE wildcards in s and wraps it in %.
func LikePattern(s string) string {
	r := strings.NewReplacer(LikeEscape, LikeEscape+LikeEscape, `%`, LikeEscape+`%`, `_`, LikeEscape+`_`)
	return "%" + r.Replace(s) + "%"
}

// Search matches term as a substring of any of columns. A blank term is a no-op.
func Search(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		like := LikePattern(term)
		parts := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, c := range columns {
			parts = append(parts, c+" LIKE ? ESCAPE '"+LikeEscape+"'")
			args = append(args, like)
		}
		return db.Where("("+strings.Join(parts, " OR ")+")", args...)
	}
}
