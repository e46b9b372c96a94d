package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate adds a row-level lock where the dialect supports it. SQLite
// (development and tests) serializes writers on its own; Postgres needs
// SELECT ... FOR UPDATE so concurrent bookings against one slot queue up.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}
