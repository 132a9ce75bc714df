package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate appends a row lock on dialects that support it. SQLite has no
// row locks and serializes writers on its own, so the clause is skipped there.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}

	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
