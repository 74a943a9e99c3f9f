// Package models holds the gorm schema of the relational store.
package models

// All returns every model in migration order.
func All() []any {
	return []any{
		&User{},
		&Recipe{},
		&SavedRecipe{},
		&UserPreferences{},
	}
}
