package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/dishdash/backend/internal/models"
)

func TestDatabaseSetup(t *testing.T) {
	db := SetupSQLiteDB(t)
	assert.NotNil(t, db)

	user := CreateUser(t, db, "testuser")
	assert.NotZero(t, user.ID)

	recipe := CreateRecipe(t, db, "Test Recipe")
	assert.NotZero(t, recipe.ID)

	var found models.Recipe
	require.NoError(t, db.First(&found, recipe.ID).Error)
	assert.Equal(t, "Test Recipe", found.Name)
	assert.Len(t, found.Ingredients, 2)
}

func TestDatabasesAreIsolated(t *testing.T) {
	first := SetupSQLiteDB(t)
	second := SetupSQLiteDB(t)

	CreateUser(t, first, "alice")

	var count int64
	require.NoError(t, second.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
