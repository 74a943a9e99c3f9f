package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/dishdash/backend/config"
	"github.com/pageza/dishdash/backend/internal/api"
	"github.com/pageza/dishdash/backend/internal/logger"
	"github.com/pageza/dishdash/backend/internal/middleware"
	"github.com/pageza/dishdash/backend/internal/mocks"
	"github.com/pageza/dishdash/backend/internal/models"
	"github.com/pageza/dishdash/backend/internal/service"
	"github.com/pageza/dishdash/backend/internal/testhelpers"
	"github.com/pageza/dishdash/backend/internal/types"
)

type testAPI struct {
	router    *gin.Engine
	db        *gorm.DB
	generator *mocks.MockGenerator
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		APIV1Prefix:        "/api/v1",
		Version:            "1.0.0",
		JWTSecret:          "test-secret",
		JWTAlgorithm:       "HS256",
		AccessTokenTTL:     30 * time.Minute,
		DBQueryTimeout:     5 * time.Second,
		ExposeErrorDetails: true,
	}
	db := testhelpers.SetupSQLiteDB(t)
	generator := &mocks.MockGenerator{}
	log := logger.Discard()

	deps, err := api.NewDependencies(cfg, db, generator, nil, log)
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.RequestIDMiddleware(), middleware.ErrorHandler(log, true))
	router.NoRoute(middleware.NotFound)
	api.RegisterRoutes(router, deps)

	return &testAPI{router: router, db: db, generator: generator}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		data, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func (a *testAPI) login(t *testing.T, username string) string {
	t.Helper()
	rr := a.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": username})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp types.TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.AccessToken
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestRootAndHealth(t *testing.T) {
	a := setupTestAPI(t)

	rr := a.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"DishDash API is running!","version":"1.0.0"}`, rr.Body.String())

	rr = a.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"healthy","database":"connected"}`, rr.Body.String())

	rr = a.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHealthReportsDatabaseFailure(t *testing.T) {
	a := setupTestAPI(t)
	sqlDB, err := a.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	rr := a.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	body := decode[types.ErrorResponse](t, rr)
	assert.True(t, strings.HasPrefix(body.Error, "Database connection failed: "), body.Error)
}

func TestLogin(t *testing.T) {
	a := setupTestAPI(t)

	rr := a.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "alice"})
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[types.TokenResponse](t, rr)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "alice", resp.Username)
	assert.NotEmpty(t, resp.AccessToken)

	rr = a.do(t, http.MethodGet, "/api/v1/me", resp.AccessToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	me := decode[models.User](t, rr)
	assert.Equal(t, "alice", me.Username)
	assert.NotZero(t, me.ID)

	// Logging in again resolves to the same user.
	second := a.login(t, "alice")
	rr = a.do(t, http.MethodGet, "/api/v1/me", second, nil)
	assert.Equal(t, me.ID, decode[models.User](t, rr).ID)
}

func TestLoginValidation(t *testing.T) {
	a := setupTestAPI(t)

	for name, body := range map[string]interface{}{
		"too short":  map[string]string{"username": "al"},
		"too long":   map[string]string{"username": strings.Repeat("a", 51)},
		"missing":    map[string]string{},
		"not json":   "username=alice",
		"wrong type": map[string]int{"username": 12345},
	} {
		t.Run(name, func(t *testing.T) {
			rr := a.do(t, http.MethodPost, "/api/v1/auth/login", "", body)
			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			assert.Equal(t, types.ErrCodeValidationFailed, decode[types.ErrorResponse](t, rr).Code)
		})
	}

	var count int64
	require.NoError(t, a.db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProtectedRoutesRejectUniformly(t *testing.T) {
	a := setupTestAPI(t)
	a.login(t, "alice")

	otherKey, err := service.NewTokenService("another-secret", "HS256", 30*time.Minute)
	require.NoError(t, err)
	foreign, err := otherKey.Issue("alice")
	require.NoError(t, err)

	sameKey, err := service.NewTokenService("test-secret", "HS256", 30*time.Minute)
	require.NoError(t, err)
	expired, err := sameKey.IssueWithTTL("alice", -time.Minute)
	require.NoError(t, err)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/recipes/generate"},
		{http.MethodPost, "/api/v1/recipes/details"},
		{http.MethodGet, "/api/v1/recipes/saved"},
		{http.MethodPost, "/api/v1/recipes/saved/1"},
		{http.MethodDelete, "/api/v1/recipes/saved/1"},
		{http.MethodGet, "/api/v1/me"},
		{http.MethodGet, "/api/v1/me/preferences"},
		{http.MethodPut, "/api/v1/me/preferences"},
	}
	for _, route := range routes {
		for _, token := range []string{"", "garbage", foreign, expired} {
			rr := a.do(t, route.method, route.path, token, nil)
			assert.Equal(t, http.StatusForbidden, rr.Code, route.path)
			assert.JSONEq(t, `{"error":"Not authenticated","code":"NOT_AUTHENTICATED"}`, rr.Body.String())
		}
	}
}

func TestSavedRecipesFlow(t *testing.T) {
	a := setupTestAPI(t)
	alice := a.login(t, "alice")
	bob := a.login(t, "bob")
	first := testhelpers.CreateRecipe(t, a.db, "A")
	second := testhelpers.CreateRecipe(t, a.db, "B")

	rr := a.do(t, http.MethodPost, fmt.Sprintf("/api/v1/recipes/saved/%d", first.ID), alice, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	saved := decode[models.SavedRecipe](t, rr)
	assert.Equal(t, "A", saved.Recipe.Name)

	rr = a.do(t, http.MethodPost, fmt.Sprintf("/api/v1/recipes/saved/%d", first.ID), alice, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Recipe already saved by user", decode[types.ErrorResponse](t, rr).Error)

	rr = a.do(t, http.MethodPost, fmt.Sprintf("/api/v1/recipes/saved/%d", second.ID), alice, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = a.do(t, http.MethodGet, "/api/v1/recipes/saved", alice, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[[]models.SavedRecipe](t, rr)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Recipe.Name)
	assert.Equal(t, "A", list[1].Recipe.Name)

	// Bob sees none of Alice's rows and cannot remove them.
	rr = a.do(t, http.MethodGet, "/api/v1/recipes/saved", bob, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = a.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/recipes/saved/%d", first.ID), bob, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Recipe not found in saved recipes", decode[types.ErrorResponse](t, rr).Error)

	rr = a.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/recipes/saved/%d", first.ID), alice, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Recipe unsaved successfully"}`, rr.Body.String())

	rr = a.do(t, http.MethodGet, "/api/v1/recipes/saved", alice, nil)
	assert.Len(t, decode[[]models.SavedRecipe](t, rr), 1)
}

func TestSaveErrors(t *testing.T) {
	a := setupTestAPI(t)
	alice := a.login(t, "alice")

	rr := a.do(t, http.MethodPost, "/api/v1/recipes/saved/999", alice, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Recipe not found", decode[types.ErrorResponse](t, rr).Error)

	for _, id := range []string{"abc", "0", "-1"} {
		rr = a.do(t, http.MethodPost, "/api/v1/recipes/saved/"+id, alice, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, id)
	}
}

func TestPreferences(t *testing.T) {
	a := setupTestAPI(t)
	alice := a.login(t, "alice")
	bob := a.login(t, "bob")

	rr := a.do(t, http.MethodGet, "/api/v1/me/preferences", alice, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"dietary_restrictions":[],"allergies":[],"cuisine_preferences":[]}`, rr.Body.String())

	rr = a.do(t, http.MethodPut, "/api/v1/me/preferences", alice,
		`{"dietary_restrictions":["vegan"],"cooking_time_preference":30}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = a.do(t, http.MethodPut, "/api/v1/me/preferences", alice, `{"allergies":["nuts"]}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = a.do(t, http.MethodGet, "/api/v1/me/preferences", alice, nil)
	prefs := decode[models.UserPreferences](t, rr)
	assert.Equal(t, []string{"vegan"}, []string(prefs.DietaryRestrictions))
	assert.Equal(t, []string{"nuts"}, []string(prefs.Allergies))
	require.NotNil(t, prefs.CookingTimePreference)
	assert.Equal(t, 30, *prefs.CookingTimePreference)

	rr = a.do(t, http.MethodGet, "/api/v1/me/preferences", bob, nil)
	assert.JSONEq(t, `{"dietary_restrictions":[],"allergies":[],"cuisine_preferences":[]}`, rr.Body.String())

	for _, body := range []string{`{"difficulty_preference":11}`, `{"cooking_time_preference":0}`, `{"allergies":"nuts"}`} {
		rr = a.do(t, http.MethodPut, "/api/v1/me/preferences", alice, body)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, body)
	}
}

func TestPreferencesListsNeverNull(t *testing.T) {
	a := setupTestAPI(t)
	alice := a.login(t, "alice")

	rr := a.do(t, http.MethodPut, "/api/v1/me/preferences", alice, `{"allergies":["shellfish"]}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	put := decode[map[string]interface{}](t, rr)

	rr = a.do(t, http.MethodGet, "/api/v1/me/preferences", alice, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	get := decode[map[string]interface{}](t, rr)

	for _, body := range []map[string]interface{}{put, get} {
		assert.Equal(t, []interface{}{}, body["dietary_restrictions"])
		assert.Equal(t, []interface{}{}, body["cuisine_preferences"])
		assert.Equal(t, []interface{}{"shellfish"}, body["allergies"])
		assert.Nil(t, body["cooking_time_preference"])
	}

	// Clearing a list stores null but still renders [].
	rr = a.do(t, http.MethodPut, "/api/v1/me/preferences", alice, `{"allergies":null}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []interface{}{}, decode[map[string]interface{}](t, rr)["allergies"])

	var user models.User
	require.NoError(t, a.db.Where("username = ?", "alice").First(&user).Error)
	var stored models.UserPreferences
	require.NoError(t, a.db.Where("user_id = ?", user.ID).First(&stored).Error)
	assert.Nil(t, stored.Allergies)
	assert.Nil(t, stored.DietaryRestrictions)
}

func TestGenerate(t *testing.T) {
	a := setupTestAPI(t)
	alice := a.login(t, "alice")

	rr := a.do(t, http.MethodPut, "/api/v1/me/preferences", alice, `{"allergies":["peanuts"]}`)
	require.Equal(t, http.StatusOK, rr.Code)

	a.generator.On("Complete", mock.Anything, mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "egg, cheese") && strings.Contains(prompt, "Avoid these allergens: peanuts")
	})).Return(`{"recipes":[{"name":"Omelette","description":"Fluffy","cooking_time":10,"difficulty":2}]}`, nil).Once()

	rr = a.do(t, http.MethodPost, "/api/v1/recipes/generate", alice, map[string]interface{}{
		"ingredients": []string{"egg", "cheese"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"recipes":[{"name":"Omelette","description":"Fluffy","cooking_time":10,"difficulty":2}]}`, rr.Body.String())
	a.generator.AssertExpectations(t)
}

func TestGenerateValidation(t *testing.T) {
	a := setupTestAPI(t)
	alice := a.login(t, "alice")

	for _, body := range []string{
		`{}`,
		`{"ingredients":[]}`,
		`{"ingredients":["egg"],"servings":0}`,
		`{"ingredients":["egg"],"difficulty":11}`,
		`{"ingredients":["egg"],"cooking_time":0}`,
	} {
		rr := a.do(t, http.MethodPost, "/api/v1/recipes/generate", alice, body)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, body)
	}
	a.generator.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateNoResults(t *testing.T) {
	a := setupTestAPI(t)
	alice := a.login(t, "alice")
	a.generator.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(`{"recipes":[]}`, nil).Once()
	a.generator.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("dial tcp: refused")).Once()

	rr := a.do(t, http.MethodPost, "/api/v1/recipes/generate", alice, `{"ingredients":["egg"]}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	body := decode[types.ErrorResponse](t, rr)
	assert.Equal(t, "No recipes found for the given ingredients", body.Error)
	assert.Equal(t, types.ErrCodeNoResults, body.Code)

	rr = a.do(t, http.MethodPost, "/api/v1/recipes/generate", alice, `{"ingredients":["egg"]}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	body = decode[types.ErrorResponse](t, rr)
	assert.Equal(t, "No recipes found for the given ingredients", body.Error)
	assert.Equal(t, types.ErrCodeGeneratorUnavailable, body.Code)
}

func TestDetails(t *testing.T) {
	a := setupTestAPI(t)
	alice := a.login(t, "alice")
	stored := testhelpers.CreateRecipe(t, a.db, "Garlic Pasta")

	rr := a.do(t, http.MethodPost, "/api/v1/recipes/details", alice, `{"recipe_name":"Garlic Pasta","servings":6}`)
	require.Equal(t, http.StatusOK, rr.Code)
	recipe := decode[models.Recipe](t, rr)
	assert.Equal(t, stored.ID, recipe.ID)
	assert.Equal(t, 2, recipe.Servings)
	a.generator.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)

	a.generator.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"name":"Shakshuka","ingredients":["eggs"],"instructions":["Simmer","Crack eggs"]}`, nil).Once()

	rr = a.do(t, http.MethodPost, "/api/v1/recipes/details", alice, `{"recipe_name":"Shakshuka"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	generated := decode[models.Recipe](t, rr)
	assert.NotZero(t, generated.ID)
	assert.Equal(t, "Simmer\nCrack eggs", generated.Instructions)
	assert.Equal(t, []models.Ingredient{{Name: "eggs", Quantity: "as needed"}}, []models.Ingredient(generated.Ingredients))

	// The generated recipe can be saved like any stored one.
	rr = a.do(t, http.MethodPost, fmt.Sprintf("/api/v1/recipes/saved/%d", generated.ID), alice, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestDetailsFailures(t *testing.T) {
	a := setupTestAPI(t)
	alice := a.login(t, "alice")
	a.generator.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("not json", nil).Once()

	rr := a.do(t, http.MethodPost, "/api/v1/recipes/details", alice, `{"recipe_name":"Mystery"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Failed to generate recipe details", decode[types.ErrorResponse](t, rr).Error)

	for _, body := range []string{`{}`, `{"recipe_name":""}`, fmt.Sprintf(`{"recipe_name":%q}`, strings.Repeat("x", 201))} {
		rr = a.do(t, http.MethodPost, "/api/v1/recipes/details", alice, body)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	a := setupTestAPI(t)

	rr := a.do(t, http.MethodGet, "/api/v1/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, types.ErrCodeNotFound, decode[types.ErrorResponse](t, rr).Code)
}
