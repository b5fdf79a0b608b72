package favorite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupTestRouter(t *testing.T) (*gin.Engine, *fixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := setupFixture(t)
	h := NewHandler(f.repo)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if raw := c.GetHeader("X-Test-User-ID"); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				c.Set("user_id", id)
			}
		}
		c.Next()
	})

	v1 := r.Group("/api/v1")
	h.RegisterRoutes(v1)
	return r, f
}

func doRequest(r http.Handler, method, path string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(nil))
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-Test-User-ID", strconv.FormatInt(userID, 10))
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}

func TestFavoriteEndpoints_Unauthorized(t *testing.T) {
	r, f := setupTestRouter(t)
	alice := f.users["alice"]
	target := fmt.Sprintf("/api/v1/favorites/user/%d", alice.ID)

	cases := []struct {
		method string
		path   string
	}{
		{method: http.MethodGet, path: "/api/v1/favorites"},
		{method: http.MethodPost, path: target},
		{method: http.MethodDelete, path: target},
		{method: http.MethodGet, path: target + "/check"},
	}

	for _, tc := range cases {
		rr := doRequest(r, tc.method, tc.path, 0)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", tc.method, tc.path)
		env := decode(t, rr)
		assert.False(t, env.Success)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	}
}

func TestAddFavoriteEndpoint(t *testing.T) {
	r, f := setupTestRouter(t)
	alice, chris := f.users["alice"], f.users["chris"]
	path := fmt.Sprintf("/api/v1/favorites/user/%d", alice.ID)

	rr := doRequest(r, http.MethodPost, path, chris.ID)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	env := decode(t, rr)
	assert.True(t, env.Success)
	var fav FavoriteResponse
	require.NoError(t, json.Unmarshal(env.Data, &fav))
	assert.Equal(t, chris.ID, fav.UserID)
	assert.Equal(t, alice.ID, fav.ObjectID)
	assert.Equal(t, "user", fav.Type)
	assert.Equal(t, fmt.Sprintf("chris likes user#%d", alice.ID), fav.Description)

	rr = doRequest(r, http.MethodPost, path, chris.ID)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "CONFLICT", decode(t, rr).Error.Code)
}

func TestAddFavoriteEndpoint_BadTargets(t *testing.T) {
	r, f := setupTestRouter(t)
	chris := f.users["chris"]

	cases := []struct {
		path   string
		status int
		code   string
	}{
		{path: "/api/v1/favorites/user/abc", status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{path: "/api/v1/favorites/user/0", status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{path: "/api/v1/favorites/planet/1", status: http.StatusNotFound, code: "NOT_FOUND"},
		{path: "/api/v1/favorites/user/9999", status: http.StatusNotFound, code: "NOT_FOUND"},
	}

	for _, tc := range cases {
		rr := doRequest(r, http.MethodPost, tc.path, chris.ID)
		assert.Equal(t, tc.status, rr.Code, tc.path)
		assert.Equal(t, tc.code, decode(t, rr).Error.Code, tc.path)
	}
}

func TestListCheckCountAndRemoveEndpoints(t *testing.T) {
	r, f := setupTestRouter(t)
	alice, bob, chris := f.users["alice"], f.users["bob"], f.users["chris"]
	path := fmt.Sprintf("/api/v1/favorites/user/%d", alice.ID)

	require.Equal(t, http.StatusCreated, doRequest(r, http.MethodPost, path, chris.ID).Code)
	require.Equal(t, http.StatusCreated, doRequest(r, http.MethodPost, path, bob.ID).Code)

	rr := doRequest(r, http.MethodGet, "/api/v1/favorites", chris.ID)
	require.Equal(t, http.StatusOK, rr.Code)
	var list FavoriteListResponse
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &list))
	require.Equal(t, int64(1), list.Total)
	assert.Equal(t, alice.ID, list.Favorites[0].ObjectID)
	assert.Equal(t, fmt.Sprintf("chris likes user#%d", alice.ID), list.Favorites[0].Description)

	rr = doRequest(r, http.MethodGet, "/api/v1/favorites?type=favorite", chris.ID)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &list))
	assert.Zero(t, list.Total)

	rr = doRequest(r, http.MethodGet, "/api/v1/favorites?type=planet", chris.ID)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(r, http.MethodGet, path+"/count", 0)
	require.Equal(t, http.StatusOK, rr.Code)
	var count CountFavoriteResponse
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &count))
	assert.Equal(t, int64(2), count.Count)

	rr = doRequest(r, http.MethodGet, path+"/check", chris.ID)
	require.Equal(t, http.StatusOK, rr.Code)
	var check CheckFavoriteResponse
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &check))
	assert.True(t, check.IsFavorite)

	rr = doRequest(r, http.MethodDelete, path, chris.ID)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = doRequest(r, http.MethodDelete, path, chris.ID)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rr).Error.Code)

	rr = doRequest(r, http.MethodGet, path+"/check", chris.ID)
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &check))
	assert.False(t, check.IsFavorite)
}

func TestListFavoritesPaginates(t *testing.T) {
	r, f := setupTestRouter(t)
	dawn := f.users["dawn"]

	for _, name := range []string{"alice", "bob", "chris"} {
		path := fmt.Sprintf("/api/v1/favorites/user/%d", f.users[name].ID)
		require.Equal(t, http.StatusCreated, doRequest(r, http.MethodPost, path, dawn.ID).Code)
	}

	rr := doRequest(r, http.MethodGet, "/api/v1/favorites?page=2&per_page=2", dawn.ID)
	require.Equal(t, http.StatusOK, rr.Code)
	var list FavoriteListResponse
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &list))
	assert.Equal(t, int64(3), list.Total)
	assert.Equal(t, 2, list.Page)
	assert.Equal(t, 2, list.PerPage)
	require.Len(t, list.Favorites, 1)
	assert.Equal(t, f.users["chris"].ID, list.Favorites[0].ObjectID)

	// out-of-range values fall back to the defaults
	rr = doRequest(r, http.MethodGet, "/api/v1/favorites?page=0&per_page=500", dawn.ID)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &list))
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.PerPage)
	assert.Len(t, list.Favorites, 3)
}

func TestRemoveFavoriteOfDeletedTarget(t *testing.T) {
	r, f := setupTestRouter(t)
	alice := f.users["alice"]

	zebra := testAnimal{Name: "zebra"}
	require.NoError(t, f.db.Create(&zebra).Error)
	_, err := f.repo.Create(context.Background(), alice.ID, zebra)
	require.NoError(t, err)
	require.NoError(t, f.db.Delete(&testAnimal{}, zebra.ID).Error)

	path := fmt.Sprintf("/api/v1/favorites/animal/%d", zebra.ID)

	rr := doRequest(r, http.MethodGet, path+"/check", alice.ID)
	require.Equal(t, http.StatusOK, rr.Code)
	var check CheckFavoriteResponse
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &check))
	assert.True(t, check.IsFavorite)

	// a dangling favorite cannot be created, but can still be removed
	rr = doRequest(r, http.MethodPost, path, f.users["bob"].ID)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(r, http.MethodDelete, path, alice.ID)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	remaining, err := f.repo.ForUser(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
