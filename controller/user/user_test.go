package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/AnishKajan/Taskmanager-Project/dto"
	"github.com/AnishKajan/Taskmanager-Project/model"
	"github.com/AnishKajan/Taskmanager-Project/services"
	"github.com/AnishKajan/Taskmanager-Project/storage"
)

func setupUserRouter(t *testing.T) (*gin.Engine, *storage.MemoryStore) {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStore()
	users := []model.User{
		{UserID: "u1", Email: "alice@example.com", Username: "alice", Visibility: model.VisibilityPublic},
		{UserID: "u2", Email: "bob@example.com", Username: "bob", Visibility: model.VisibilityPrivate},
	}
	for i := range users {
		if err := store.PutUser(context.Background(), &users[i]); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	router := gin.New()
	UserController(router, services.NewUserService(store), store)
	return router, store
}

func request(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func token(t *testing.T, userID, email string) string {
	t.Helper()
	tok, err := services.CreateAccessToken(userID, email)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	return tok
}

func TestListPublicUsersOnly(t *testing.T) {
	router, _ := setupUserRouter(t)
	alice := token(t, "u1", "alice@example.com")

	rec := request(t, router, http.MethodGet, "/users", alice, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var listed []dto.UserSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed) != 1 || listed[0].Email != "alice@example.com" {
		t.Errorf("listed = %+v, want only the public account", listed)
	}
}

func TestUpdateProfileVisibility(t *testing.T) {
	router, store := setupUserRouter(t)
	alice := token(t, "u1", "alice@example.com")

	rec := request(t, router, http.MethodPut, "/users/profile", alice, dto.UpdateProfileRequest{
		Username:   "allie",
		Visibility: model.VisibilityPrivate,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	updated, err := store.GetUserByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if updated.Username != "allie" || updated.Visibility != model.VisibilityPrivate {
		t.Errorf("stored user = %+v", updated)
	}

	// Going private removes the account from the picker.
	rec = request(t, router, http.MethodGet, "/users", alice, nil)
	var listed []dto.UserSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("listed = %+v, want empty after going private", listed)
	}

	rec = request(t, router, http.MethodPut, "/users/profile", alice, dto.UpdateProfileRequest{
		Visibility: "invisible",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad visibility: status = %d, want 400", rec.Code)
	}
}

func TestCurrentUserNeverLeaksPassword(t *testing.T) {
	router, _ := setupUserRouter(t)
	alice := token(t, "u1", "alice@example.com")

	rec := request(t, router, http.MethodGet, "/users/me", alice, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := raw["password"]; ok {
		t.Error("response must not contain the password hash")
	}
	if raw["email"] != "alice@example.com" {
		t.Errorf("email = %v", raw["email"])
	}
}
