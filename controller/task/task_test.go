package task

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/AnishKajan/Taskmanager-Project/dto"
	"github.com/AnishKajan/Taskmanager-Project/model"
	"github.com/AnishKajan/Taskmanager-Project/repository"
	"github.com/AnishKajan/Taskmanager-Project/services"
	"github.com/AnishKajan/Taskmanager-Project/storage"
)

func setupRouter(t *testing.T) (*gin.Engine, *storage.MemoryStore) {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStore()
	users := []model.User{
		{UserID: "owner-1", Email: "owner@example.com", Visibility: model.VisibilityPublic},
		{UserID: "carol-1", Email: "carol@example.com", Visibility: model.VisibilityPublic},
		{UserID: "bob-1", Email: "bob@example.com", Visibility: model.VisibilityPrivate},
	}
	for i := range users {
		if err := store.PutUser(context.Background(), &users[i]); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	repo := repository.NewTaskRepository(store, services.NewCollaboratorValidator(store))
	router := gin.New()
	TaskController(router, repo)
	return router, store
}

func tokenFor(t *testing.T, userID, email string) string {
	t.Helper()
	token, err := services.CreateAccessToken(userID, email)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createBody(title string) dto.CreateTaskRequest {
	return dto.CreateTaskRequest{
		Title:     title,
		Date:      "2024-05-20",
		StartTime: &model.TimeOfDay{Hour: "9", Minute: "00", Period: "AM"},
		EndTime:   &model.TimeOfDay{Hour: "10", Minute: "00", Period: "AM"},
	}
}

func TestTaskRoutesRequireToken(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/tasks", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("garbage token: status = %d, want 403", rec.Code)
	}
}

func TestCreateAndListFlow(t *testing.T) {
	router, _ := setupRouter(t)
	owner := tokenFor(t, "owner-1", "owner@example.com")

	rec := doJSON(t, router, http.MethodPost, "/tasks", owner, createBody("write report"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created model.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.Status != model.StatusPending {
		t.Errorf("created status = %q", created.Status)
	}

	rec = doJSON(t, router, http.MethodGet, "/tasks?date=2024-05-20", owner, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rec.Code)
	}
	var listed []dto.TaskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].Title != "write report" {
		t.Fatalf("listed = %+v", listed)
	}
	if listed[0].DisplayStatus == "" {
		t.Error("display status should be derived on every list response")
	}

	// Another account sees nothing.
	carol := tokenFor(t, "carol-1", "carol@example.com")
	rec = doJSON(t, router, http.MethodGet, "/tasks", carol, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("carol list: status = %d", rec.Code)
	}
	var carolTasks []dto.TaskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &carolTasks); err != nil {
		t.Fatalf("decode carol list: %v", err)
	}
	if len(carolTasks) != 0 {
		t.Errorf("carol sees %d tasks, want 0", len(carolTasks))
	}
}

func TestCreateValidationResponse(t *testing.T) {
	router, _ := setupRouter(t)
	owner := tokenFor(t, "owner-1", "owner@example.com")

	body := createBody("")
	rec := doJSON(t, router, http.MethodPost, "/tasks", owner, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := resp.Fields["title"]; !ok {
		t.Errorf("fields = %v, want title detail", resp.Fields)
	}
}

func TestPrivateCollaboratorRejected(t *testing.T) {
	router, _ := setupRouter(t)
	owner := tokenFor(t, "owner-1", "owner@example.com")

	body := createBody("shared")
	body.Collaborators = []string{"bob@example.com"}
	rec := doJSON(t, router, http.MethodPost, "/tasks", owner, body)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	var resp struct {
		PrivateUsers []string `json:"privateUsers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.PrivateUsers) != 1 || resp.PrivateUsers[0] != "bob@example.com" {
		t.Errorf("privateUsers = %v", resp.PrivateUsers)
	}

	// Nothing was persisted.
	rec = doJSON(t, router, http.MethodGet, "/tasks", owner, nil)
	var listed []dto.TaskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("tasks after rejected create = %d, want 0", len(listed))
	}
}

func TestLifecycleEndpoints(t *testing.T) {
	router, _ := setupRouter(t)
	owner := tokenFor(t, "owner-1", "owner@example.com")
	stranger := tokenFor(t, "carol-1", "carol@example.com")

	rec := doJSON(t, router, http.MethodPost, "/tasks", owner, createBody("lifecycle"))
	var created model.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	id := created.TaskID

	// A stranger's delete is Forbidden, not NotFound.
	rec = doJSON(t, router, http.MethodDelete, "/tasks/"+id, stranger, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("stranger delete: status = %d, want 403", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/tasks/"+id, owner, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", rec.Code)
	}

	// Deleted task is in the archive, not in the visible list.
	rec = doJSON(t, router, http.MethodGet, "/tasks", owner, nil)
	var visible []dto.TaskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &visible); err != nil {
		t.Fatalf("decode visible: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("visible after delete = %d, want 0", len(visible))
	}
	rec = doJSON(t, router, http.MethodGet, "/tasks/archive", owner, nil)
	var archived []model.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &archived); err != nil {
		t.Fatalf("decode archive: %v", err)
	}
	if len(archived) != 1 || archived[0].Status != model.StatusDeleted {
		t.Fatalf("archive = %+v", archived)
	}

	rec = doJSON(t, router, http.MethodPatch, "/tasks/restore/"+id, owner, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("restore: status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/tasks/permanent/"+id, owner, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("purge: status = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodDelete, "/tasks/permanent/"+id, owner, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second purge: status = %d, want 404", rec.Code)
	}
}

func TestUpdateAuthorizationOverHTTP(t *testing.T) {
	router, _ := setupRouter(t)
	owner := tokenFor(t, "owner-1", "owner@example.com")
	carol := tokenFor(t, "carol-1", "carol@example.com")

	rec := doJSON(t, router, http.MethodPost, "/tasks", owner, createBody("teamwork"))
	var created model.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	edit := dto.UpdateTaskRequest{
		Title:     "teamwork v2",
		Date:      created.Date,
		StartTime: &created.StartTime,
		EndTime:   created.EndTime,
		Section:   created.Section,
	}
	path := fmt.Sprintf("/tasks/%s", created.TaskID)

	rec = doJSON(t, router, http.MethodPut, path, carol, edit)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("carol before invite: status = %d, want 403", rec.Code)
	}

	invite := edit
	invite.Collaborators = []string{"carol@example.com"}
	rec = doJSON(t, router, http.MethodPut, path, owner, invite)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner invite: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPut, path, carol, invite)
	if rec.Code != http.StatusOK {
		t.Errorf("carol after invite: status = %d, want 200", rec.Code)
	}
}
