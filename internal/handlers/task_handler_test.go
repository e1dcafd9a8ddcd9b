package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"project-team-tracker/internal/models"
	"project-team-tracker/internal/repository"
	"project-team-tracker/internal/services"
	"project-team-tracker/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.MustInMemoryDB(t)
	svc := services.New(services.Stores{
		Tasks:       repository.NewGorm[models.Task](db),
		Members:     repository.NewGorm[models.Member](db),
		Assignments: repository.NewAssignments(db),
	}, services.Options{})

	tasks := NewTaskHandler(svc.Tasks)
	members := NewMemberHandler(svc.Members)
	r := gin.New()
	r.GET("/api/tasks", tasks.List)
	r.POST("/api/tasks", tasks.Create)
	r.GET("/api/tasks/stats", tasks.Stats)
	r.GET("/api/tasks/search", tasks.Search)
	r.GET("/api/tasks/:id", tasks.Get)
	r.PUT("/api/tasks/:id", tasks.Update)
	r.DELETE("/api/tasks/:id", tasks.Delete)
	r.DELETE("/api/tasks/:id/assignees/:mid", tasks.Unassign)
	r.GET("/api/members", members.List)
	r.POST("/api/members", members.Create)
	r.GET("/api/members/stats", members.Stats)
	r.GET("/api/members/search", members.Search)
	r.GET("/api/members/:id", members.Get)
	r.PUT("/api/members/:id", members.Update)
	r.DELETE("/api/members/:id", members.Delete)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateTask_Success(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/members", map[string]any{"name": "bob", "auth": "MEMBER"}).Code)

	w := do(t, r, http.MethodPost, "/api/tasks", map[string]any{
		"name":        "Test Task",
		"type":        "bug",
		"assigneeIds": []string{"m01", "m42"},
		"dueTo":       "2027-07-22",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	created := decode[TaskResponse](t, w)
	require.Equal(t, "t01", created.ID)
	require.Equal(t, models.TypeBug, created.Type)
	require.Equal(t, models.StatusNotStarted, created.Status)
	require.Equal(t, []MemberRef{{ID: "m01", Name: "bob"}}, created.Assignees)
	require.NotNil(t, created.DueTo)
}

func TestCreateTask_BadInput(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/tasks", map[string]any{"type": "bug"}).Code)
	require.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/tasks", map[string]any{"name": "x", "type": "epic"}).Code)
	require.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/tasks", map[string]any{"name": "x", "type": "1", "dueTo": "22/07/2027"}).Code)
}

func TestGetTask_NotFound(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/tasks/t99", nil).Code)
	require.Equal(t, http.StatusNotFound, do(t, r, http.MethodPut, "/api/tasks/t99", map[string]any{"name": "x"}).Code)
}

func TestUpdateTask_PartialFields(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodPost, "/api/members", map[string]any{"name": "ann", "auth": "1"})
	do(t, r, http.MethodPost, "/api/tasks", map[string]any{"name": "write", "type": "3"})

	w := do(t, r, http.MethodPut, "/api/tasks/t01", map[string]any{"status": "done", "assigneeIds": []string{"m01"}})
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[TaskResponse](t, w)
	require.Equal(t, "write", got.Name)
	require.Equal(t, models.StatusDone, got.Status)
	require.Equal(t, models.TypeDocument, got.Type)
	require.Len(t, got.Assignees, 1)

	require.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPut, "/api/tasks/t01", map[string]any{"status": "blocked"}).Code)
}

func TestSearchAndStats(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodPost, "/api/tasks", map[string]any{"name": "A", "type": "BUG"})
	do(t, r, http.MethodPost, "/api/tasks", map[string]any{"name": "B", "type": "BUG"})
	do(t, r, http.MethodPost, "/api/tasks", map[string]any{"name": "C", "type": "FEATURE"})
	do(t, r, http.MethodPut, "/api/tasks/t01", map[string]any{"status": "DONE"})
	do(t, r, http.MethodPut, "/api/tasks/t02", map[string]any{"status": "IN_PROGRESS"})

	w := do(t, r, http.MethodGet, "/api/tasks/search?c=1,BUG&c=2,DONE", nil)
	require.Equal(t, http.StatusOK, w.Code)
	found := decode[struct {
		Tasks []TaskResponse `json:"tasks"`
		Count int            `json:"count"`
	}](t, w)
	require.Equal(t, 1, found.Count)
	require.Equal(t, "t01", found.Tasks[0].ID)

	require.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/tasks/search?c=BUG", nil).Code)

	w = do(t, r, http.MethodGet, "/api/tasks/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, services.StatusCount{Done: 1, InProgress: 1, NotStarted: 1, Total: 3}, decode[services.StatusCount](t, w))
}

func TestDeleteAndUnassign(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodPost, "/api/members", map[string]any{"name": "ann", "auth": "1"})
	do(t, r, http.MethodPost, "/api/tasks", map[string]any{"name": "A", "type": "BUG", "assigneeIds": []string{"m01"}})

	require.Equal(t, http.StatusOK, do(t, r, http.MethodDelete, "/api/tasks/t01/assignees/m01", nil).Code)
	got := decode[TaskResponse](t, do(t, r, http.MethodGet, "/api/tasks/t01", nil))
	require.Empty(t, got.Assignees)

	require.Equal(t, http.StatusOK, do(t, r, http.MethodDelete, "/api/tasks/t01", nil).Code)
	require.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/tasks/t01", nil).Code)
}
