package handlers

import (
	"net/http"

	"project-team-tracker/internal/console"
	"project-team-tracker/internal/convert"
	"project-team-tracker/internal/models"
	"project-team-tracker/internal/services"

	"github.com/gin-gonic/gin"
)

// CreateTaskRequest represents the request payload for creating a task.
// Type accepts an input code ("2") or a name ("BUG").
type CreateTaskRequest struct {
	Name        string   `json:"name" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	AssigneeIDs []string `json:"assigneeIds"`
	DueTo       *string  `json:"dueTo"`
}

// UpdateTaskRequest represents the request payload for updating a task.
// Omitted fields keep their current value; assigneeIds are added.
type UpdateTaskRequest struct {
	Name        *string  `json:"name"`
	Status      *string  `json:"status"`
	AssigneeIDs []string `json:"assigneeIds"`
	DueTo       *string  `json:"dueTo"`
}

// MemberRef is the compact member shape embedded in task responses.
type MemberRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TaskResponse is a task with its assignees resolved.
type TaskResponse struct {
	models.Task
	Assignees []MemberRef `json:"assignees"`
}

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func (h *TaskHandler) enrich(c *gin.Context, t models.Task) (TaskResponse, error) {
	members, err := h.tasks.Assignees(c.Request.Context(), t.ID)
	if err != nil {
		return TaskResponse{}, err
	}
	refs := make([]MemberRef, 0, len(members))
	for _, m := range members {
		refs = append(refs, MemberRef{ID: m.ID, Name: m.Name})
	}
	return TaskResponse{Task: t, Assignees: refs}, nil
}

func (h *TaskHandler) respondTasks(c *gin.Context, tasks []models.Task) {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp, err := h.enrich(c, t)
		if err != nil {
			respondError(c, err)
			return
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, gin.H{
		"tasks": out,
		"count": len(out),
	})
}

// List handles GET /api/tasks
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondTasks(c, tasks)
}

// Search handles GET /api/tasks/search?c=1,BUG&c=2,DONE
// Every criterion must hold.
func (h *TaskHandler) Search(c *gin.Context) {
	criteria, err := console.ParseTaskCriteria(c.QueryArray("c"))
	if err != nil {
		respondError(c, err)
		return
	}
	seq, err := h.tasks.Filter(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, err)
		return
	}
	var tasks []models.Task
	for t := range seq {
		tasks = append(tasks, t)
	}
	h.respondTasks(c, tasks)
}

// Create handles POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	typ, err := convert.ParseTaskType(req.Type)
	if err != nil {
		respondError(c, err)
		return
	}
	due, err := parseDueDate(req.DueTo)
	if err != nil {
		respondError(c, err)
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), services.TaskCreate{
		Name:        req.Name,
		Type:        typ,
		AssigneeIDs: req.AssigneeIDs,
		DueTo:       due,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.enrich(c, *task)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get handles GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.tasks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if task == nil {
		notFound(c, "Task")
		return
	}
	resp, err := h.enrich(c, *task)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update handles PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var in services.TaskUpdate
	in.Name = req.Name
	in.AssigneeIDs = req.AssigneeIDs
	if req.Status != nil {
		status, err := convert.ParseStatus(*req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		in.Status = &status
	}
	var err error
	if in.DueTo, err = parseDueDate(req.DueTo); err != nil {
		respondError(c, err)
		return
	}

	tid := c.Param("id")
	ctx := c.Request.Context()
	existing, err := h.tasks.Get(ctx, tid)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing == nil {
		notFound(c, "Task")
		return
	}
	if err := h.tasks.Update(ctx, tid, in); err != nil {
		respondError(c, err)
		return
	}
	h.Get(c)
}

// Delete handles DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	tid := c.Param("id")
	if err := h.tasks.Remove(c.Request.Context(), tid); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      tid,
	})
}

// Unassign handles DELETE /api/tasks/:id/assignees/:mid
func (h *TaskHandler) Unassign(c *gin.Context) {
	tid, mid := c.Param("id"), c.Param("mid")
	if err := h.tasks.Unassign(c.Request.Context(), tid, mid); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"taskId": tid, "memberId": mid})
}

// Stats handles GET /api/tasks/stats
func (h *TaskHandler) Stats(c *gin.Context) {
	counts, err := h.tasks.CountByStatus(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
