package handlers

import (
	"net/http"

	"project-team-tracker/internal/console"
	"project-team-tracker/internal/convert"
	"project-team-tracker/internal/models"
	"project-team-tracker/internal/services"

	"github.com/gin-gonic/gin"
)

// CreateMemberRequest represents the request payload for creating a member.
type CreateMemberRequest struct {
	Name string `json:"name" binding:"required"`
	Auth string `json:"auth" binding:"required"`
}

// UpdateMemberRequest represents the request payload for updating a member.
type UpdateMemberRequest struct {
	Name    *string  `json:"name"`
	Auth    *string  `json:"auth"`
	TaskIDs []string `json:"taskIds"`
}

// MemberResponse is a member with the ids of its assigned tasks.
type MemberResponse struct {
	models.Member
	TaskIDs []string `json:"taskIds"`
}

type MemberHandler struct {
	members *services.MemberService
}

func NewMemberHandler(members *services.MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

func (h *MemberHandler) enrich(c *gin.Context, m models.Member) (MemberResponse, error) {
	tasks, err := h.members.Tasks(c.Request.Context(), m.ID)
	if err != nil {
		return MemberResponse{}, err
	}
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return MemberResponse{Member: m, TaskIDs: ids}, nil
}

func (h *MemberHandler) respondMembers(c *gin.Context, members []models.Member) {
	out := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		resp, err := h.enrich(c, m)
		if err != nil {
			respondError(c, err)
			return
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, gin.H{
		"members": out,
		"count":   len(out),
	})
}

// List handles GET /api/members
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.members.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondMembers(c, members)
}

// Search handles GET /api/members/search?s=1&s=4
func (h *MemberHandler) Search(c *gin.Context) {
	selectors := console.ParseMemberSelectors(c.QueryArray("s"))
	seq, err := h.members.Filter(c.Request.Context(), selectors...)
	if err != nil {
		respondError(c, err)
		return
	}
	var members []models.Member
	for m := range seq {
		members = append(members, m)
	}
	h.respondMembers(c, members)
}

// Create handles POST /api/members
func (h *MemberHandler) Create(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	auth, err := convert.ParseAuthority(req.Auth)
	if err != nil {
		respondError(c, err)
		return
	}
	member, err := h.members.Create(c.Request.Context(), services.MemberCreate{Name: req.Name, Auth: auth})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MemberResponse{Member: *member, TaskIDs: []string{}})
}

// Get handles GET /api/members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	member, err := h.members.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if member == nil {
		notFound(c, "Member")
		return
	}
	resp, err := h.enrich(c, *member)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update handles PUT /api/members/:id
func (h *MemberHandler) Update(c *gin.Context) {
	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := services.MemberUpdate{Name: req.Name, TaskIDs: req.TaskIDs}
	if req.Auth != nil {
		auth, err := convert.ParseAuthority(*req.Auth)
		if err != nil {
			respondError(c, err)
			return
		}
		in.Auth = &auth
	}

	mid := c.Param("id")
	ctx := c.Request.Context()
	existing, err := h.members.Get(ctx, mid)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing == nil {
		notFound(c, "Member")
		return
	}
	if err := h.members.Update(ctx, mid, in); err != nil {
		respondError(c, err)
		return
	}
	h.Get(c)
}

// Delete handles DELETE /api/members/:id
func (h *MemberHandler) Delete(c *gin.Context) {
	mid := c.Param("id")
	if err := h.members.Remove(c.Request.Context(), mid); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Member deleted successfully",
		"id":      mid,
	})
}

// Stats handles GET /api/members/stats
func (h *MemberHandler) Stats(c *gin.Context) {
	counts, err := h.members.CountAssignment(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
