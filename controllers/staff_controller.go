package controllers

import (
	"strconv"

	"kiosk/pkg/resp"
	"kiosk/repository"
	"kiosk/services"

	"github.com/gin-gonic/gin"
)

type StaffController struct {
	Auth      *services.AuthService
	StaffRepo *repository.StaffRepository
	Registry  *services.SessionRegistry
}

func NewStaffController(auth *services.AuthService, repo *repository.StaffRepository, reg *services.SessionRegistry) *StaffController {
	return &StaffController{Auth: auth, StaffRepo: repo, Registry: reg}
}

// POST /staff/login
func (h *StaffController) Login(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, staff, err := h.Auth.Login(body.Username, body.Password)
	if err != nil {
		resp.Unauthorized(c, err.Error())
		return
	}
	resp.OK(c, gin.H{
		"token": token,
		"staff": gin.H{"username": staff.Username, "role": staff.Role},
	})
}

// GET /staff/calls
func (h *StaffController) Calls(c *gin.Context) {
	calls, err := h.StaffRepo.PendingCalls()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, calls)
}

// PATCH /staff/calls/:id/resolve
func (h *StaffController) ResolveCall(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	if err := h.StaffRepo.ResolveCall(uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"resolved": true})
}

// GET /staff/sessions
func (h *StaffController) Sessions(c *gin.Context) {
	resp.OK(c, h.Registry.Snapshots())
}
