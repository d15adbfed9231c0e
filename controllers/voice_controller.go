package controllers

import (
	"kiosk/pkg/resp"
	"kiosk/services"

	"github.com/gin-gonic/gin"
)

type VoiceController struct {
	Registry *services.SessionRegistry
}

func NewVoiceController(reg *services.SessionRegistry) *VoiceController {
	return &VoiceController{Registry: reg}
}

// POST /sessions/:id/voice/transcript
// The browser does the speech-to-text; this endpoint runs the allergen
// detector over the transcript and merges hits into the session filter.
func (h *VoiceController) Transcript(c *gin.Context) {
	s, err := h.Registry.Get(c.Param("id"))
	if err != nil {
		resp.NotFound(c, "session not found")
		return
	}

	var body struct {
		Transcript string `json:"transcript" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	detected, err := s.ApplyTranscript(body.Transcript)
	if err != nil {
		writeSessionErr(c, err)
		return
	}
	resp.OK(c, gin.H{
		"detectedAllergens": detected,
		"session":           sessionView(s),
	})
}

// POST /sessions/:id/voice/listen
// Drives the simulated recognizer: one listen in flight at a time; the
// result lands asynchronously as if it came from a microphone.
func (h *VoiceController) Listen(c *gin.Context) {
	s, err := h.Registry.Get(c.Param("id"))
	if err != nil {
		resp.NotFound(c, "session not found")
		return
	}

	if err := s.StartListening(); err != nil {
		writeSessionErr(c, err)
		return
	}
	resp.OK(c, gin.H{"listening": true})
}

// POST /sessions/:id/voice/stop
func (h *VoiceController) Stop(c *gin.Context) {
	s, err := h.Registry.Get(c.Param("id"))
	if err != nil {
		resp.NotFound(c, "session not found")
		return
	}

	if err := s.StopListening(); err != nil {
		writeSessionErr(c, err)
		return
	}
	resp.OK(c, gin.H{"listening": false})
}
