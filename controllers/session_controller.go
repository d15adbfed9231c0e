package controllers

import (
	"errors"
	"net/http"

	"kiosk/pkg/resp"
	"kiosk/services"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	Registry *services.SessionRegistry
}

func NewSessionController(reg *services.SessionRegistry) *SessionController {
	return &SessionController{Registry: reg}
}

type sessionOut struct {
	services.Snapshot
	VisibleItems     []services.ItemView `json:"visibleItems"`
	RecommendedItems []services.ItemView `json:"recommendedItems"`
}

func sessionView(s *services.Session) sessionOut {
	visible := s.VisibleItems()
	n := len(visible)
	if n > 4 {
		n = 4
	}
	return sessionOut{
		Snapshot:         s.Snapshot(),
		VisibleItems:     visible,
		RecommendedItems: visible[:n],
	}
}

// POST /sessions
func (h *SessionController) Create(c *gin.Context) {
	s := h.Registry.Create()
	resp.Created(c, sessionView(s))
}

// GET /sessions/:id
func (h *SessionController) Get(c *gin.Context) {
	s, err := h.Registry.Get(c.Param("id"))
	if err != nil {
		resp.NotFound(c, "session not found")
		return
	}
	resp.OK(c, sessionView(s))
}

// DELETE /sessions/:id
func (h *SessionController) Delete(c *gin.Context) {
	h.Registry.Remove(c.Param("id"))
	resp.OK(c, gin.H{"removed": true})
}

// EventIn is one user intent forwarded by the presentation layer.
// Unused fields are ignored for event types that don't need them.
type EventIn struct {
	Type        string `json:"type" binding:"required"`
	OrderType   string `json:"orderType"`
	Method      string `json:"method"`
	ItemID      uint   `json:"itemId"`
	Delta       int    `json:"delta"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Allergen    string `json:"allergen"`
	Diet        string `json:"diet"`
	Text        string `json:"text"`
}

// POST /sessions/:id/events
func (h *SessionController) Event(c *gin.Context) {
	s, err := h.Registry.Get(c.Param("id"))
	if err != nil {
		resp.NotFound(c, "session not found")
		return
	}

	var ev EventIn
	if err := c.ShouldBindJSON(&ev); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	switch ev.Type {
	case "selectOrderType":
		err = s.SelectOrderType(services.OrderType(ev.OrderType))
	case "openCart":
		err = s.OpenCart()
	case "backToMenu":
		err = s.BackToMenu()
	case "checkout":
		err = s.Checkout()
	case "backToCart":
		err = s.BackToCart()
	case "selectPayment":
		err = s.SelectPayment(ev.Method)
	case "changeOrderType":
		err = s.ChangeOrderType()
	case "touch":
		s.Touch()
	case "addItem":
		err = s.AddItem(ev.ItemID)
	case "updateQuantity":
		err = s.UpdateQuantity(ev.ItemID, ev.Delta)
	case "removeItem":
		err = s.RemoveItem(ev.ItemID)
	case "setCategory":
		err = s.SetCategory(ev.Category)
	case "setSubcategory":
		err = s.SetSubcategory(ev.Subcategory)
	case "toggleAllergen":
		err = s.ToggleAllergen(ev.Allergen)
	case "setDiet":
		err = s.SetDietMode(ev.Diet)
	case "resetFilters":
		err = s.ResetFilters()
	case "setSpecialRequests":
		err = s.SetSpecialRequests(ev.Text)
	case "dismissPrompt":
		err = s.DismissPrompt()
	case "openVoiceAssist":
		err = s.OpenVoiceAssist()
	case "closeVoiceAssist":
		err = s.CloseVoiceAssist()
	case "callStaff":
		err = s.CallStaff()
	default:
		resp.BadRequest(c, "unknown event type: "+ev.Type)
		return
	}

	if err != nil {
		writeSessionErr(c, err)
		return
	}
	resp.OK(c, sessionView(s))
}

func writeSessionErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidTransition):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrRecognitionBusy):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrSpeechUnavailable):
		c.JSON(http.StatusNotImplemented, gin.H{"ok": false, "error": err.Error()})
	default:
		resp.ServerError(c, err)
	}
}
