package controllers

import (
	"errors"
	"strconv"
	"strings"

	"kiosk/pkg/resp"
	"kiosk/services"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Catalog *services.Catalog
}

func NewMenuController(catalog *services.Catalog) *MenuController {
	return &MenuController{Catalog: catalog}
}

// GET /menu?category=&subcategory=&allergens=a,b&diet=
// Session-independent browse: the same filter pipeline the session
// uses, driven by query parameters.
func (h *MenuController) List(c *gin.Context) {
	sel := services.DefaultSelection()
	if v := c.Query("category"); v != "" {
		sel.Category = v
	}
	if v := c.Query("subcategory"); v != "" {
		sel.Subcategory = v
	}
	if v := c.Query("allergens"); v != "" {
		sel.Allergies = strings.Split(v, ",")
	}
	if v := c.Query("diet"); v != "" {
		sel.Diet = v
	}

	items := services.VisibleItems(h.Catalog, sel)
	views := make([]services.ItemView, 0, len(items))
	for _, it := range items {
		views = append(views, h.Catalog.View(it))
	}
	recommended := views[:len(services.Recommended(items))]
	resp.OK(c, gin.H{
		"items":            views,
		"recommendedItems": recommended,
	})
}

// GET /menu/:id
func (h *MenuController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}
	item, err := h.Catalog.Item(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			resp.NotFound(c, "menu item not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, h.Catalog.View(*item))
}

// GET /meta
// UI vocabularies so the frontend renders buttons from data.
func (h *MenuController) Meta(c *gin.Context) {
	resp.OK(c, gin.H{
		"categories":          h.Catalog.Categories(),
		"mainSubcategories":   h.Catalog.MainSubcategories(),
		"selectableAllergens": h.Catalog.SelectableAllergens(),
		"dietModes":           []string{services.DietGeneral, services.DietVegetarian, services.DietVegan},
		"paymentMethods":      services.PaymentMethods,
		"orderTypes":          []services.OrderType{services.OrderTypeDineIn, services.OrderTypeTakeOut},
	})
}
