package entity

import (
	"gorm.io/gorm"
)

type Allergen struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex"`

	// Only a subset of allergens is offered as filter buttons on the
	// kiosk screen; the rest exist for labelling on the detail view.
	Selectable bool `json:"selectable"`

	MenuItems []MenuItem `gorm:"many2many:menu_item_allergens;" json:"-"`
}
