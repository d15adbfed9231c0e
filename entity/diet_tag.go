package entity

import (
	"gorm.io/gorm"
)

// DietTag is either "vegan" or "vegetarian". Vegan items carry both
// tags, so the vegan set stays a subset of the vegetarian set.
type DietTag struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex"`

	MenuItems []MenuItem `gorm:"many2many:menu_item_diet_tags;" json:"-"`
}
