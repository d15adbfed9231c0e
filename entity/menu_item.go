package entity

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string `json:"name" gorm:"uniqueIndex"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Picture     string `json:"picture"`

	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`

	IsAllergyFree  bool `json:"isAllergyFree"`
	IsCustomizable bool `json:"isCustomizable"`

	CookingTime int `json:"cookingTime"` // minutes
	Sodium      int `json:"sodium"`      // mg

	// Vegan/vegetarian status is NOT stored here. It is derived from
	// DietTag membership so the tags stay the single source of truth.
	Allergens []Allergen `gorm:"many2many:menu_item_allergens;" json:"-"`
	DietTags  []DietTag  `gorm:"many2many:menu_item_diet_tags;" json:"-"`
}
