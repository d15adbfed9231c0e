// repository/menu_repository.go
package repository

import (
	"kiosk/entity"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// FindAll returns every menu item in seed (primary key) order with
// allergen and diet associations loaded. Catalog order matters: the
// filter pipeline and the recommended slice both preserve it.
func (r *MenuRepository) FindAll() ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.
		Preload("Allergens").
		Preload("DietTags").
		Order("id").
		Find(&items).Error
	return items, err
}

func (r *MenuRepository) FindByID(id uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.DB.
		Preload("Allergens").
		Preload("DietTags").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindAllergens returns the allergen vocabulary in seed order.
func (r *MenuRepository) FindAllergens() ([]entity.Allergen, error) {
	var allergens []entity.Allergen
	err := r.DB.Order("id").Find(&allergens).Error
	return allergens, err
}
