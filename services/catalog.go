package services

import (
	"errors"

	"kiosk/entity"
	"kiosk/repository"
)

var ErrNotFound = errors.New("not found")

// Diet modes shown on the kiosk filter panel.
const (
	DietGeneral    = "일반"
	DietVegetarian = "채식"
	DietVegan      = "비건"
)

// CategoryAll is the "show everything" choice for both category levels.
const CategoryAll = "전체"

const CategoryMain = "메인"

// DietStatus is derived from diet tag membership, never stored on items.
type DietStatus struct {
	IsVegan      bool `json:"isVegan"`
	IsVegetarian bool `json:"isVegetarian"`
}

// Catalog is an immutable snapshot of the menu reference data, loaded
// once at boot. Lookups by name are total: an undeclared name means "no
// allergens, not vegan, not vegetarian" rather than an error.
type Catalog struct {
	items      []entity.MenuItem
	byID       map[uint]*entity.MenuItem
	allergens  map[string][]string // item name -> declared tags, seed order
	vegan      map[string]bool
	vegetarian map[string]bool
	selectable []string // allergen filter buttons, seed order
}

func LoadCatalog(repo *repository.MenuRepository) (*Catalog, error) {
	items, err := repo.FindAll()
	if err != nil {
		return nil, err
	}
	vocab, err := repo.FindAllergens()
	if err != nil {
		return nil, err
	}

	selectable := make([]string, 0, len(vocab))
	for _, a := range vocab {
		if a.Selectable {
			selectable = append(selectable, a.Name)
		}
	}
	return NewCatalog(items, selectable), nil
}

// NewCatalog builds a snapshot directly from rows, bypassing the DB.
// Tests use it with fixture data.
func NewCatalog(items []entity.MenuItem, selectable []string) *Catalog {
	c := &Catalog{
		items:      items,
		byID:       make(map[uint]*entity.MenuItem, len(items)),
		allergens:  make(map[string][]string, len(items)),
		vegan:      make(map[string]bool),
		vegetarian: make(map[string]bool),
		selectable: selectable,
	}
	for i := range c.items {
		item := &c.items[i]
		c.byID[item.ID] = item
		tags := make([]string, 0, len(item.Allergens))
		for _, a := range item.Allergens {
			tags = append(tags, a.Name)
		}
		c.allergens[item.Name] = tags
		for _, d := range item.DietTags {
			switch d.Name {
			case "vegan":
				c.vegan[item.Name] = true
			case "vegetarian":
				c.vegetarian[item.Name] = true
			}
		}
	}
	return c
}

// Items returns all menu items in catalog order.
func (c *Catalog) Items() []entity.MenuItem {
	return c.items
}

func (c *Catalog) Item(id uint) (*entity.MenuItem, error) {
	item, ok := c.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return item, nil
}

// AllergensFor returns the declared allergen tags for a menu item name,
// empty when none are declared.
func (c *Catalog) AllergensFor(name string) []string {
	return c.allergens[name]
}

func (c *Catalog) DietStatusFor(name string) DietStatus {
	return DietStatus{
		IsVegan:      c.vegan[name],
		IsVegetarian: c.vegetarian[name],
	}
}

func (c *Catalog) Categories() []string {
	return []string{CategoryAll, CategoryMain, "사이드", "음료", "디저트"}
}

func (c *Catalog) MainSubcategories() []string {
	return []string{CategoryAll, "버거", "랩", "보울", "샐러디"}
}

func (c *Catalog) SelectableAllergens() []string {
	return c.selectable
}

// ItemView decorates a menu item with its derived allergen and diet
// information for the presentation layer.
type ItemView struct {
	entity.MenuItem
	Allergens []string   `json:"allergens"`
	Diet      DietStatus `json:"diet"`
}

// View builds the decorated form of one item.
func (c *Catalog) View(item entity.MenuItem) ItemView {
	return ItemView{
		MenuItem:  item,
		Allergens: c.AllergensFor(item.Name),
		Diet:      c.DietStatusFor(item.Name),
	}
}
