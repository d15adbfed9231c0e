package services

import (
	"kiosk/entity"
)

// Selection is the customer's current filter choices.
type Selection struct {
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Allergies   []string `json:"allergies"`
	Diet        string   `json:"diet"`
}

func DefaultSelection() Selection {
	return Selection{
		Category:    CategoryAll,
		Subcategory: CategoryAll,
		Allergies:   []string{},
		Diet:        DietGeneral,
	}
}

// VisibleItems applies the filter pipeline over the catalog. Each stage
// only narrows the previous one; catalog order is preserved and the
// function has no state, so re-applying the same selection gives the
// same answer.
func VisibleItems(catalog *Catalog, sel Selection) []entity.MenuItem {
	items := catalog.Items()

	if sel.Category != CategoryAll {
		items = keep(items, func(it *entity.MenuItem) bool {
			return it.Category == sel.Category
		})
	}

	// Subcategories only exist under 메인.
	if sel.Category == CategoryMain && sel.Subcategory != CategoryAll {
		items = keep(items, func(it *entity.MenuItem) bool {
			return it.Subcategory == sel.Subcategory
		})
	}

	// Exclude on any overlap with the selected allergy set, not only
	// when every declared allergen is selected.
	if len(sel.Allergies) > 0 {
		selected := make(map[string]bool, len(sel.Allergies))
		for _, a := range sel.Allergies {
			selected[a] = true
		}
		items = keep(items, func(it *entity.MenuItem) bool {
			for _, tag := range catalog.AllergensFor(it.Name) {
				if selected[tag] {
					return false
				}
			}
			return true
		})
	}

	switch sel.Diet {
	case DietVegan:
		items = keep(items, func(it *entity.MenuItem) bool {
			return catalog.DietStatusFor(it.Name).IsVegan
		})
	case DietVegetarian:
		// Vegan items pass too: the vegan set is a subset of vegetarian.
		items = keep(items, func(it *entity.MenuItem) bool {
			return catalog.DietStatusFor(it.Name).IsVegetarian
		})
	}

	return items
}

// Recommended is the head of the filtered list, at most four items.
func Recommended(items []entity.MenuItem) []entity.MenuItem {
	if len(items) > 4 {
		return items[:4]
	}
	return items
}

func keep(items []entity.MenuItem, pred func(*entity.MenuItem) bool) []entity.MenuItem {
	out := make([]entity.MenuItem, 0, len(items))
	for i := range items {
		if pred(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}
