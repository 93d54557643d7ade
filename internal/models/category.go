package models

// Category classifies an issue. The catalog is fixed in code; inactive
// categories are kept for old issues but rejected for new ones.
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

var categories = []Category{
	{ID: "roads", Name: "Roads & Potholes", Icon: "🛣️", Active: true},
	{ID: "lighting", Name: "Street Lighting", Icon: "💡", Active: true},
	{ID: "sanitation", Name: "Sanitation & Waste", Icon: "🗑️", Active: true},
	{ID: "water", Name: "Water & Drainage", Icon: "🚰", Active: true},
	{ID: "parks", Name: "Parks & Trees", Icon: "🌳", Active: true},
	{ID: "safety", Name: "Public Safety", Icon: "🚨", Active: true},
	{ID: "other", Name: "Other", Icon: "📌", Active: true},
}

// Categories returns the full category catalog.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryByID looks up a category in the catalog.
func CategoryByID(id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
