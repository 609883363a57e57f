package models

// Category groups learning routes.
type Category struct {
	IDCategory string   `json:"id_category" binding:"required"`
	Name       string   `json:"name" binding:"required"`
	Routes     []string `json:"routes"`
}

// CategorySummary is the list projection of a category.
type CategorySummary struct {
	IDCategory string `json:"id_category"`
	Name       string `json:"name"`
}

// CategoryDetail is a category with its routes inlined.
type CategoryDetail struct {
	IDCategory string         `json:"id_category"`
	Name       string         `json:"name"`
	Routes     []RouteSummary `json:"routes"`
}

func (c Category) Summary() CategorySummary {
	return CategorySummary{IDCategory: c.IDCategory, Name: c.Name}
}
