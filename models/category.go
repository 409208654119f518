package models

// Category is the catalog section a product is listed under.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryBooks       Category = "Books"
	CategoryFurniture   Category = "Furniture"
	CategoryToys        Category = "Toys"
)

// Categories returns every catalog category in display order.
func Categories() []Category {
	return []Category{
		CategoryElectronics,
		CategoryClothing,
		CategoryBooks,
		CategoryFurniture,
		CategoryToys,
	}
}
