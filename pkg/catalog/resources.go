package catalog

const (
	// DefaultProductsTable is the document store collection holding products
	DefaultProductsTable = "ProductsTable"
	// DefaultCategoriesTable is the document store collection holding categories
	DefaultCategoriesTable = "CategoriesTable"
)

// ProductSchema validates product request bodies
var ProductSchema = NewSchema(
	FieldRule{Name: "name", Required: true, Rules: "string,required"},
	FieldRule{Name: "description", Required: true, Rules: "string,required"},
	FieldRule{Name: "price", Required: true, Rules: "number"},
)

// CategorySchema validates category request bodies
var CategorySchema = NewSchema(
	FieldRule{Name: "name", Required: true, Rules: "string,required"},
	FieldRule{Name: "description", Required: true, Rules: "string,required"},
)

// ProductResource describes products stored in table. Uploaded images are
// appended to the "images" list.
func ProductResource(table string) Resource {
	if table == "" {
		table = DefaultProductsTable
	}
	return Resource{
		Name:       "products",
		Collection: Collection{Name: table, IDField: "productID"},
		Schema:     ProductSchema,
		Image:      ImageField{Name: "images", Mode: ImageAppend},
	}
}

// CategoryResource describes categories stored in table. An uploaded image
// replaces the single "image" field.
func CategoryResource(table string) Resource {
	if table == "" {
		table = DefaultCategoriesTable
	}
	return Resource{
		Name:       "categories",
		Collection: Collection{Name: table, IDField: "categoryID"},
		Schema:     CategorySchema,
		Image:      ImageField{Name: "image", Mode: ImageReplace},
	}
}
