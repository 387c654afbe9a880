package messaging

type ChangeTopic string

const (
	// ProductsUpdated carries a full replacement product collection.
	ProductsUpdated ChangeTopic = "products_updated"
	// ProductsCleared empties the loaded collection.
	ProductsCleared ChangeTopic = "products_cleared"
)
