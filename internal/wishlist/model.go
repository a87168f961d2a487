package wishlist

// Entry is a saved product. Wishlists are sets: one entry per product id,
// no quantity. The price is the snapshot taken when the product was saved.
type Entry struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductPrice int64  `json:"product_price"`
	ProductImage string `json:"product_image"`
}
