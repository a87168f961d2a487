package cart

// Item identifies a product as it appears on a product card. Prices are in
// minor currency units, snapshotted at the time the item is put in the cart.
type Item struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductPrice int64  `json:"product_price"`
	ProductImage string `json:"product_image"`
}

// Line is one cart entry: an item plus its quantity. A cart holds at most
// one line per product id, and a persisted line always has quantity >= 1.
type Line struct {
	Item
	Quantity int `json:"quantity"`
}

// Subtotal is the line's contribution to the cart total.
func (l Line) Subtotal() int64 {
	return l.ProductPrice * int64(l.Quantity)
}
