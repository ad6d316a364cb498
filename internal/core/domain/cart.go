package domain

// CartItem is a menu item placed in the cart of the user identified by Email.
type CartItem struct {
	ID         string  `json:"_id,omitempty"`
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Image      string  `json:"image"`
	Price      float64 `json:"price"`
	Email      string  `json:"email"`
}
