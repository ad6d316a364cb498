package handler

// ErrorResponse is the uniform envelope for every rejected request.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// --- Requests ---

type tokenRequest struct {
	Email string `json:"email" validate:"required"`
	Name  string `json:"name"`
}

type registerUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"required,email"`
	PhotoURL string `json:"photoURL" validate:"omitempty,url"`
}

type cartItemRequest struct {
	MenuItemID string  `json:"menuItemId" validate:"required"`
	Name       string  `json:"name"`
	Image      string  `json:"image"`
	Price      float64 `json:"price"      validate:"gte=0"`
	Email      string  `json:"email"      validate:"omitempty,email"`
}

// --- Responses ---
// Write results keep the field names of the document store's results,
// which existing clients read.

type tokenResponse struct {
	Token string `json:"token"`
}

type insertResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type deleteResponse struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

type updateResponse struct {
	Acknowledged  bool    `json:"acknowledged"`
	MatchedCount  int64   `json:"matchedCount"`
	ModifiedCount int64   `json:"modifiedCount"`
	UpsertedCount int64   `json:"upsertedCount"`
	UpsertedID    *string `json:"upsertedId"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type adminStatusResponse struct {
	Admin bool `json:"admin"`
}
