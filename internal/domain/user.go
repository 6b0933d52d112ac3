package domain

// User is an authenticated principal. Users are not part of the persisted
// snapshot; credentials come from configuration.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
