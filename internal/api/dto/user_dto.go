package dto

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the account shape returned by auth endpoints.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
