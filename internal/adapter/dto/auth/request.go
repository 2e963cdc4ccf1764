package auth

// RegisterRequest is a new account application.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	FullName string `json:"full_name" validate:"required,min=1,max=255"`
	Title    string `json:"title" validate:"omitempty,max=255"`
	Office   string `json:"office" validate:"omitempty,max=255"`
	Purpose  string `json:"purpose" validate:"omitempty,max=2000"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest represents the request to refresh the access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
