package httpdto

// RegisterRequest is used for POST /users/register
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is used for POST /users/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned after a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}
