package dto

type SignUpRequest struct {
	Name              string `json:"name" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	EmailConfirmation string `json:"email_confirmation" binding:"required,eqfield=Email"`
}

type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type UpdateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}
