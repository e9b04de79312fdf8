package handler

// Field names follow the JSON bodies the API has always accepted: camelCase
// for the credential fields, snake_case elsewhere.

type signupRequest struct {
	Username        string `json:"username"        validate:"required"`
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
	UserType        string `json:"user_type"       validate:"omitempty,oneof=patient doctor receptionist admin"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Password        string `json:"password"        validate:"required"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
}

type updatePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword"    validate:"required"`
	NewPassword        string `json:"newPassword"        validate:"required"`
	NewPasswordConfirm string `json:"newPasswordConfirm" validate:"required"`
}

// tokenResponse is the success envelope carrying a session token.
type tokenResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}

// messageResponse is the success envelope for operations with no token.
type messageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func successToken(token string) tokenResponse {
	return tokenResponse{Status: "success", Token: token}
}

func successMessage(msg string) messageResponse {
	return messageResponse{Status: "success", Message: msg}
}
