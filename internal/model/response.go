package model

// MessageResponse is the flat error/status body used by every endpoint,
// e.g. {"message":"Invalid username or password"}.
type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

type VerifyResponse struct {
	Valid bool     `json:"valid"`
	User  AuthUser `json:"user"`
}
