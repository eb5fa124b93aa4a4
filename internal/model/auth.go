package model

// AccessToken is the object embedded into the JWT access token.
type AccessToken struct {
	ID   string `json:"id" mapstructure:"id"`
	Name string `json:"name" mapstructure:"name"`
}

type RegisterRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

type RegisterResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

type LoginRequest struct {
	Name string `json:"name"`
}

type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}
