package httpapi

// accountRequest is the registration/login request body.
type accountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// refreshRequest is the token-refresh request body.
type refreshRequest struct {
	Email        string `json:"email"`
	RefreshToken string `json:"refreshToken"`
}

// authResponse is the success payload of every auth endpoint.
type authResponse struct {
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
