package domain

// Token is a bearer access token as returned to clients after login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
