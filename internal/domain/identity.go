package domain

// Identity is the caller decoded from a verified bearer token.
type Identity struct {
	Subject  string `json:"sub"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
