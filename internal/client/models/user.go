package models

// UserSummary is the cached view of the signed-in user. The client replaces
// it wholesale on login, register and profile refresh; it never edits fields
// one by one.
type UserSummary struct {
	ID              string `json:"user_id"`
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	WalletAddress   string `json:"wallet_address"`
	CredentialCount int    `json:"credential_count"`
	IsVerified      bool   `json:"is_verified"`
}

// Profile is the full GET /users/profile payload.
type Profile struct {
	UserSummary
	VerificationCount int    `json:"verification_count"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// Summary projects the profile onto the session's user summary.
func (p Profile) Summary() UserSummary {
	return p.UserSummary
}

// TokenInfo is the decoded payload returned by the verify-token endpoint.
type TokenInfo struct {
	Message string         `json:"message"`
	Claims  map[string]any `json:"payload"`
}
