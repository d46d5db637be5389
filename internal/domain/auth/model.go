package auth

// Claims is the validated identity extracted from an auth token
type Claims struct {
	UserID   string
	TenantID string
	Email    string
}
