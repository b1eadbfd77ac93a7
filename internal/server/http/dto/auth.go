package dto

// AuthRequest describes login/password payload. Roles are only honored on
// registration.
type AuthRequest struct {
	Login    string   `json:"login"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Roles    []string `json:"roles"`
}
