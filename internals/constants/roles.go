package constants

// Role user pada portal lomba
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var AllowedRoles = []string{RoleUser, RoleAdmin}
