package session

// Role is a customer role as the upstream API reports it
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// IsValidRole checks if a role string is valid
func IsValidRole(role string) bool {
	return role == string(RoleCustomer) || role == string(RoleAdmin)
}

// Session is the client-held projection of the authenticated customer.
// It is exactly the payload the login endpoint returns and the shape
// persisted under the storage key.
type Session struct {
	CustomerID int64  `json:"customerId"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Role       Role   `json:"role"`
}

// FullName returns the display name for the navigation bar
func (s *Session) FullName() string {
	return s.FirstName + " " + s.LastName
}
