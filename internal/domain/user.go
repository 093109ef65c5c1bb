package domain

// User is the domain model for accounts that log in and act on tickets.
// Accounts are seeded reference data; the role never changes after creation.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
}

// Actor identifies the authenticated caller for permission decisions.
type Actor struct {
	ID       int64
	Username string
	Role     Role
}
