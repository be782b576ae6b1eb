package domain

// User is an identity known to the persistence layer. Guests have an empty
// PasswordHash and a display name chosen at join time.
type User struct {
	Id           string
	Username     string
	PasswordHash string
	IsGuest      bool
}
