package domain

import "time"

// Company represents a registered company. Trips are owned by exactly
// one company; users are linked through a many-to-many membership.
type Company struct {
	ID               string
	Name             string
	Address          string
	ContactEmail     string
	ContactPhone     string
	RegistrationDate time.Time
}
