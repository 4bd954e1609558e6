package customer

import "fmt"

// Customer is one restaurant customer. ID is zero until the repository
// persists the record and the database assigns an identifier.
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	Phone     string
	Notes     string
}

func NewCustomer(firstName, lastName, phone, notes string) *Customer {
	return &Customer{
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		Notes:     notes,
	}
}

func (c *Customer) FullName() string {
	return fmt.Sprintf("%s, %s", c.LastName, c.FirstName)
}

// VIPEntry is a read model for the top-reservation-holders ranking; it is
// derived by the repository and never persisted.
type VIPEntry struct {
	CustomerID       int64
	FullName         string
	ReservationCount int64
}
