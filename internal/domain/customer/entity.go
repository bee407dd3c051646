package customer

import (
	"errors"
	"regexp"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrMissingName  = errors.New("first and last name are required")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	if !emailPattern.MatchString(value) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: value}, nil
}

func (e Email) String() string {
	return e.value
}

// Customer identifies who a booking belongs to. Identity is keyed by email;
// a customer may additionally be linked to a user account, at most once.
type Customer struct {
	id        uuid.UUID
	firstName string
	lastName  string
	email     Email
	phone     string
	userID    *uuid.UUID
}

func NewCustomer(firstName, lastName string, email Email, phone string, userID *uuid.UUID) (*Customer, error) {
	if firstName == "" || lastName == "" {
		return nil, ErrMissingName
	}

	return &Customer{
		id:        uuid.New(),
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		phone:     phone,
		userID:    userID,
	}, nil
}

func ReconstructCustomer(id uuid.UUID, firstName, lastName, email, phone string, userID *uuid.UUID) *Customer {
	return &Customer{
		id:        id,
		firstName: firstName,
		lastName:  lastName,
		email:     Email{value: email},
		phone:     phone,
		userID:    userID,
	}
}

func (c *Customer) IsLinked() bool {
	return c.userID != nil
}

// Link attaches the customer to a user account. Linking is first-writer-wins:
// an already linked customer is left untouched.
func (c *Customer) Link(userID uuid.UUID) bool {
	if c.userID != nil {
		return false
	}
	c.userID = &userID
	return true
}

func (c *Customer) ID() uuid.UUID      { return c.id }
func (c *Customer) FirstName() string  { return c.firstName }
func (c *Customer) LastName() string   { return c.lastName }
func (c *Customer) Email() Email       { return c.email }
func (c *Customer) Phone() string      { return c.phone }
func (c *Customer) UserID() *uuid.UUID { return c.userID }
