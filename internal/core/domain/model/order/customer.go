package order

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrCustomerIsNotConstructed is returned for a zero Customer.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via RegisteredCustomer or GuestCustomer")

// GuestProfile is the contact data a guest leaves at checkout.
type GuestProfile struct {
	Name  string
	Phone string
	Email string
}

// Customer references either a registered user or an embedded guest profile,
// never both.
type Customer struct {
	id    *kernel.UUID
	guest *GuestProfile
}

// RegisteredCustomer references a platform user.
func RegisteredCustomer(id kernel.UUID) (Customer, error) {
	if err := id.Validate(); err != nil {
		return Customer{}, err
	}
	return Customer{id: &id}, nil
}

// GuestCustomer embeds a guest profile. Name and phone are required.
func GuestCustomer(profile GuestProfile) (Customer, error) {
	p := GuestProfile{
		Name:  strings.TrimSpace(profile.Name),
		Phone: strings.TrimSpace(profile.Phone),
		Email: strings.TrimSpace(profile.Email),
	}

	var errList []error
	if p.Name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("guestName"))
	}
	if p.Phone == "" {
		errList = append(errList, errs.NewValueIsRequiredError("guestPhone"))
	}
	if err := errors.Join(errList...); err != nil {
		return Customer{}, err
	}
	return Customer{guest: &p}, nil
}

// IsGuest reports whether the order was placed without an account.
func (c Customer) IsGuest() bool {
	return c.guest != nil
}

// ID returns the registered customer id; ok is false for guests.
func (c Customer) ID() (kernel.UUID, bool) {
	if c.id == nil {
		return kernel.UUID{}, false
	}
	return *c.id, true
}

// Guest returns the guest profile; ok is false for registered customers.
func (c Customer) Guest() (GuestProfile, bool) {
	if c.guest == nil {
		return GuestProfile{}, false
	}
	return *c.guest, true
}

// IsCustomer reports whether id is the registered owner.
func (c Customer) IsCustomer(id kernel.UUID) bool {
	return c.id != nil && c.id.IsEqual(id)
}

func (c Customer) Validate() error {
	if (c.id == nil) == (c.guest == nil) {
		return ErrCustomerIsNotConstructed
	}
	return nil
}
