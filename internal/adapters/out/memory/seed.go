package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
)

// Seed is the fixture format accepted by LoadSeed.
//
//	{
//	  "products": [{"id": "…", "title": "Notebook", "price": 500, "stock": 10}],
//	  "users":    [{"id": "…", "fullName": "Amina B", "phone": "0550…", "region": "Alger", "roles": ["admin"]}]
//	}
type Seed struct {
	Products []SeedProduct `json:"products"`
	Users    []SeedUser    `json:"users"`
}

type SeedProduct struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type SeedUser struct {
	ID       string   `json:"id"`
	FullName string   `json:"fullName"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Region   string   `json:"region"`
	Roles    []string `json:"roles"`
}

// DecodeSeed parses a fixture into domain objects. Invalid entries are
// reported together and skipped; the valid ones are still returned.
func DecodeSeed(r io.Reader) ([]*catalog.Product, []*identity.User, error) {
	var seed Seed
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return nil, nil, fmt.Errorf("decode seed: %w", err)
	}

	var (
		products = make([]*catalog.Product, 0, len(seed.Products))
		users    = make([]*identity.User, 0, len(seed.Users))
		errList  []error
	)
	for _, sp := range seed.Products {
		p, err := seedProduct(sp)
		if err != nil {
			errList = append(errList, fmt.Errorf("product %s: %w", sp.ID, err))
			continue
		}
		products = append(products, p)
	}
	for _, su := range seed.Users {
		u, err := seedUser(su)
		if err != nil {
			errList = append(errList, fmt.Errorf("user %s: %w", su.ID, err))
			continue
		}
		users = append(users, u)
	}
	return products, users, errors.Join(errList...)
}

// LoadSeed decodes a fixture and fills c and d.
func LoadSeed(r io.Reader, c *Catalog, d *Directory) error {
	products, users, err := DecodeSeed(r)
	for _, p := range products {
		c.Put(p)
	}
	for _, u := range users {
		d.Put(u)
	}
	return err
}

func seedProduct(sp SeedProduct) (*catalog.Product, error) {
	id, err := kernel.UUIDFromString(sp.ID)
	if err != nil {
		return nil, err
	}
	price, err := kernel.MoneyFromFloat(sp.Price)
	if err != nil {
		return nil, err
	}
	return catalog.NewProduct(id, sp.Title, price, sp.Stock)
}

func seedUser(su SeedUser) (*identity.User, error) {
	id, err := kernel.UUIDFromString(su.ID)
	if err != nil {
		return nil, err
	}
	roles := make([]identity.Role, 0, len(su.Roles))
	for _, name := range su.Roles {
		role, err := identity.ParseRole(name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return identity.NewUser(id, su.FullName, su.Email, su.Phone, su.Region, roles...)
}
