// Package userrepo reads customer and staff identities. Roles are stored as a
// comma separated list of role names.
package userrepo

import (
	"context"
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string
	Email    string `gorm:"index"`
	Phone    string
	Region   string `gorm:"index"`
	Roles    string
}

func (UserDTO) TableName() string {
	return "users"
}

// GormUserRepository implements ports.UserDirectory.
type GormUserRepository struct {
	db *gorm.DB
}

var _ ports.UserDirectory = (*GormUserRepository)(nil)

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*identity.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Save inserts the user or overwrites the stored row with the same id.
func (r *GormUserRepository) Save(ctx context.Context, u *identity.User) error {
	roles := make([]string, 0, len(u.Roles()))
	for _, role := range u.Roles() {
		roles = append(roles, role.String())
	}

	dto := UserDTO{
		ID:       u.ID().Bytes(),
		FullName: u.FullName(),
		Email:    u.Email(),
		Phone:    u.Phone(),
		Region:   u.Region(),
		Roles:    strings.Join(roles, ","),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "email", "phone", "region", "roles"}),
	}).Create(&dto).Error
}

func toDomain(dto UserDTO) (*identity.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var roles []identity.Role
	for _, name := range strings.Split(dto.Roles, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		role, roleErr := identity.ParseRole(name)
		if roleErr != nil {
			return nil, roleErr
		}
		roles = append(roles, role)
	}

	return identity.NewUser(id, dto.FullName, dto.Email, dto.Phone, dto.Region, roles...)
}
