package userrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/userrepo"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UserRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *UserRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&userrepo.UserDTO{}))
}

func (suite *UserRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE users").Error)
}

func (suite *UserRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UserRepositoryIntegrationTestSuite) TestSaveAndGet_KeepsRoles() {
	ctx := context.Background()
	repo := userrepo.NewGormUserRepository(suite.db)

	staff, err := identity.NewUser(kernel.NewUUID(), "Karim B", "karim@example.com", "0661000000", "Oran",
		identity.RoleAdmin, identity.RoleSuperAdmin)
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Save(ctx, staff))

	got, err := repo.Get(ctx, staff.ID())
	suite.Require().NoError(err)
	suite.Equal("Karim B", got.FullName())
	suite.Equal("Oran", got.Region())
	suite.True(got.IsStaff())
	suite.True(got.IsSuperAdmin())
}

func (suite *UserRepositoryIntegrationTestSuite) TestSave_CustomerWithoutRoles() {
	ctx := context.Background()
	repo := userrepo.NewGormUserRepository(suite.db)

	customer, err := identity.NewUser(kernel.NewUUID(), "Yacine", "", "0770111222", "Alger")
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Save(ctx, customer))

	got, err := repo.Get(ctx, customer.ID())
	suite.Require().NoError(err)
	suite.False(got.IsStaff())
	suite.Equal("0770111222", got.Phone())
}

func (suite *UserRepositoryIntegrationTestSuite) TestGet_NotFound() {
	repo := userrepo.NewGormUserRepository(suite.db)

	_, err := repo.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestUserRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UserRepositoryIntegrationTestSuite))
}
