package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/courierapi"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/adapters/out/postgres/userrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// storage is the set of driven adapters behind one storage driver.
type storage struct {
	uowFactory ports.UnitOfWorkFactory
	orders     queries.OrderReader
	catalog    ports.ProductCatalog
	users      ports.UserDirectory

	seed  func(ctx context.Context, products []*catalog.Product, users []*identity.User) error
	close func() error
}

type CompositionRoot struct {
	cfg      Config
	logger   *slog.Logger
	registry *prometheus.Registry

	storage    storage
	uowFactory commands.OrderUoWFactory
	regions    *services.RegionResolver
	courier    *courierapi.Client

	lifecycle *metrics.LifecycleMetrics
	jobs      *metrics.JobMetrics
	http      *metrics.HTTPMetrics
}

// NewCompositionRoot opens the configured storage, loads the seed file and
// builds the courier client. Close releases the storage.
func NewCompositionRoot(
	ctx context.Context,
	cfg Config,
	registry *prometheus.Registry,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	st, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:       cfg,
		logger:    logger,
		registry:  registry,
		storage:   st,
		regions:   services.NewRegionResolver(),
		lifecycle: metrics.NewLifecycleMetrics(registry),
		jobs:      metrics.NewJobMetrics(registry),
		http:      metrics.NewHTTPMetrics(registry),
	}
	c.uowFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.storage.uowFactory.Create()
	})

	c.courier, err = courierapi.NewClient(cfg.Courier.Token, cfg.Courier.Key, c.regions,
		courierapi.WithBaseURL(cfg.Courier.BaseURL),
		courierapi.WithTimeout(cfg.Courier.Timeout),
		courierapi.WithProductLabel(cfg.Courier.ProductLabel),
		courierapi.WithRecorder(c.lifecycle),
		courierapi.WithLogger(logger),
	)
	if err != nil {
		return nil, errors.Join(err, st.close())
	}

	if err = c.loadSeed(ctx); err != nil {
		return nil, errors.Join(err, st.close())
	}

	return c, nil
}

// Close releases the storage connection.
func (c *CompositionRoot) Close() error {
	return c.storage.close()
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.uowFactory, c.storage.catalog, c.storage.users,
		time.Now, c.lifecycle, c.logger)
}

func (c *CompositionRoot) CreatePlaceGuestOrderCommandHandler() commands.PlaceGuestOrderCommandHandler {
	return commands.NewPlaceGuestOrderCommandHandler(c.uowFactory, c.storage.catalog, time.Now, c.lifecycle, c.logger)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.uowFactory, c.storage.users, c.lifecycle, c.logger)
}

func (c *CompositionRoot) CreateDeclineOrderCommandHandler() commands.DeclineOrderCommandHandler {
	return commands.NewDeclineOrderCommandHandler(c.uowFactory, c.storage.users, c.lifecycle, c.logger)
}

func (c *CompositionRoot) CreateMarkOrderReadyCommandHandler() commands.MarkOrderReadyCommandHandler {
	return commands.NewMarkOrderReadyCommandHandler(c.uowFactory, c.storage.users, c.courier, c.lifecycle, c.logger)
}

func (c *CompositionRoot) CreateMarkOrderDeliveredCommandHandler() commands.MarkOrderDeliveredCommandHandler {
	return commands.NewMarkOrderDeliveredCommandHandler(c.uowFactory, c.storage.users, c.lifecycle, c.logger)
}

func (c *CompositionRoot) CreateReassignOrderAdminCommandHandler() commands.ReassignOrderAdminCommandHandler {
	return commands.NewReassignOrderAdminCommandHandler(c.uowFactory, c.storage.users, c.lifecycle, c.logger)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.uowFactory, c.storage.users, c.logger)
}

func (c *CompositionRoot) CreateConfirmShipmentCommandHandler() commands.ConfirmShipmentCommandHandler {
	return commands.NewConfirmShipmentCommandHandler(c.uowFactory, c.storage.users, c.courier, c.logger)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.storage.orders, c.storage.users)
}

func (c *CompositionRoot) CreateGetAdminOrdersQueryHandler() queries.GetAdminOrdersQueryHandler {
	return queries.NewGetAdminOrdersQueryHandler(c.storage.orders, c.storage.users, c.logger)
}

func (c *CompositionRoot) CreateGetOrdersByAdminQueryHandler() queries.GetOrdersByAdminQueryHandler {
	return queries.NewGetOrdersByAdminQueryHandler(c.storage.orders, c.storage.users)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.storage.orders, c.storage.users)
}

func (c *CompositionRoot) CreateGetDeliveryStatusQueryHandler() queries.GetDeliveryStatusQueryHandler {
	return queries.NewGetDeliveryStatusQueryHandler(c.storage.orders, c.storage.users, c.courier, c.logger)
}

func (c *CompositionRoot) CreateGetShipmentStatusesQueryHandler() queries.GetShipmentStatusesQueryHandler {
	return queries.NewGetShipmentStatusesQueryHandler(c.storage.orders, c.courier, c.logger)
}

// CreateRouter wires every handler into the echo router.
func (c *CompositionRoot) CreateRouter() *echo.Echo {
	server := httpadapter.NewServer(httpadapter.Handlers{
		PlaceOrder:      c.CreatePlaceOrderCommandHandler(),
		PlaceGuestOrder: c.CreatePlaceGuestOrderCommandHandler(),
		AcceptOrder:     c.CreateAcceptOrderCommandHandler(),
		DeclineOrder:    c.CreateDeclineOrderCommandHandler(),
		MarkOrderReady:  c.CreateMarkOrderReadyCommandHandler(),
		MarkDelivered:   c.CreateMarkOrderDeliveredCommandHandler(),
		ReassignAdmin:   c.CreateReassignOrderAdminCommandHandler(),
		DeleteOrder:     c.CreateDeleteOrderCommandHandler(),
		ConfirmShipment: c.CreateConfirmShipmentCommandHandler(),

		CustomerOrders: c.CreateGetCustomerOrdersQueryHandler(),
		AdminOrders:    c.CreateGetAdminOrdersQueryHandler(),
		OrdersByAdmin:  c.CreateGetOrdersByAdminQueryHandler(),
		Order:          c.CreateGetOrderQueryHandler(),
		DeliveryStatus: c.CreateGetDeliveryStatusQueryHandler(),
	}, c.regions, c.logger)

	return httpadapter.NewRouter(server, c.http, metrics.Handler(c.registry), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetShipmentStatusesQueryHandler(), c.cfg.Jobs.DeliveryStatusSyncSpec,
		c.jobs, c.logger)
}

func (c *CompositionRoot) loadSeed(ctx context.Context) error {
	if c.cfg.SeedFile == "" {
		return nil
	}

	f, err := os.Open(c.cfg.SeedFile)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	products, users, decodeErr := memory.DecodeSeed(f)
	if decodeErr != nil && len(products) == 0 && len(users) == 0 {
		return decodeErr
	}
	if decodeErr != nil {
		c.logger.WarnContext(ctx, "seed file has invalid entries", "file", c.cfg.SeedFile, "error", decodeErr)
	}

	if err = c.storage.seed(ctx, products, users); err != nil {
		return fmt.Errorf("apply seed: %w", err)
	}
	c.logger.InfoContext(ctx, "seed loaded", "file", c.cfg.SeedFile,
		"products", len(products), "users", len(users))
	return nil
}

func openStorage(cfg Config) (storage, error) {
	switch cfg.Storage.Driver {
	case StorageMemory:
		return newMemoryStorage(), nil
	case StoragePostgres:
		return newGormStorage(postgresdriver.Open(cfg.DB.DSN()))
	case StorageSQLite:
		return newGormStorage(sqlite.Open(cfg.Storage.SQLitePath))
	}
	return storage{}, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func newMemoryStorage() storage {
	store := memory.NewOrderStore()
	cat := memory.NewCatalog()
	dir := memory.NewDirectory()
	return storage{
		uowFactory: memory.NewUnitOfWorkFactory(store),
		orders:     memory.NewOrderRepository(store),
		catalog:    cat,
		users:      dir,
		seed: func(_ context.Context, products []*catalog.Product, users []*identity.User) error {
			for _, p := range products {
				cat.Put(p)
			}
			for _, u := range users {
				dir.Put(u)
			}
			return nil
		},
		close: func() error { return nil },
	}
}

func newGormStorage(dialector gorm.Dialector) (storage, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return storage{}, fmt.Errorf("failed to connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return storage{}, err
	}

	if err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&productrepo.ProductDTO{},
		&userrepo.UserDTO{},
	); err != nil {
		return storage{}, errors.Join(fmt.Errorf("failed to migrate database: %w", err), sqlDB.Close())
	}

	products := productrepo.NewGormProductRepository(db)
	users := userrepo.NewGormUserRepository(db)
	return storage{
		uowFactory: postgres.NewGormUnitOfWorkFactory(db),
		orders:     orderrepo.NewGormOrderRepository(db),
		catalog:    products,
		users:      users,
		seed: func(ctx context.Context, seedProducts []*catalog.Product, seedUsers []*identity.User) error {
			return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				txProducts := productrepo.NewGormProductRepository(tx)
				for _, p := range seedProducts {
					if err := txProducts.Save(ctx, p); err != nil {
						return err
					}
				}
				txUsers := userrepo.NewGormUserRepository(tx)
				for _, u := range seedUsers {
					if err := txUsers.Save(ctx, u); err != nil {
						return err
					}
				}
				return nil
			})
		},
		close: sqlDB.Close,
	}, nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
