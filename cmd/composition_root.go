package cmd

import (
	"fmt"
	"log/slog"

	"speedit/internal/adapters/out/ors"
	"speedit/internal/adapters/out/postgres"
	"speedit/internal/adapters/out/rediscache"
	"speedit/internal/adapters/out/stocklevel"
	"speedit/internal/core/application/usecases/commands"
	"speedit/internal/core/application/usecases/queries"
	"speedit/internal/core/ports"
	"speedit/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	routing    ports.RoutingProvider
	fillReader ports.FillLevelReader
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	var localityCache ors.LocalityCache
	if config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		cache, err := rediscache.NewRedisLocalityCache(client)
		if err != nil {
			return CompositionRoot{}, fmt.Errorf("create locality cache: %w", err)
		}
		localityCache = cache
	}

	routing, err := ors.NewProvider(config.ORSApiKey, localityCache, logger)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create routing provider: %w", err)
	}

	fillReader, err := stocklevel.NewGormFillLevelReader(gormDB)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create fill level reader: %w", err)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		routing:    routing,
		fillReader: fillReader,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreatePlanAllocationCommandHandler() commands.PlanAllocationCommandHandler {
	var f commands.AllocationUoWFactory = FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlanAllocationCommandHandler(f, c.routing, c.fillReader)
}

func (c *CompositionRoot) CreatePlanAndAllocateCommandHandler() commands.PlanAndAllocateCommandHandler {
	var f commands.AllocationUoWFactory = FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlanAndAllocateCommandHandler(f, c.routing, c.fillReader)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderItemCandidatesQueryHandler() queries.GetOrderItemCandidatesQueryHandler {
	return queries.NewGetOrderItemCandidatesQueryHandler(&c.uowFactory, c.routing, c.fillReader)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreatePlanAndAllocateCommandHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAllocationUoWFactory func() commands.AllocationUoW

func (f FuncAllocationUoWFactory) Create() commands.AllocationUoW {
	return f()
}
