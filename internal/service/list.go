package service

import (
	"context"

	"carrental-backend/internal/listing"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/query"
)

type listService struct {
	exec    query.Executor
	catalog *listing.Catalog
}

func NewListService(exec query.Executor, catalog *listing.Catalog) ListService {
	return &listService{exec: exec, catalog: catalog}
}

func (s *listService) List(ctx context.Context, entity string, scope listing.Scope, req query.ListRequest) (*query.ListResult, error) {
	logger.EnterMethod("listService.List", "entity", entity, "role", scope.Role, "start", req.Start, "length", req.Length)

	e, spec, err := s.catalog.Resolve(entity, scope)
	if err != nil {
		logger.ExitMethodWithError("listService.List", err, "entity", entity)
		return nil, err
	}

	res, err := query.Run(ctx, s.exec, req, spec)
	if err != nil {
		logger.ExitMethodWithError("listService.List", err, "entity", entity)
		return nil, err
	}

	if e.Decorate != nil {
		for _, row := range res.Data {
			e.Decorate(row)
		}
	}

	logger.ExitMethod("listService.List", "entity", entity, "recordsTotal", res.RecordsTotal, "rows", len(res.Data))
	return &res, nil
}
