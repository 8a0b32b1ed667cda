package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

type companyRepository struct {
	coll *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) repository.CompanyRepository {
	return &companyRepository{coll: db.Collection(domain.CollectionCompanies)}
}

func (r *companyRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Company, error) {
	var c domain.Company
	if err := findOne(ctx, r.coll, repository.LiveByID(id), "company", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepository) ListActive(ctx context.Context) ([]domain.Company, error) {
	logger.EnterMethod("companyRepository.ListActive")
	companies, err := findAll[domain.Company](ctx, r.coll, repository.ActiveCompanies(),
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		logger.ExitMethodWithError("companyRepository.ListActive", err)
		return nil, err
	}
	logger.ExitMethod("companyRepository.ListActive", "count", len(companies))
	return companies, nil
}
