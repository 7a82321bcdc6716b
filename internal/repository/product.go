package repository

import (
	"context"

	"medieaze-storefront/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Seed(ctx context.Context) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	GetByCategory(ctx context.Context, category string) ([]*model.Product, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Seed(ctx context.Context) error {
	products := []model.Product{
		{ID: "wheelchair_std", Name: "Standard Wheelchair", Description: "Foldable steel wheelchair with fixed armrests", Category: "mobility", BuyPrice: 6499, RentPrice: 899, Currency: "INR"},
		{ID: "hospital_bed", Name: "Semi-Fowler Hospital Bed", Description: "Two-function manual recliner bed with mattress", Category: "beds", BuyPrice: 24999, RentPrice: 2999, Currency: "INR"},
		{ID: "oxygen_conc_5l", Name: "Oxygen Concentrator 5L", Description: "5 litre per minute home oxygen concentrator", Category: "respiratory", BuyPrice: 38500, RentPrice: 4500, Currency: "INR"},
		{ID: "nebulizer", Name: "Compressor Nebulizer", Description: "Piston compressor nebulizer with child and adult masks", Category: "respiratory", BuyPrice: 1899, RentPrice: 299, Currency: "INR"},
		{ID: "cpap_auto", Name: "Auto CPAP Machine", Description: "Auto-titrating CPAP with heated humidifier", Category: "respiratory", BuyPrice: 42999, RentPrice: 5499, Currency: "INR"},
		{ID: "walker_foldable", Name: "Foldable Walker", Description: "Height adjustable aluminium walker", Category: "mobility", BuyPrice: 1599, RentPrice: 249, Currency: "INR"},
		{ID: "bp_monitor", Name: "Digital BP Monitor", Description: "Upper-arm automatic blood pressure monitor", Category: "monitoring", BuyPrice: 2199, RentPrice: 349, Currency: "INR"},
		{ID: "pulse_oximeter", Name: "Fingertip Pulse Oximeter", Description: "SpO2 and pulse rate fingertip monitor", Category: "monitoring", BuyPrice: 999, RentPrice: 149, Currency: "INR"},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) List(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) GetByCategory(ctx context.Context, category string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}
