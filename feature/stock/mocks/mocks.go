package mocks

import (
	"context"

	"stock-manager/feature/catalog"
	"stock-manager/feature/stock"
	"stock-manager/feature/stock/models"

	"github.com/stretchr/testify/mock"
)

// EntryRepository is a mock implementation of stock.EntryRepository
type EntryRepository struct {
	mock.Mock
}

func (m *EntryRepository) Insert(ctx context.Context, entry *models.StockEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *EntryRepository) Get(ctx context.Context, id uint64) (*models.StockEntry, error) {
	args := m.Called(ctx, id)
	if entry, ok := args.Get(0).(*models.StockEntry); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) Update(ctx context.Context, entry *models.StockEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *EntryRepository) Delete(ctx context.Context, id uint64) (*models.StockEntry, error) {
	args := m.Called(ctx, id)
	if entry, ok := args.Get(0).(*models.StockEntry); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) List(ctx context.Context, filter stock.ListFilter) ([]models.StockEntry, error) {
	args := m.Called(ctx, filter)
	if entries, ok := args.Get(0).([]models.StockEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

// TransactionLog is a mock implementation of stock.TransactionLog
type TransactionLog struct {
	mock.Mock
}

func (m *TransactionLog) Append(ctx context.Context, record *models.TransactionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *TransactionLog) List(ctx context.Context, filter stock.TransactionFilter) ([]models.TransactionRecord, error) {
	args := m.Called(ctx, filter)
	if records, ok := args.Get(0).([]models.TransactionRecord); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

// CatalogResolver is a mock implementation of stock.CatalogResolver
type CatalogResolver struct {
	mock.Mock
}

func (m *CatalogResolver) Resolve(ctx context.Context, urlName string, sub *catalog.SubType) (*catalog.ItemDescriptor, error) {
	args := m.Called(ctx, urlName, sub)
	if item, ok := args.Get(0).(*catalog.ItemDescriptor); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogResolver) ResolveRivenWeapon(ctx context.Context, urlName string) (*catalog.RivenWeapon, error) {
	args := m.Called(ctx, urlName)
	if weapon, ok := args.Get(0).(*catalog.RivenWeapon); ok {
		return weapon, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogResolver) ResolveAttribute(ctx context.Context, urlName string) (*catalog.AttributeDescriptor, error) {
	args := m.Called(ctx, urlName)
	if attr, ok := args.Get(0).(*catalog.AttributeDescriptor); ok {
		return attr, args.Error(1)
	}
	return nil, args.Error(1)
}
