package stock

import (
	"context"
	"errors"

	"stock-manager/core/apperror"
	"stock-manager/feature/stock/models"

	"gorm.io/gorm"
)

// ListFilter narrows a ledger listing.
type ListFilter struct {
	// Kind restricts to one entry variant when set.
	Kind *models.Kind
	// MinOwned keeps only entries with Owned strictly greater than the value.
	MinOwned *int64
	// IncludeHidden also returns entries the user has hidden.
	IncludeHidden bool
}

// EntryRepository is the stock ledger store. The reconciliation engine is its
// only writer; mutations to a given entry id are serialized by the underlying
// storage row.
type EntryRepository interface {
	Insert(ctx context.Context, entry *models.StockEntry) error
	Get(ctx context.Context, id uint64) (*models.StockEntry, error)
	Update(ctx context.Context, entry *models.StockEntry) error
	// Delete removes the entry and returns the deleted row for downstream use.
	Delete(ctx context.Context, id uint64) (*models.StockEntry, error)
	List(ctx context.Context, filter ListFilter) ([]models.StockEntry, error)
}

type gormEntryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates the gorm-backed ledger repository.
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &gormEntryRepository{db: db}
}

func (r *gormEntryRepository) Insert(ctx context.Context, entry *models.StockEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return apperror.Wrap("LedgerInsert", apperror.KindStorage, err)
	}
	return nil
}

func (r *gormEntryRepository) Get(ctx context.Context, id uint64) (*models.StockEntry, error) {
	var entry models.StockEntry
	err := r.db.WithContext(ctx).First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.New("LedgerGet", apperror.KindNotFound, "stock entry not found: %d", id)
	}
	if err != nil {
		return nil, apperror.Wrap("LedgerGet", apperror.KindStorage, err)
	}
	return &entry, nil
}

func (r *gormEntryRepository) Update(ctx context.Context, entry *models.StockEntry) error {
	// Save writes all fields; read-modify-write per id is serialized by the
	// caller, so a full-row save cannot lose concurrent partial updates.
	result := r.db.WithContext(ctx).Save(entry)
	if result.Error != nil {
		return apperror.Wrap("LedgerUpdate", apperror.KindStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.New("LedgerUpdate", apperror.KindNotFound, "stock entry not found: %d", entry.ID)
	}
	return nil
}

func (r *gormEntryRepository) Delete(ctx context.Context, id uint64) (*models.StockEntry, error) {
	entry, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&models.StockEntry{}, id).Error; err != nil {
		return nil, apperror.Wrap("LedgerDelete", apperror.KindStorage, err)
	}
	return entry, nil
}

func (r *gormEntryRepository) List(ctx context.Context, filter ListFilter) ([]models.StockEntry, error) {
	query := r.db.WithContext(ctx).Model(&models.StockEntry{})

	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if filter.MinOwned != nil {
		query = query.Where("owned > ?", *filter.MinOwned)
	}
	if !filter.IncludeHidden {
		query = query.Where("is_hidden = ?", false)
	}

	var entries []models.StockEntry
	if err := query.Order("id").Find(&entries).Error; err != nil {
		return nil, apperror.Wrap("LedgerList", apperror.KindStorage, err)
	}
	return entries, nil
}
