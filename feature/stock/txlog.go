package stock

import (
	"context"

	"stock-manager/core/apperror"
	"stock-manager/feature/stock/models"

	"gorm.io/gorm"
)

// TransactionFilter narrows a transaction log listing.
type TransactionFilter struct {
	Direction *models.TransactionDirection
	URLName   string
}

// TransactionLog is the append-only trade record. It exposes no update or
// delete entry points; completed trades are immutable.
type TransactionLog interface {
	Append(ctx context.Context, record *models.TransactionRecord) error
	List(ctx context.Context, filter TransactionFilter) ([]models.TransactionRecord, error)
}

type gormTransactionLog struct {
	db *gorm.DB
}

// NewTransactionLog creates the gorm-backed transaction log.
func NewTransactionLog(db *gorm.DB) TransactionLog {
	return &gormTransactionLog{db: db}
}

func (l *gormTransactionLog) Append(ctx context.Context, record *models.TransactionRecord) error {
	if err := l.db.WithContext(ctx).Create(record).Error; err != nil {
		return apperror.Wrap("TransactionAppend", apperror.KindStorage, err)
	}
	return nil
}

func (l *gormTransactionLog) List(ctx context.Context, filter TransactionFilter) ([]models.TransactionRecord, error) {
	query := l.db.WithContext(ctx).Model(&models.TransactionRecord{})

	if filter.Direction != nil {
		query = query.Where("direction = ?", *filter.Direction)
	}
	if filter.URLName != "" {
		query = query.Where("url_name = ?", filter.URLName)
	}

	var records []models.TransactionRecord
	if err := query.Order("id").Find(&records).Error; err != nil {
		return nil, apperror.Wrap("TransactionList", apperror.KindStorage, err)
	}
	return records, nil
}
