package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// TransactionDirection is the side of a completed trade.
type TransactionDirection string

const (
	DirectionPurchase TransactionDirection = "purchase"
	DirectionSale     TransactionDirection = "sale"
)

// TransactionItemKind tags what kind of good a trade moved.
type TransactionItemKind string

const (
	TransactionItem  TransactionItemKind = "item"
	TransactionRiven TransactionItemKind = "riven"
)

// Extra is a free-form snapshot attached to a transaction, e.g. the riven
// attribute set at the time of sale. Stored as one JSON column.
type Extra map[string]any

func (e Extra) Value() (driver.Value, error) {
	if e == nil {
		return nil, nil
	}
	return json.Marshal(e)
}

func (e *Extra) Scan(value any) error {
	return scanJSON(value, e)
}

// TransactionRecord is one completed trade. Records are created once and
// never mutated or deleted; together they form the audit trail independent
// of the current ledger state.
type TransactionRecord struct {
	ID         uint64               `gorm:"primaryKey" json:"id"`
	ItemID     string               `gorm:"size:64" json:"item_id"`
	URLName    string               `gorm:"size:128;index" json:"url_name"`
	Name       string               `gorm:"size:128" json:"name"`
	UniqueName string               `gorm:"size:255" json:"unique_name"`
	Kind       TransactionItemKind  `gorm:"size:16" json:"kind"`
	Direction  TransactionDirection `gorm:"size:16;index" json:"direction"`
	Quantity   int64                `json:"quantity"`
	// UnitPrice is the agreed price per unit, in platinum.
	UnitPrice int64     `json:"unit_price"`
	SubType   *SubType  `gorm:"type:json" json:"sub_type,omitempty"`
	Extra     Extra     `gorm:"type:json" json:"extra,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the transaction log table name.
func (TransactionRecord) TableName() string {
	return "transactions"
}
