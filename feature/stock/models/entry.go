package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Kind is the variant tag of a stock entry.
type Kind string

const (
	// KindPlain marks a fungible tradeable item with a quantity.
	KindPlain Kind = "plain"
	// KindRiven marks a uniquely-rolled riven mod; owned is always 0 or 1.
	KindRiven Kind = "riven"
)

// Status is the lifecycle state of a stock entry.
type Status string

const (
	StatusPending  Status = "pending"
	StatusLive     Status = "live"
	StatusSold     Status = "sold"
	StatusInactive Status = "inactive"
)

// SubType is a variant discriminator (rank, refinement) stored as a JSON
// column next to the item identifier.
type SubType struct {
	Rank    *int64  `json:"rank,omitempty"`
	Variant *string `json:"variant,omitempty"`
}

func (s SubType) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *SubType) Scan(value any) error {
	return scanJSON(value, s)
}

// PriceObservation is one past price point of an entry.
type PriceObservation struct {
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// PriceHistory is the ordered, append-only sequence of past price
// observations, serialized as one JSON column.
type PriceHistory []PriceObservation

func (h PriceHistory) Value() (driver.Value, error) {
	if h == nil {
		h = PriceHistory{}
	}
	return json.Marshal(h)
}

func (h *PriceHistory) Scan(value any) error {
	return scanJSON(value, h)
}

// RivenAttribute is one rolled attribute of a riven mod.
type RivenAttribute struct {
	// URLName identifies the attribute in the catalog.
	URLName string `json:"url_name"`
	// Positive is false for the riven's curse attribute.
	Positive bool `json:"positive"`
	// Value is the rolled magnitude.
	Value float64 `json:"value"`
}

// MatchFilter narrows which remote auctions may be matched against this
// entry when importing or auditing. A disabled filter matches everything.
type MatchFilter struct {
	Enabled    bool     `json:"enabled"`
	Polarity   *string  `json:"polarity,omitempty"`
	MinReRolls *int64   `json:"min_re_rolls,omitempty"`
	MaxReRolls *int64   `json:"max_re_rolls,omitempty"`
	Attributes []string `json:"attributes,omitempty"`
}

// RivenDetail carries the riven-only fields of an entry. It is present iff
// Kind == KindRiven, so an entry can never hold a half-filled riven shape.
type RivenDetail struct {
	ModName     string           `json:"mod_name"`
	Rank        int64            `json:"rank"`
	MasteryRank int64            `json:"mastery_rank"`
	ReRolls     int64            `json:"re_rolls"`
	Polarity    string           `json:"polarity"`
	Attributes  []RivenAttribute `json:"attributes"`
	Filter      *MatchFilter     `json:"filter,omitempty"`
}

func (d RivenDetail) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *RivenDetail) Scan(value any) error {
	return scanJSON(value, d)
}

// StockEntry is one row of the stock ledger: a currently-owned position in a
// single item or riven. The ledger is the single source of truth for owned
// quantity; remote listing state only mirrors it.
type StockEntry struct {
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Kind discriminates the plain/riven variant.
	Kind Kind `gorm:"size:16;index" json:"kind"`
	// ItemID is the marketplace catalog id, resolved once at creation.
	ItemID string `gorm:"size:64" json:"item_id"`
	// URLName is the stable catalog identifier of the item or weapon.
	URLName    string   `gorm:"size:128;index" json:"url_name"`
	Name       string   `gorm:"size:128" json:"name"`
	UniqueName string   `gorm:"size:255" json:"unique_name"`
	SubType    *SubType `gorm:"type:json" json:"sub_type,omitempty"`
	// Bought is the cumulative number of units ever acquired through this
	// entry; it never decreases.
	Bought int64 `json:"bought"`
	// Owned is the currently held quantity. For rivens it is 0 or 1.
	Owned        int64  `json:"owned"`
	MinimumPrice *int64 `json:"minimum_price,omitempty"`
	ListPrice    *int64 `json:"list_price,omitempty"`
	IsHidden     bool   `json:"is_hidden"`
	Status       Status `gorm:"size:16" json:"status"`
	// RemoteListingID references the open remote listing mirroring this
	// entry, when one exists. At most one listing corresponds to an entry.
	RemoteListingID *string      `gorm:"size:64" json:"remote_listing_id,omitempty"`
	PriceHistory    PriceHistory `gorm:"type:json" json:"price_history"`
	// Riven is present iff Kind == KindRiven.
	Riven     *RivenDetail `gorm:"type:json" json:"riven,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// TableName sets the ledger table name.
func (StockEntry) TableName() string {
	return "stock_entries"
}

// IsRiven reports whether the entry is the riven variant.
func (e *StockEntry) IsRiven() bool {
	return e.Kind == KindRiven
}

// RecordPrice appends a price observation to the entry's history.
// The history is append-only; retention is an external concern.
func (e *StockEntry) RecordPrice(price int64, at time.Time) {
	e.PriceHistory = append(e.PriceHistory, PriceObservation{Price: price, CreatedAt: at})
}

// scanJSON decodes a JSON column value that drivers may hand over as either
// []byte or string.
func scanJSON(value any, out any) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, out)
	case string:
		return json.Unmarshal([]byte(v), out)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}
