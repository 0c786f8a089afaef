package market

// OrderType is the direction of an order-book listing.
type OrderType string

const (
	// OrderTypeSell marks an open sell order.
	OrderTypeSell OrderType = "sell"
	// OrderTypeBuy marks an open buy order.
	OrderTypeBuy OrderType = "buy"
)

// OrderItem identifies the item an order is posted for.
type OrderItem struct {
	// ID is the marketplace item id.
	ID string `json:"id"`
	// URLName is the stable item identifier used across the API.
	URLName string `json:"url_name"`
	// Name is the display name.
	Name string `json:"en,omitempty"`
}

// Order is one open order-book listing owned by the trader.
type Order struct {
	ID       string     `json:"id"`
	Platinum int64      `json:"platinum"`
	Quantity int64      `json:"quantity"`
	Visible  bool       `json:"visible"`
	Type     OrderType  `json:"order_type"`
	Item     *OrderItem `json:"item,omitempty"`
}

// Orders is the trader's open order book split by direction.
type Orders struct {
	SellOrders []Order `json:"sell_orders"`
	BuyOrders  []Order `json:"buy_orders"`
}

// FindSell returns the open sell order for the given item url name, or nil.
func (o *Orders) FindSell(urlName string) *Order {
	for i := range o.SellOrders {
		if o.SellOrders[i].Item != nil && o.SellOrders[i].Item.URLName == urlName {
			return &o.SellOrders[i]
		}
	}
	return nil
}

// OrderSpec describes a new order-book listing.
type OrderSpec struct {
	ItemID   string    `json:"item_id"`
	Platinum int64     `json:"platinum"`
	Quantity int64     `json:"quantity"`
	Visible  bool      `json:"visible"`
	Type     OrderType `json:"order_type"`
	Rank     *int64    `json:"rank,omitempty"`
}

// AuctionAttribute is one rolled riven attribute as the marketplace carries it.
type AuctionAttribute struct {
	Positive bool    `json:"positive"`
	Value    float64 `json:"value"`
	URLName  string  `json:"url_name"`
}

// AuctionItem is the riven embedded in an auction listing.
type AuctionItem struct {
	Type          string             `json:"type"`
	WeaponURLName string             `json:"weapon_url_name"`
	Name          string             `json:"name"`
	ModRank       int64              `json:"mod_rank"`
	ReRolls       int64              `json:"re_rolls"`
	MasteryLevel  int64              `json:"mastery_level"`
	Polarity      string             `json:"polarity"`
	Attributes    []AuctionAttribute `json:"attributes"`
}

// Auction is one auction-style listing owned by the trader.
type Auction struct {
	ID            string      `json:"id"`
	StartingPrice int64       `json:"starting_price"`
	BuyoutPrice   *int64      `json:"buyout_price,omitempty"`
	Visible       bool        `json:"visible"`
	Closed        bool        `json:"closed"`
	Item          AuctionItem `json:"item"`
}
