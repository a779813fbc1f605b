package market

import "github.com/shopspring/decimal"

// Trade is a single public trade print from the futures REST API.
// BuyerMaker=true means the aggressor was a seller (taker sell).
type Trade struct {
	Price      decimal.Decimal
	Quantity   decimal.Decimal
	BuyerMaker bool
	Time       int64
}

// BookLevel is one resting price level of an order-book snapshot.
type BookLevel struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}
