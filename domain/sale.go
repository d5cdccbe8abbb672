package domain

import "time"

type Sale struct {
	ID         int64     `db:"id" json:"id"`
	PurchaseID int64     `db:"purchase_id" json:"purchaseId"`
	Quantity   int64     `db:"quantity" json:"quantity"`
	SalePrice  Money     `db:"sale_price_cents" json:"salePrice"`
	SaleDate   time.Time `db:"sale_date" json:"saleDate"`
	Total      Money     `db:"total_cents" json:"total"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

type SaleInput struct {
	PurchaseID int64  `json:"purchaseId"`
	Quantity   int64  `json:"quantity"`
	SalePrice  *Money `json:"salePrice"`
	SaleDate   string `json:"saleDate"`
}

// NewSale validates in and computes the total. SaleDate defaults to now.
func (in SaleInput) NewSale(now time.Time) (Sale, error) {
	s := Sale{PurchaseID: in.PurchaseID, Quantity: in.Quantity}
	if s.PurchaseID <= 0 || in.SalePrice == nil {
		return s, Validationf("purchaseId, quantity and salePrice are required")
	}
	if s.Quantity <= 0 {
		return s, Validationf("sale quantity must be greater than 0")
	}
	if in.SalePrice.IsNegative() {
		return s, Validationf("salePrice must not be negative")
	}
	s.SalePrice = NewMoney(in.SalePrice.Decimal)
	if err := checkQuantity("sale quantity", s.Quantity); err != nil {
		return s, err
	}
	if err := checkAmount("salePrice", s.SalePrice); err != nil {
		return s, err
	}
	sold, err := ParseDate("saleDate", in.SaleDate)
	if err != nil {
		return s, err
	}
	if sold == nil {
		t := now.UTC()
		sold = &t
	}
	s.SaleDate = *sold
	s.Total = s.SalePrice.Times(s.Quantity)
	return s, checkAmount("sale total", s.Total)
}
