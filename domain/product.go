package domain

import (
	"strings"
	"time"
)

// ProductStatus is derived from the stock level on every quantity write.
type ProductStatus string

const (
	StatusInStock    ProductStatus = "in_stock"
	StatusOutOfStock ProductStatus = "out_of_stock"
)

// StatusFor returns the status matching a quantity.
func StatusFor(quantity int64) ProductStatus {
	if quantity > 0 {
		return StatusInStock
	}
	return StatusOutOfStock
}

type Product struct {
	ID           int64         `db:"id" json:"id"`
	Name         string        `db:"name" json:"name"`
	Quantity     int64         `db:"quantity" json:"quantity"`
	Price        Money         `db:"price_cents" json:"price"`
	ExpireDate   *time.Time    `db:"expire_date" json:"expireDate,omitempty"`
	Status       ProductStatus `db:"status" json:"status"`
	CategoryID   int64         `db:"category_id" json:"categoryId"`
	CategoryName string        `db:"category_name" json:"category,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updatedAt"`
}

type ProductInput struct {
	Name       string `json:"name"`
	Quantity   int64  `json:"quantity"`
	Price      Money  `json:"price"`
	ExpireDate string `json:"expireDate"`
	CategoryID int64  `json:"categoryId"`
}

// NewProduct validates in and returns the product to insert.
func (in ProductInput) NewProduct() (Product, error) {
	p := Product{
		Name:       strings.TrimSpace(in.Name),
		Quantity:   in.Quantity,
		Price:      NewMoney(in.Price.Decimal),
		CategoryID: in.CategoryID,
	}
	if p.Name == "" {
		return p, Validationf("name is required")
	}
	if p.CategoryID <= 0 {
		return p, Validationf("categoryId is required")
	}
	if p.Quantity < 0 {
		return p, Validationf("quantity must not be negative")
	}
	if !p.Price.IsPositive() {
		return p, Validationf("price must be greater than zero")
	}
	if err := checkQuantity("quantity", p.Quantity); err != nil {
		return p, err
	}
	if err := checkAmount("price", p.Price); err != nil {
		return p, err
	}
	exp, err := ParseDate("expireDate", in.ExpireDate)
	if err != nil {
		return p, err
	}
	p.ExpireDate = exp
	p.Status = StatusFor(p.Quantity)
	return p, nil
}

// ProductUpdate carries the fields a client wants to change; nil means keep.
type ProductUpdate struct {
	Name       *string `json:"name"`
	Quantity   *int64  `json:"quantity"`
	Price      *Money  `json:"price"`
	ExpireDate *string `json:"expireDate"`
	CategoryID *int64  `json:"categoryId"`
}

// Apply validates u against p and writes the changes into p.
func (u ProductUpdate) Apply(p *Product) error {
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return Validationf("name must not be empty")
		}
		p.Name = name
	}
	if u.Quantity != nil {
		if *u.Quantity < 0 {
			return Validationf("quantity must not be negative")
		}
		if err := checkQuantity("quantity", *u.Quantity); err != nil {
			return err
		}
		p.Quantity = *u.Quantity
	}
	if u.Price != nil {
		if !u.Price.IsPositive() {
			return Validationf("price must be greater than zero")
		}
		if err := checkAmount("price", *u.Price); err != nil {
			return err
		}
		p.Price = NewMoney(u.Price.Decimal)
	}
	if u.ExpireDate != nil {
		exp, err := ParseDate("expireDate", *u.ExpireDate)
		if err != nil {
			return err
		}
		p.ExpireDate = exp
	}
	if u.CategoryID != nil {
		if *u.CategoryID <= 0 {
			return Validationf("categoryId must be positive")
		}
		p.CategoryID = *u.CategoryID
	}
	p.Status = StatusFor(p.Quantity)
	return nil
}
