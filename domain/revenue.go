package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SaleLine is one sale joined with its purchase and product, as read from storage.
type SaleLine struct {
	SaleID      int64     `db:"sale_id"`
	SalePrice   Money     `db:"sale_price_cents"`
	CostPrice   Money     `db:"cost_price_cents"`
	Quantity    int64     `db:"quantity"`
	ProductName string    `db:"product_name"`
	SaleDate    time.Time `db:"sale_date"`
}

// Revenue is the profit projection of a single sale.
type Revenue struct {
	SaleID      int64     `json:"saleId"`
	Revenue     Money     `json:"revenue"`
	SalePrice   Money     `json:"salePrice"`
	CostPrice   Money     `json:"costPrice"`
	Quantity    int64     `json:"quantity"`
	ProductName string    `json:"productName"`
	SaleDate    time.Time `json:"saleDate"`
}

// UnknownProduct names lines whose product could not be resolved.
const UnknownProduct = "Unknown"

// RevenueOf computes (salePrice - costPrice) * quantity for one line.
func RevenueOf(l SaleLine) Revenue {
	name := l.ProductName
	if name == "" {
		name = UnknownProduct
	}
	return Revenue{
		SaleID:      l.SaleID,
		Revenue:     l.SalePrice.Minus(l.CostPrice).Times(l.Quantity),
		SalePrice:   l.SalePrice,
		CostPrice:   l.CostPrice,
		Quantity:    l.Quantity,
		ProductName: name,
		SaleDate:    l.SaleDate,
	}
}

// Revenues maps RevenueOf over lines, keeping their order.
func Revenues(lines []SaleLine) []Revenue {
	out := make([]Revenue, 0, len(lines))
	for _, l := range lines {
		out = append(out, RevenueOf(l))
	}
	return out
}

// MonthSummary aggregates one calendar month.
type MonthSummary struct {
	Month   string `json:"month"`
	Bills   Money  `json:"bills"`
	Income  Money  `json:"income"`
	Revenue Money  `json:"revenue"`
	Units   int64  `json:"units"`
}

// SummarizeYear returns twelve entries, January first, for sales dated in year.
// Bills is cost of goods sold, Income is gross sales.
func SummarizeYear(revs []Revenue, year int) []MonthSummary {
	out := make([]MonthSummary, 12)
	for i := range out {
		out[i].Month = time.Month(i + 1).String()[:3]
	}
	for _, r := range revs {
		d := r.SaleDate.UTC()
		if d.Year() != year {
			continue
		}
		m := &out[d.Month()-1]
		m.Bills = m.Bills.Plus(r.CostPrice.Times(r.Quantity))
		m.Income = m.Income.Plus(r.SalePrice.Times(r.Quantity))
		m.Revenue = m.Revenue.Plus(r.Revenue)
		m.Units += r.Quantity
	}
	return out
}

// ProductTrend compares units sold this month against the previous month.
type ProductTrend struct {
	ProductName string          `json:"productName"`
	Current     int64           `json:"current"`
	Previous    int64           `json:"previous"`
	Change      decimal.Decimal `json:"change"`
}

// Trends groups sales by product name for the month containing now and the one
// before it. Change is the percentage difference, or 100 when the previous month
// sold nothing. Results are sorted by current units, descending, then by name.
func Trends(revs []Revenue, now time.Time) []ProductTrend {
	now = now.UTC()
	curStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevStart := curStart.AddDate(0, -1, 0)
	nextStart := curStart.AddDate(0, 1, 0)

	byName := make(map[string]*ProductTrend)
	for _, r := range revs {
		d := r.SaleDate.UTC()
		if d.Before(prevStart) || !d.Before(nextStart) {
			continue
		}
		t, ok := byName[r.ProductName]
		if !ok {
			t = &ProductTrend{ProductName: r.ProductName}
			byName[r.ProductName] = t
		}
		if d.Before(curStart) {
			t.Previous += r.Quantity
		} else {
			t.Current += r.Quantity
		}
	}

	hundred := decimal.NewFromInt(100)
	out := make([]ProductTrend, 0, len(byName))
	for _, t := range byName {
		switch {
		case t.Previous == 0 && t.Current == 0:
			t.Change = decimal.Zero
		case t.Previous == 0:
			t.Change = hundred
		default:
			diff := decimal.NewFromInt(t.Current - t.Previous)
			t.Change = diff.Div(decimal.NewFromInt(t.Previous)).Mul(hundred).Round(1)
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Current != out[j].Current {
			return out[i].Current > out[j].Current
		}
		return out[i].ProductName < out[j].ProductName
	})
	return out
}
