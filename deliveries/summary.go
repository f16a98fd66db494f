package deliveries

import (
	"food-delivery-admin/models"
	"food-delivery-admin/statemachine"

	"github.com/shopspring/decimal"
)

// Summary aggregates orders for the dashboard.
type Summary struct {
	Counts  map[models.OrderStatus]int `json:"counts"`
	Total   int                        `json:"total"`
	Open    int                        `json:"open"`
	Revenue decimal.Decimal            `json:"revenue"`
}

// Summarize counts orders per status; revenue only includes delivered
// orders.
func Summarize(orders []models.DeliveryOrder) Summary {
	s := Summary{Counts: make(map[models.OrderStatus]int, len(models.AllStatuses)), Revenue: decimal.Zero}
	for _, st := range models.AllStatuses {
		s.Counts[st] = 0
	}
	for _, o := range orders {
		s.Counts[o.Status]++
		s.Total++
		if !statemachine.IsTerminal(o.Status) {
			s.Open++
		}
		if o.Status == models.StatusDelivered {
			s.Revenue = s.Revenue.Add(o.TotalPrice)
		}
	}
	return s
}
