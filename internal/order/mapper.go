package order

import "time"

// View is the outward-facing projection of an order. Pure field mapping,
// no business logic.
type View struct {
	ID         int64         `json:"id"`
	Status     PaymentStatus `json:"status"`
	TotalCents int64         `json:"totalCents"`
	CreatedAt  time.Time     `json:"createdAt"`
	Items      []ItemView    `json:"items"`
}

type ItemView struct {
	ProductID      int64  `json:"productId"`
	ProductName    string `json:"productName"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
	TotalCents     int64  `json:"totalCents"`
}

func ToView(o *Order) *View {
	if o == nil {
		return nil
	}

	items := make([]ItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, ItemView{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			TotalCents:     item.TotalCents,
		})
	}

	return &View{
		ID:         o.ID,
		Status:     o.Status,
		TotalCents: o.TotalCents,
		CreatedAt:  o.CreatedAt,
		Items:      items,
	}
}
