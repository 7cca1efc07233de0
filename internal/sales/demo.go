package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jkengne/boutique-pos-backend/internal/catalog"
	"github.com/jkengne/boutique-pos-backend/pkg/db/models"
)

type demoSaleSeed struct {
	customer   string
	items      []demoItemSeed
	total      int64
	minutesAgo int
}

type demoItemSeed struct {
	name     string
	quantity int
	price    int64
}

var demoSaleSeeds = []demoSaleSeed{
	{"Marie Ngassa", []demoItemSeed{{"Summer Dress", 2, 12700}, {"Sandals", 1, 8500}}, 25400, 0},
	{"Jean Kamga", []demoItemSeed{{"Men's Shirt", 1, 45600}}, 45600, 45},
	{"Sarah Mballa", []demoItemSeed{{"Evening Dress", 1, 78200}}, 78200, 75},
	{"Paul Foka", []demoItemSeed{{"Leather Jacket", 1, 32100}}, 32100, 100},
}

// demoSales builds the canned history shown to unauthenticated terminals.
// Demo commits are never appended here; without a session nothing is recorded.
func demoSales() []models.Sale {
	now := time.Now().UTC()
	out := make([]models.Sale, 0, len(demoSaleSeeds))
	for _, seed := range demoSaleSeeds {
		customer := seed.customer
		sale := models.Sale{
			ID:             uuid.New(),
			OwnerID:        catalog.DemoOwnerID,
			CustomerName:   &customer,
			Subtotal:       decimal.NewFromInt(seed.total),
			DiscountAmount: decimal.Zero,
			Total:          decimal.NewFromInt(seed.total),
			CreatedAt:      now.Add(-time.Duration(seed.minutesAgo) * time.Minute),
		}
		for i, item := range seed.items {
			sale.Items = append(sale.Items, models.SaleItem{
				ID:        uuid.New(),
				SaleID:    sale.ID,
				ProductID: uuid.New(),
				Name:      item.name,
				Category:  "Clothing",
				UnitPrice: decimal.NewFromInt(item.price),
				Quantity:  item.quantity,
				Position:  i,
			})
		}
		out = append(out, sale)
	}
	return out
}
