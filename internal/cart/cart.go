package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/anupamtiwari/homecraft-backend/internal/pricing"
	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
)

// Line is one service entry in a session cart. Prices are snapshotted from
// the catalog when the line is added; totals are never stored.
type Line struct {
	ServiceID         uuid.UUID           `json:"service_id"`
	ServiceName       string              `json:"service_name"`
	SelectedServices  []enums.ServiceType `json:"selected_services"`
	Quantity          int                 `json:"quantity"`
	InstallationPrice *decimal.Decimal    `json:"installation_price,omitempty"`
	DismantlingPrice  *decimal.Decimal    `json:"dismantling_price,omitempty"`
	RepairPrice       *decimal.Decimal    `json:"repair_price,omitempty"`
}

// PricingLine converts the stored line into the pricing engine's view.
func (l Line) PricingLine() pricing.Line {
	return pricing.Line{
		Prices: pricing.SubServicePrices{
			Installation: l.InstallationPrice,
			Dismantling:  l.DismantlingPrice,
			Repair:       l.RepairPrice,
		},
		Selected: l.SelectedServices,
		Quantity: l.Quantity,
	}
}

// LineView is a cart line with its derived amounts.
type LineView struct {
	Line
	UnitAmount decimal.Decimal `json:"unit_amount"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

// View is the cart as served to clients; totals are recomputed on every read.
type View struct {
	Token string          `json:"token"`
	Lines []LineView      `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// BuildView derives per-line and cart totals through the pricing engine.
func BuildView(token string, lines []Line) View {
	view := View{Token: token, Lines: make([]LineView, 0, len(lines)), Total: decimal.Zero}
	for _, line := range lines {
		pl := line.PricingLine()
		unit := pricing.UnitAmount(pl.Prices, pl.Selected)
		total := pricing.LineTotal(pl)
		view.Lines = append(view.Lines, LineView{Line: line, UnitAmount: unit, LineTotal: total})
		view.Total = view.Total.Add(total)
	}
	return view
}
