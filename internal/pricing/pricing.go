package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
)

var paiseFactor = decimal.NewFromInt(100)

// SubServicePrices carries the per-unit rupee price of each sub-service.
// A nil price means the sub-service is not offered and contributes nothing.
type SubServicePrices struct {
	Installation *decimal.Decimal
	Dismantling  *decimal.Decimal
	Repair       *decimal.Decimal
}

// Line is the pricing view of one cart line.
type Line struct {
	Prices   SubServicePrices
	Selected []enums.ServiceType
	Quantity int
}

// UnitAmount sums the prices of the selected sub-services for one unit.
// Missing or zero prices are skipped. A selection whose every matched price
// is missing yields zero; the caller decides whether that is acceptable.
func UnitAmount(prices SubServicePrices, selected []enums.ServiceType) decimal.Decimal {
	total := decimal.Zero
	for _, st := range selected {
		if p := priceFor(prices, st); p != nil && p.IsPositive() {
			total = total.Add(*p)
		}
	}
	return total
}

// LineTotal multiplies the unit amount by the line quantity.
func LineTotal(line Line) decimal.Decimal {
	if line.Quantity < 1 {
		return decimal.Zero
	}
	return UnitAmount(line.Prices, line.Selected).Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// CartTotal sums line totals across the cart.
func CartTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(LineTotal(line))
	}
	return total
}

// ToPaise converts a rupee amount into integer paise. The amount must land
// on a positive whole number of paise.
func ToPaise(amount decimal.Decimal) (int64, error) {
	paise := amount.Mul(paiseFactor)
	if !paise.IsInteger() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("amount %s does not convert to whole paise", amount.String()))
	}
	if !paise.IsPositive() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero")
	}
	return paise.IntPart(), nil
}

func priceFor(prices SubServicePrices, st enums.ServiceType) *decimal.Decimal {
	switch st {
	case enums.ServiceTypeInstallation:
		return prices.Installation
	case enums.ServiceTypeDismantling:
		return prices.Dismantling
	case enums.ServiceTypeRepair:
		return prices.Repair
	default:
		return nil
	}
}
