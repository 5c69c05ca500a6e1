package calculator

import (
	"math"

	"github.com/dustin/go-humanize"

	"FleetConsole/internal/model"
)

// FormatCredits renders a credit balance with thousands separators.
func FormatCredits(amount int64) string {
	return humanize.Comma(amount)
}

// CargoValue estimates cargo worth from the unit prices carried on inventory
// items, preferring purchase price over sell price.
func CargoValue(inventory []model.CargoItem) int64 {
	var total int64
	for _, item := range inventory {
		price := item.PurchasePrice
		if price == 0 {
			price = item.SellPrice
		}
		total += int64(item.Units) * int64(price)
	}
	return total
}

// CargoUtilization returns used/capacity as a percentage rounded to one decimal.
func CargoUtilization(c model.Cargo) float64 {
	if c.Capacity <= 0 {
		return 0
	}
	return math.Round(float64(c.Units)/float64(c.Capacity)*1000) / 10
}

// FleetCounts tallies ships by navigation status.
type FleetCounts struct {
	InTransit int
	Docked    int
	InOrbit   int
	Other     int
}

func FleetStatusCounts(ships []model.Ship) FleetCounts {
	var fc FleetCounts
	for _, s := range ships {
		switch s.Nav.Status {
		case model.StatusInTransit:
			fc.InTransit++
		case model.StatusDocked:
			fc.Docked++
		case model.StatusInOrbit:
			fc.InOrbit++
		default:
			fc.Other++
		}
	}
	return fc
}

// ContractCounts tallies contracts by lifecycle stage.
type ContractCounts struct {
	Active    int
	Pending   int
	Fulfilled int
}

func ContractStatusCounts(contracts []model.Contract) ContractCounts {
	var cc ContractCounts
	for _, c := range contracts {
		switch {
		case c.Fulfilled:
			cc.Fulfilled++
		case c.Accepted:
			cc.Active++
		default:
			cc.Pending++
		}
	}
	return cc
}
