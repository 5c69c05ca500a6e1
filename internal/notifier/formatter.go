package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"FleetConsole/internal/calculator"
	"FleetConsole/internal/logistics"
	"FleetConsole/internal/model"
	"FleetConsole/internal/recorder"
)

// maxListed caps per-category rows in the logistics message.
const maxListed = 5

// FormatAgent formats the agent overview.
func FormatAgent(a model.Agent) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🛰 <b>%s</b>\n\n", html.EscapeString(a.Symbol)))
	b.WriteString(fmt.Sprintf("Credits: %s\n", calculator.FormatCredits(a.Credits)))
	b.WriteString(fmt.Sprintf("Headquarters: %s\n", html.EscapeString(a.Headquarters)))
	if a.StartingFaction != "" {
		b.WriteString(fmt.Sprintf("Faction: %s\n", html.EscapeString(a.StartingFaction)))
	}
	b.WriteString(fmt.Sprintf("Ships: %d\n", a.ShipCount))
	return b.String()
}

// FormatFleet formats the fleet status table with travel progress for ships in transit.
func FormatFleet(ships []model.Ship, now time.Time) string {
	var b strings.Builder
	fc := calculator.FleetStatusCounts(ships)
	b.WriteString(fmt.Sprintf("🚀 <b>Fleet</b> | %d ships\n", len(ships)))
	b.WriteString(fmt.Sprintf("In transit %d · Docked %d · In orbit %d", fc.InTransit, fc.Docked, fc.InOrbit))
	if fc.Other > 0 {
		b.WriteString(fmt.Sprintf(" · Other %d", fc.Other))
	}
	b.WriteString("\n\n")

	for _, s := range ships {
		b.WriteString(fmt.Sprintf("<b>%s</b> %s @ %s", html.EscapeString(s.Symbol), s.Nav.Status, html.EscapeString(s.Nav.WaypointSymbol)))
		if s.Nav.Status == model.StatusInTransit {
			p := calculator.TravelProgress(s.Nav.Route, now)
			if p.Known {
				b.WriteString(fmt.Sprintf(" → %s %.0f%% ETA %s",
					html.EscapeString(s.Nav.Route.Destination.Symbol), p.Fraction*100, p.ETA))
			} else {
				b.WriteString(fmt.Sprintf(" → %s ETA %s", html.EscapeString(s.Nav.Route.Destination.Symbol), p.ETA))
			}
		}
		b.WriteString(fmt.Sprintf("\n  fuel %d/%d · cargo %d/%d (%.1f%%)\n",
			s.Fuel.Current, s.Fuel.Capacity, s.Cargo.Units, s.Cargo.Capacity, calculator.CargoUtilization(s.Cargo)))
	}
	return b.String()
}

// FormatContracts formats the contract list with counts and deadlines.
func FormatContracts(contracts []model.Contract, now time.Time) string {
	var b strings.Builder
	cc := calculator.ContractStatusCounts(contracts)
	b.WriteString(fmt.Sprintf("📜 <b>Contracts</b> | active %d · pending %d · fulfilled %d\n\n",
		cc.Active, cc.Pending, cc.Fulfilled))

	for _, c := range contracts {
		state := "pending"
		switch {
		case c.Fulfilled:
			state = "fulfilled"
		case c.Accepted:
			state = "active"
		}
		b.WriteString(fmt.Sprintf("<b>%s</b> %s (%s) %s cr\n", html.EscapeString(c.ID), c.Type, state,
			calculator.FormatCredits(c.Terms.Payment.OnAccepted+c.Terms.Payment.OnFulfilled)))
		for _, d := range c.Terms.Deliver {
			b.WriteString(fmt.Sprintf("  %s → %s: %d/%d\n", d.TradeSymbol, d.DestinationSymbol, d.UnitsFulfilled, d.UnitsRequired))
		}
		if deadline, ok := calculator.ParseTimestamp(c.Terms.Deadline); ok && !c.Fulfilled {
			if left := deadline.Sub(now); left > 0 {
				b.WriteString(fmt.Sprintf("  deadline in %s\n", calculator.HumanizeSeconds(left.Seconds())))
			} else {
				b.WriteString("  deadline passed\n")
			}
		}
	}
	return b.String()
}

// FormatLogistics formats a logistics summary around a reference waypoint.
func FormatLogistics(reference string, summary logistics.Summary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🧭 <b>Logistics</b> from %s\n", html.EscapeString(reference)))
	for _, cat := range logistics.Categories {
		entries := logistics.ByDistance(summary[cat])
		b.WriteString(fmt.Sprintf("\n<b>%s</b> (%d)\n", cat, len(entries)))
		if len(entries) == 0 {
			b.WriteString("  none\n")
			continue
		}
		for i, e := range entries {
			if i == maxListed {
				b.WriteString(fmt.Sprintf("  … %d more\n", len(entries)-maxListed))
				break
			}
			dist := calculator.Unknown
			if e.Distance != nil {
				dist = fmt.Sprintf("%.1f", *e.Distance)
			}
			b.WriteString(fmt.Sprintf("  %s %s [%s] %s\n",
				html.EscapeString(e.Symbol), html.EscapeString(e.Type), dist, html.EscapeString(e.Traits)))
		}
	}
	return b.String()
}

// FormatArrival formats the alert for a ship that has reached its destination.
func FormatArrival(s model.Ship) string {
	return fmt.Sprintf("✅ <b>%s</b> arrived at %s (%s)",
		html.EscapeString(s.Symbol), html.EscapeString(s.Nav.WaypointSymbol), s.Nav.Status)
}

// FormatDeadline formats the alert for a contract close to its deadline.
func FormatDeadline(c model.Contract, remaining time.Duration) string {
	return fmt.Sprintf("⏰ Contract <b>%s</b> (%s) is due in %s",
		html.EscapeString(c.ID), c.Type, calculator.HumanizeSeconds(remaining.Seconds()))
}

// FormatJournal formats the newest journal entries.
func FormatJournal(events []recorder.CommandEvent) string {
	if len(events) == 0 {
		return "📒 No commands issued this session"
	}
	var b strings.Builder
	b.WriteString("📒 <b>Recent commands</b>\n\n")
	for _, e := range events {
		mark := "✅"
		if !e.OK {
			mark = "❌"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s", mark, e.Timestamp.Format("15:04:05"), e.Action, html.EscapeString(e.Target)))
		if e.CooldownSeconds > 0 {
			b.WriteString(fmt.Sprintf(" (cooldown %s)", calculator.HumanizeSeconds(float64(e.CooldownSeconds))))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatHelp lists the accepted commands.
func FormatHelp() string {
	return "Available commands:\n• /fleet\n• /agent\n• /contracts\n• /logistics &lt;ship&gt;\n• /journal"
}
