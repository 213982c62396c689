package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alejandrodnm/skinbot/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// NotifyDeals imprime las oportunidades rankeadas en el modo configurado.
func (c *Console) NotifyDeals(_ context.Context, game domain.Game, deals []domain.Deal) error {
	if len(deals) == 0 {
		fmt.Fprintf(c.out, "[%s][%s] no deals found\n", time.Now().Format("15:04:05"), game)
		return nil
	}

	if c.table {
		c.printFull(game, deals)
	} else {
		c.printCompact(game, deals)
	}
	return nil
}

// NotifyTreasure imprime la alerta de un item retenido.
func (c *Console) NotifyTreasure(_ context.Context, d domain.HoldDecision) error {
	now := time.Now().Format("15:04:05")

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] *** TREASURE [%s] %s\n", now, d.Game, d.Title)
	fmt.Fprintf(&sb, "    reason: %s", d.Reason)
	if d.ReasonDetails != "" {
		fmt.Fprintf(&sb, " (%s)", d.ReasonDetails)
	}
	fmt.Fprintf(&sb, "  est: x%.2f\n", d.EstimatedMultiplier)
	if len(d.RecommendedPlatforms) > 0 {
		fmt.Fprintf(&sb, "    sell on: %s\n", strings.Join(d.RecommendedPlatforms, ", "))
	}

	fmt.Fprint(c.out, sb.String())
	return nil
}

// printCompact imprime lo esencial en una línea.
func (c *Console) printCompact(game domain.Game, deals []domain.Deal) {
	now := time.Now().Format("15:04:05")
	ext := countExternal(deals)

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s][%s] %d deals ext:%d", now, game, len(deals), ext)

	shown := 0
	for _, d := range deals {
		if shown >= 4 {
			break
		}
		name := compactName(d.Listing.Title, 28)
		if d.HasExternalOpportunity() {
			fmt.Fprintf(&sb, " | %s -%.1f%% →%s +$%.2f s:%.0f",
				name, d.DiscountPct, d.Comparison.BestPlatform,
				d.Comparison.NetProfitUSD, d.Score)
		} else {
			fmt.Fprintf(&sb, " | %s -%.1f%% vol:%d s:%.0f",
				name, d.DiscountPct, d.SalesVolume, d.Score)
		}
		shown++
	}

	fmt.Fprintln(c.out, sb.String())
}

// printFull imprime la tabla completa con liquidez y comparación externa.
func (c *Console) printFull(game domain.Game, deals []domain.Deal) {
	now := time.Now().Format("15:04:05")
	fmt.Fprintf(c.out, "\n[%s][%s] %d deals — ext:%d\n",
		now, game, len(deals), countExternal(deals))

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Item", "Price", "Disc%", "Vol", "Avg$", "Platform", "Net$", "Score")

	for i, d := range deals {
		platform, netLabel := "-", "-"
		if d.HasExternalOpportunity() {
			platform = d.Comparison.BestPlatform
			netLabel = fmt.Sprintf("$%.2f", d.Comparison.NetProfitUSD)
		}

		avgLabel := "-"
		if d.AvgRecentPrice > 0 {
			avgLabel = fmt.Sprintf("$%.2f", d.AvgRecentPrice)
		}

		table.Append(
			fmt.Sprintf("%d", i+1),
			truncate(d.Listing.Title, 38),
			fmt.Sprintf("$%.2f", d.Listing.Price.Dollars()),
			fmt.Sprintf("%.1f", d.DiscountPct),
			fmt.Sprintf("%d", d.SalesVolume),
			avgLabel,
			platform,
			netLabel,
			fmt.Sprintf("%.0f", d.Score),
		)
	}

	table.Render()

	fmt.Fprintln(c.out, "  Disc% = descuento vs suggested | Vol = ventas históricas")
	fmt.Fprintln(c.out, "  Platform/Net$ = mejor reventa externa tras fees | Score = ranking")
}

// PrintHoldStats imprime el resumen del engine de hold.
func (c *Console) PrintHoldStats(stats domain.HoldStats) {
	fmt.Fprintf(c.out, "\n=== HOLD ENGINE — %d processed, %d held (%.1f%%) ===\n",
		stats.TotalProcessed, stats.TotalHeld, stats.HoldRatePct)
	for reason, count := range stats.ByReason {
		fmt.Fprintf(c.out, "  %-16s %d\n", reason, count)
	}
	fmt.Fprintln(c.out)
}

// --- helpers ---

func countExternal(deals []domain.Deal) int {
	n := 0
	for _, d := range deals {
		if d.HasExternalOpportunity() {
			n++
		}
	}
	return n
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func compactName(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := s[:maxLen]
	if idx := strings.LastIndex(cut, " "); idx > maxLen/2 {
		cut = cut[:idx]
	}
	return cut + "…"
}
