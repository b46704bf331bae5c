package reporter

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"CoinPulse/internal/model"
)

// Header is the column order of the report, matching model.CoinRecord.Cells.
var Header = []string{"Coin", "Binance", "Coinbase", "OKX", "Funding Rate", "24h Change", "Long/Short Ratio", "RSI"}

// RenderTable writes the snapshot as a bordered table, one row per record.
func RenderTable(w io.Writer, snap *model.Snapshot) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(Header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, rec := range snap.Records {
		table.Append(rec.Cells())
	}
	table.Render()
}
