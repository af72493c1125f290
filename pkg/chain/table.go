package chain

// Column names preserved from the table layout this library has always
// produced, including the mirrored put-side ordering of the full layout.
var (
	compactColumns = []string{
		"CALLS_OI",
		"CALLS_Chng in OI",
		"CALLS_Volume",
		"CALLS_IV",
		"CALLS_LTP",
		"CALLS_Net Chng",
		"Strike Price",
		"PUTS_OI",
		"PUTS_Chng in OI",
		"PUTS_Volume",
		"PUTS_IV",
		"PUTS_LTP",
		"PUTS_Net Chng",
	}
	fullColumns = []string{
		"CALLS_Chart",
		"CALLS_OI",
		"CALLS_Chng in OI",
		"CALLS_Volume",
		"CALLS_IV",
		"CALLS_LTP",
		"CALLS_Net Chng",
		"CALLS_Bid Qty",
		"CALLS_Bid Price",
		"CALLS_Ask Price",
		"CALLS_Ask Qty",
		"Strike Price",
		"PUTS_Bid Qty",
		"PUTS_Bid Price",
		"PUTS_Ask Price",
		"PUTS_Ask Qty",
		"PUTS_Net Chng",
		"PUTS_LTP",
		"PUTS_IV",
		"PUTS_Volume",
		"PUTS_Chng in OI",
		"PUTS_OI",
		"PUTS_Chart",
	}
)

// Table is a column-ordered tabular rendering of a Chain. Cells for absent
// legs are zero-filled.
type Table struct {
	Columns []string
	Records []map[string]float64
}

// Table renders the chain into its tabular form. The chart placeholder
// columns of the full layout are always zero.
func (c *Chain) Table() *Table {
	columns := compactColumns
	if c.Mode == ModeFull {
		columns = fullColumns
	}
	records := make([]map[string]float64, 0, len(c.Rows))
	for _, row := range c.Rows {
		rec := make(map[string]float64, len(columns))
		for _, col := range columns {
			rec[col] = 0
		}
		rec["Strike Price"] = row.Strike
		fillSide(rec, "CALLS", row.Call, c.Mode)
		fillSide(rec, "PUTS", row.Put, c.Mode)
		records = append(records, rec)
	}
	return &Table{Columns: columns, Records: records}
}

func fillSide(rec map[string]float64, prefix string, leg *Leg, mode Mode) {
	if leg == nil {
		return
	}
	rec[prefix+"_OI"] = leg.OI
	rec[prefix+"_Chng in OI"] = leg.ChangeInOI
	rec[prefix+"_Volume"] = leg.Volume
	rec[prefix+"_IV"] = leg.IV
	rec[prefix+"_LTP"] = leg.LTP
	rec[prefix+"_Net Chng"] = leg.NetChange
	if mode == ModeFull {
		rec[prefix+"_Bid Qty"] = leg.BidQty
		rec[prefix+"_Bid Price"] = leg.BidPrice
		rec[prefix+"_Ask Price"] = leg.AskPrice
		rec[prefix+"_Ask Qty"] = leg.AskQty
	}
}
