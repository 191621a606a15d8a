package output

import (
	"github.com/mertcandav/MochaDB-sub001/table"
)

// sampleResult returns a two row result with an aliased column
func sampleResult() *table.TableResult {
	age := table.NewColumn("age", table.Int32, table.MustData(table.Int32, 30), table.MustData(table.Int32, 25))
	age.Alias = "years"
	return table.FromColumns([]table.Column{
		table.NewColumn("name", table.String, table.MustData(table.String, "alice"), table.MustData(table.String, "=cmd|' /C calc'!A0")),
		age,
		table.NewColumn("score", table.Double, table.MustData(table.Double, 1.5), table.MustData(table.Double, -2)),
		table.NewColumn("paid", table.Boolean, table.MustData(table.Boolean, true), table.MustData(table.Boolean, false)),
	})
}
