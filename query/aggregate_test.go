package query

import (
	"testing"
	"time"

	"github.com/mertcandav/MochaDB-sub001/reader"
	"github.com/mertcandav/MochaDB-sub001/table"
)

func TestGroupBy(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantColumns []string
		want        [][]string
	}{
		{
			name:        "sum and count",
			query:       `USE city, SUM(amount), COUNT(*) FROM sales GROUPBY city RETURN`,
			wantColumns: []string{"city", "SUM(amount)", "COUNT(*)"},
			want:        [][]string{{"A", "30", "2"}, {"B", "5", "1"}},
		},
		{
			name:        "average",
			query:       `USE city, AVG(amount) AS avg FROM sales GROUPBY city RETURN`,
			wantColumns: []string{"city", "avg"},
			want:        [][]string{{"A", "15"}, {"B", "5"}},
		},
		{
			name:        "max min and count of column",
			query:       `USE city, MAX(amount), MIN(amount), COUNT(amount) FROM sales GROUPBY city RETURN`,
			wantColumns: []string{"city", "MAX(amount)", "MIN(amount)", "COUNT(amount)"},
			want:        [][]string{{"A", "20", "10", "2"}, {"B", "5", "5", "1"}},
		},
		{
			name:        "group column prepended",
			query:       `USE SUM(amount) AS total FROM sales GROUPBY city RETURN`,
			wantColumns: []string{"city", "total"},
			want:        [][]string{{"A", "30"}, {"B", "5"}},
		},
		{
			name:        "group by alias",
			query:       `USE city AS c, COUNT() FROM sales GROUPBY c RETURN`,
			wantColumns: []string{"c", "COUNT(*)"},
			want:        [][]string{{"A", "2"}, {"B", "1"}},
		},
		{
			name:        "filter then group",
			query:       `USE city, SUM(amount) AS total FROM sales MUST amount BIGGER #8 GROUPBY city RETURN`,
			wantColumns: []string{"city", "total"},
			want:        [][]string{{"A", "30"}},
		},
		{
			name:        "order by aggregate",
			query:       `USE city, SUM(amount) AS total FROM sales GROUPBY city ORDERBY total RETURN`,
			wantColumns: []string{"city", "total"},
			want:        [][]string{{"B", "5"}, {"A", "30"}},
		},
		{
			name:        "group without aggregates",
			query:       `USE city FROM sales GROUPBY city RETURN`,
			wantColumns: []string{"city"},
			want:        [][]string{{"A"}, {"B"}},
		},
		{
			name:        "whole table",
			query:       `USE SUM(amount) AS total, MAX(amount), MIN(amount), COUNT(*) FROM sales RETURN`,
			wantColumns: []string{"total", "MAX(amount)", "MIN(amount)", "COUNT(*)"},
			want:        [][]string{{"35", "20", "5", "3"}},
		},
		{
			name:        "whole table after filter",
			query:       `USE COUNT(*), AVG(amount) FROM sales MUST city == "A" RETURN`,
			wantColumns: []string{"COUNT(*)", "AVG(amount)"},
			want:        [][]string{{"2", "15"}},
		},
		{
			name:        "whole table of no rows",
			query:       `USE COUNT(*), SUM(amount) FROM sales MUST amount BIGGER #100 RETURN`,
			wantColumns: []string{"COUNT(*)", "SUM(amount)"},
			want:        [][]string{{"0", "0"}},
		},
	}

	engine := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := engine.Query(tt.query)
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			assertColumns(t, res, tt.wantColumns...)
			assertRows(t, res, tt.want)
		})
	}
}

func TestGroupBy_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  error
	}{
		{"sum of strings", `USE SUM(city) FROM sales RETURN`, ErrIncompatibleTypes},
		{"avg of booleans", `USE AVG(paid) FROM sales GROUPBY city RETURN`, ErrIncompatibleTypes},
		{"max of chars", `USE MAX(item) FROM sales RETURN`, ErrIncompatibleTypes},
		{"unknown aggregate column", `USE SUM(nope) FROM sales RETURN`, ErrUnknownColumn},
		{"unknown group column", `USE city FROM sales GROUPBY town RETURN`, ErrUnknownColumn},
	}

	engine := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Query(tt.query)
			assertErr(t, err, tt.want)
		})
	}
}

func TestApplyGroupBy_FirstOccurrenceOrder(t *testing.T) {
	tr := table.FromColumns([]table.Column{
		table.NewColumn("k", table.String, strs("b", "a", "b", "c", "a")...),
		table.NewColumn("v", table.Int32, ints(1, 2, 3, 4, 5)...),
		{Name: "SUM(v)", Type: table.Decimal, Tag: table.TagSum, Source: 1, Data: ints(1, 2, 3, 4, 5)},
	})

	res, err := ApplyGroupBy(tr, 0)
	if err != nil {
		t.Fatalf("ApplyGroupBy() error = %v", err)
	}
	assertRows(t, res, [][]string{{"b", "1", "4"}, {"a", "2", "7"}, {"c", "4", "4"}})

	if _, err := ApplyGroupBy(tr, 3); err == nil {
		t.Error("ApplyGroupBy() expected error for out of range column")
	}
}

func TestAggregateAll_Empty(t *testing.T) {
	tr := table.FromColumns([]table.Column{
		table.NewColumn("v", table.Int32),
		{Name: "COUNT(*)", Type: table.Int64, Tag: table.TagCount, Source: table.NoSource},
		{Name: "MAX(v)", Type: table.Int32, Tag: table.TagMax, Source: 0},
		{Name: "AVG(v)", Type: table.Decimal, Tag: table.TagAvg, Source: 0},
	})

	res, err := AggregateAll(tr)
	if err != nil {
		t.Fatalf("AggregateAll() error = %v", err)
	}
	assertRows(t, res, [][]string{{"0", "0", "0", "0"}})
}

func TestGroupBy_SubSecondDateTime(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	engine := NewEngine(reader.NewMemory(table.Table{Name: "events", Columns: []table.Column{
		table.NewColumn("at", table.DateTime,
			table.MustData(table.DateTime, at),
			table.MustData(table.DateTime, at.Add(500*time.Millisecond)),
			table.MustData(table.DateTime, at)),
	}}))

	res, err := engine.Query(`USE at, COUNT(*) FROM events GROUPBY at RETURN`)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	assertRows(t, res, [][]string{{"2024-01-01T00:00:00Z", "2"}, {"2024-01-01T00:00:00.5Z", "1"}})

	res, err = engine.Query(`USE at FROM events MUST IN at {USE at FROM events SUBROW 2, 1 RETURN} RETURN`)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	assertRows(t, res, [][]string{{"2024-01-01T00:00:00.5Z"}})
}
