package reader

import (
	"fmt"
	"sync"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// Memory is an in-memory column source. Tables keep their insertion order.
type Memory struct {
	mu     sync.RWMutex
	tables []table.Table
}

// NewMemory creates a source holding the given tables
func NewMemory(tables ...table.Table) *Memory {
	m := &Memory{}
	for _, t := range tables {
		m.AddTable(t)
	}
	return m
}

// AddTable adds a table, replacing any table of the same name
func (m *Memory) AddTable(t table.Table) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tables {
		if m.tables[i].Name == t.Name {
			m.tables[i] = t
			return
		}
	}
	m.tables = append(m.tables, t)
}

// Tables returns all tables
func (m *Memory) Tables() ([]table.Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]table.Table, len(m.tables))
	for i, t := range m.tables {
		out[i] = table.Table{Name: t.Name, Columns: copyColumns(t.Columns)}
	}
	return out, nil
}

// Columns returns the columns of one table
func (m *Memory) Columns(name string) ([]table.Column, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tables {
		if t.Name == name {
			return copyColumns(t.Columns), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", table.ErrUnknownTable, name)
}

func copyColumns(cols []table.Column) []table.Column {
	out := make([]table.Column, len(cols))
	for i, c := range cols {
		c.Data = append([]table.Data(nil), c.Data...)
		out[i] = c
	}
	return out
}
