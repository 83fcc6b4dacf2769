package cyk

// Table is a filled CYK table.
type Table struct {
	Input    string
	Tokens   []string
	Accepted bool

	vars  []string
	cells [][]bitset
}

// Cell returns the variables deriving Tokens[i..j] in name order.
func (t *Table) Cell(i, j int) []string {
	if i < 0 || j >= len(t.Tokens) || i > j {
		return nil
	}
	members := t.cells[i][j].members()
	vars := make([]string, len(members))
	for k, m := range members {
		vars[k] = t.vars[m]
	}
	return vars
}
