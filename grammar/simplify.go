package grammar

// Simplify removes null rules, unit rules, and useless symbols in this order. The result generates the same
// language as g.
func Simplify(g *Grammar) *Grammar {
	return Reduce(RemoveUnitRules(RemoveNullRules(g)))
}
