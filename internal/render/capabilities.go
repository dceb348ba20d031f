package render

// Capabilities describes the SQL features supported by a dialect.
type Capabilities struct {
	Returning     bool // RETURNING clause, or OUTPUT on SQL Server
	DistinctOn    bool // DISTINCT ON (field, ...)
	RecursiveWith bool // WITH RECURSIVE
	JSONPath      bool // -> and ->> identifier paths
	ArrayLiterals bool // array[...] values
	ILike         bool // ILIKE operator
}

// Features lists the supported feature names in a fixed order.
func (c Capabilities) Features() []string {
	var out []string
	for _, f := range []struct {
		name string
		on   bool
	}{
		{"returning", c.Returning},
		{"distinct on", c.DistinctOn},
		{"recursive with", c.RecursiveWith},
		{"json path", c.JSONPath},
		{"array literals", c.ArrayLiterals},
		{"ilike", c.ILike},
	} {
		if f.on {
			out = append(out, f.name)
		}
	}
	return out
}
