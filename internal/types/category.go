package types

// Category classifies operators of the condition grammar.
type Category int

const (
	CategoryNone Category = iota // top level of a condition
	CategoryLogical
	CategoryFetching
	CategoryComparison
	CategoryState
)

// Categories lists the operator categories in dispatch order.
var Categories = []Category{CategoryLogical, CategoryFetching, CategoryComparison, CategoryState}

var categoryNames = map[Category]string{
	CategoryNone:       "null",
	CategoryLogical:    "logical",
	CategoryFetching:   "fetching",
	CategoryComparison: "comparison",
	CategoryState:      "state",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// validContexts maps a category to the categories it may directly follow.
var validContexts = map[Category][]Category{
	CategoryLogical:    {CategoryNone, CategoryLogical},
	CategoryFetching:   {CategoryLogical, CategoryComparison},
	CategoryComparison: {CategoryFetching, CategoryState},
	CategoryState:      {CategoryFetching, CategoryState},
}

// ValidContext reports whether an operator of category op may appear in
// context ctx.
func ValidContext(op, ctx Category) bool {
	for _, c := range validContexts[op] {
		if c == ctx {
			return true
		}
	}
	return false
}
