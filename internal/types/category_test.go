package types

import "testing"

func TestValidContext(t *testing.T) {
	tests := []struct {
		op, ctx Category
		want    bool
	}{
		{CategoryLogical, CategoryNone, true},
		{CategoryLogical, CategoryFetching, false},
		{CategoryFetching, CategoryLogical, true},
		{CategoryFetching, CategoryComparison, true},
		{CategoryFetching, CategoryNone, false},
		{CategoryComparison, CategoryFetching, true},
		{CategoryComparison, CategoryLogical, false},
		{CategoryState, CategoryState, true},
		{CategoryState, CategoryComparison, false},
	}
	for _, tt := range tests {
		if got := ValidContext(tt.op, tt.ctx); got != tt.want {
			t.Errorf("ValidContext(%s, %s) = %v, want %v", tt.op, tt.ctx, got, tt.want)
		}
	}
}

func TestCategoryString(t *testing.T) {
	if got := CategoryNone.String(); got != "null" {
		t.Errorf("CategoryNone.String() = %q, want %q", got, "null")
	}
	if got := Category(42).String(); got != "unknown" {
		t.Errorf("Category(42).String() = %q, want %q", got, "unknown")
	}
}
