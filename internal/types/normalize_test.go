package types

import (
	"encoding/json"
	"reflect"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeNumbers(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{1, int64(1)},
		{int8(-3), int64(-3)},
		{uint16(7), uint64(7)},
		{float32(1.5), float64(1.5)},
		{2.25, 2.25},
		{json.Number("-42"), int64(-42)},
		{json.Number("18446744073709551615"), uint64(18446744073709551615)},
		{json.Number("0.5"), 0.5},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%#v) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeKeepsLiterals(t *testing.T) {
	now := time.Now()
	id := uuid.New()
	re := regexp.MustCompile(`^a`)

	for _, v := range []any{"s", true, now, id, re} {
		if got := Normalize(v); !reflect.DeepEqual(got, v) {
			t.Errorf("Normalize(%v) = %v", v, got)
		}
	}
	if Normalize(nil) != nil {
		t.Error("Normalize(nil) should be nil")
	}
}

func TestNormalizeMapsSortKeys(t *testing.T) {
	got, ok := AsObject(Normalize(map[string]any{"b": 1, "a": map[string]int{"y": 1, "x": 2}}))
	if !ok {
		t.Fatal("expected an object")
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(got.Keys(), want) {
		t.Errorf("Keys() = %v, want %v", got.Keys(), want)
	}
	inner, _ := AsObject(got.Value("a"))
	if want := []string{"x", "y"}; !reflect.DeepEqual(inner.Keys(), want) {
		t.Errorf("inner Keys() = %v, want %v", inner.Keys(), want)
	}
	if inner.Value("x") != int64(2) {
		t.Errorf("inner x = %#v, want int64(2)", inner.Value("x"))
	}
}

func TestNormalizeOrderedLiteral(t *testing.T) {
	got, _ := AsObject(Normalize(D{{"z", 1}, {"a", D{{"k", []string{"x"}}}}}))
	if want := []string{"z", "a"}; !reflect.DeepEqual(got.Keys(), want) {
		t.Errorf("Keys() = %v, want %v", got.Keys(), want)
	}
	inner, _ := AsObject(got.Value("a"))
	if list, ok := AsList(inner.Value("k")); !ok || list[0] != "x" {
		t.Errorf("k = %#v, want []any{\"x\"}", inner.Value("k"))
	}
}

func TestNormalizePointers(t *testing.T) {
	n := 5
	var nilPtr *int
	if got := Normalize(&n); got != int64(5) {
		t.Errorf("Normalize(&n) = %#v", got)
	}
	if got := Normalize(nilPtr); got != nil {
		t.Errorf("Normalize(nil pointer) = %#v", got)
	}
}

func TestIsEmpty(t *testing.T) {
	for _, v := range []any{nil, "", []any{}, NewObject(0)} {
		if !IsEmpty(v) {
			t.Errorf("IsEmpty(%#v) = false", v)
		}
	}
	for _, v := range []any{"a", int64(0), false, []any{nil}, ObjectOf("a", 1)} {
		if IsEmpty(v) {
			t.Errorf("IsEmpty(%#v) = true", v)
		}
	}
}

func TestTypeName(t *testing.T) {
	tests := map[string]any{
		"null":    nil,
		"object":  NewObject(0),
		"array":   []any{},
		"string":  "",
		"boolean": true,
		"number":  int64(1),
		"date":    time.Time{},
	}
	for want, v := range tests {
		if got := TypeName(v); got != want {
			t.Errorf("TypeName(%#v) = %q, want %q", v, got, want)
		}
	}
}
