package types

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestObjectKeepsInsertionOrder(t *testing.T) {
	o := ObjectOf("b", 1, "a", 2, "c", 3)
	o.Set("a", 4)

	if got, want := o.Keys(), []string{"b", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if got := o.Value("a"); got != 4 {
		t.Errorf("Value(a) = %v, want 4", got)
	}
}

func TestObjectTerm(t *testing.T) {
	tests := []struct {
		name string
		obj  *Object
		want string
	}{
		{"plain", ObjectOf("name", "a", "table", "t"), ""},
		{"field", ObjectOf("alias", "x", "field", "a"), "field"},
		{"priority", ObjectOf("value", 1, "select", ObjectOf()), "select"},
		{"expression", ObjectOf("expression", "count(*)"), "expression"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.obj.Term(); got != tt.want {
				t.Errorf("Term() = %q, want %q", got, tt.want)
			}
			if got := tt.obj.IsTerm(); got != (tt.want != "") {
				t.Errorf("IsTerm() = %v", got)
			}
		})
	}
}

func TestObjectNilSafe(t *testing.T) {
	var o *Object
	if o.Has("a") || o.Len() != 0 || o.Keys() != nil {
		t.Error("nil object should be empty")
	}
	if _, ok := o.String("a"); ok {
		t.Error("String() on nil object should report false")
	}
	if p := o.Pick("a"); p.Len() != 0 {
		t.Errorf("Pick() on nil object = %d keys, want 0", p.Len())
	}
	data, err := o.MarshalJSON()
	if err != nil || string(data) != "null" {
		t.Errorf("MarshalJSON() = %s, %v", data, err)
	}
}

func TestObjectCopies(t *testing.T) {
	base := ObjectOf("a", 1, "b", 2)

	with := base.With("c", 3)
	if base.Has("c") {
		t.Error("With() modified the receiver")
	}
	if got, want := with.Keys(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("With().Keys() = %v, want %v", got, want)
	}

	prepended := base.Prepend("b", 5)
	if got, want := prepended.Keys(), []string{"b", "a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Prepend().Keys() = %v, want %v", got, want)
	}
	if prepended.Value("b") != 5 {
		t.Errorf("Prepend() should override the existing value")
	}

	defaulted := base.Defaults(ObjectOf("z", 0, "a", 9))
	if got, want := defaulted.Keys(), []string{"z", "a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Defaults().Keys() = %v, want %v", got, want)
	}
	if defaulted.Value("a") != 1 {
		t.Errorf("Defaults() should keep existing values")
	}

	picked := base.Pick("b", "missing", "a")
	if got, want := picked.Keys(), []string{"b", "a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Pick().Keys() = %v, want %v", got, want)
	}
}

func TestObjectMarshalJSON(t *testing.T) {
	o := ObjectOf("z", "last", "a", []any{int64(1), ObjectOf("y", true, "b", nil)})
	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"z":"last","a":[1,{"y":true,"b":null}]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
