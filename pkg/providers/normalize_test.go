package providers

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestStringOrNil(t *testing.T) {
	doc := `{"name":"Acme","rating":4.5,"none":null}`

	if got := StringOrNil(gjson.Get(doc, "name")); got == nil || *got != "Acme" {
		t.Fatalf("StringOrNil(name) = %v", got)
	}
	if got := StringOrNil(gjson.Get(doc, "missing")); got != nil {
		t.Fatalf("StringOrNil(missing) = %v, want nil", got)
	}
	if got := StringOrNil(gjson.Get(doc, "none")); got != nil {
		t.Fatalf("StringOrNil(null) = %v, want nil", got)
	}
}

func TestFloatOrNil(t *testing.T) {
	doc := `{"rating":4.5,"name":"Acme","none":null}`

	if got := FloatOrNil(gjson.Get(doc, "rating")); got == nil || *got != 4.5 {
		t.Fatalf("FloatOrNil(rating) = %v", got)
	}
	if got := FloatOrNil(gjson.Get(doc, "name")); got != nil {
		t.Fatalf("FloatOrNil(string) = %v, want nil", got)
	}
	if got := FloatOrNil(gjson.Get(doc, "missing")); got != nil {
		t.Fatalf("FloatOrNil(missing) = %v, want nil", got)
	}
	if got := FloatOrNil(gjson.Get(doc, "none")); got != nil {
		t.Fatalf("FloatOrNil(null) = %v, want nil", got)
	}
}

func TestIntOrNil(t *testing.T) {
	doc := `{"count":120,"rating":"high"}`

	if got := IntOrNil(gjson.Get(doc, "count")); got == nil || *got != 120 {
		t.Fatalf("IntOrNil(count) = %v", got)
	}
	if got := IntOrNil(gjson.Get(doc, "rating")); got != nil {
		t.Fatalf("IntOrNil(string) = %v, want nil", got)
	}
}
