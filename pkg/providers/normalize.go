package providers

import "github.com/tidwall/gjson"

// Vendor payloads are treated as untyped JSON trees. The helpers below make
// each field mapping total: a missing or mistyped key maps to nil instead of
// panicking or being silently zeroed.

// StringOrNil returns the value as *string, or nil when absent.
func StringOrNil(v gjson.Result) *string {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	s := v.String()
	return &s
}

// FloatOrNil returns the value as *float64, or nil when absent or non-numeric.
func FloatOrNil(v gjson.Result) *float64 {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	if v.Type != gjson.Number {
		return nil
	}
	f := v.Float()
	return &f
}

// IntOrNil returns the value as *int, or nil when absent or non-numeric.
func IntOrNil(v gjson.Result) *int {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	if v.Type != gjson.Number {
		return nil
	}
	i := int(v.Int())
	return &i
}
