package resolve

import (
	"encoding/json"
	"testing"
)

func TestValue_FirstPresentWins(t *testing.T) {
	m := map[string]any{
		"currentValue": nil,
		"lastPrice":    "2,945.10",
		"ltp":          2950.0,
	}

	v, ok := Value(m, "currentValue", "lastPrice", "ltp")
	if !ok {
		t.Fatal("Value() found nothing, want lastPrice")
	}
	if v != "2,945.10" {
		t.Errorf("Value() = %v, want %q", v, "2,945.10")
	}
}

func TestValue_OrderNotKeyPresence(t *testing.T) {
	m := map[string]any{"a": 1.0, "b": 2.0, "c": 3.0}

	tests := []struct {
		keys []string
		want float64
	}{
		{[]string{"a", "b", "c"}, 1},
		{[]string{"c", "b", "a"}, 3},
		{[]string{"missing", "b", "a"}, 2},
	}

	for _, tt := range tests {
		v, ok := Value(m, tt.keys...)
		if !ok || v != tt.want {
			t.Errorf("Value(%v) = %v, %v; want %v", tt.keys, v, ok, tt.want)
		}
	}
}

func TestValue_NoneMatch(t *testing.T) {
	tests := []struct {
		name string
		m    map[string]any
		keys []string
	}{
		{"nil map", nil, []string{"a"}},
		{"absent", map[string]any{"x": 1.0}, []string{"a", "b"}},
		{"all empty", map[string]any{"a": nil, "b": "  ", "c": map[string]any{}, "d": []any{}}, []string{"a", "b", "c", "d"}},
		{"no keys", map[string]any{"a": 1.0}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v, ok := Value(tt.m, tt.keys...); ok || v != nil {
				t.Errorf("Value() = %v, %v; want nil, false", v, ok)
			}
		})
	}
}

func TestValue_ZeroIsAValue(t *testing.T) {
	m := map[string]any{"high": 0.0, "dayHigh": 10.0}

	v, ok := Value(m, "high", "dayHigh")
	if !ok || v != 0.0 {
		t.Errorf("Value() = %v, %v; want 0, true", v, ok)
	}
}

func TestFloat_Coercion(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want *float64
	}{
		{"float", 12.5, ptr(12.5)},
		{"int", 7, ptr(7)},
		{"json number", json.Number("3.25"), ptr(3.25)},
		{"thousands", "1,234.50", ptr(1234.5)},
		{"percent", "2.5%", ptr(2.5)},
		{"yahoo raw", map[string]any{"raw": 0.0123, "fmt": "1.23%"}, ptr(0.0123)},
		{"yahoo empty", map[string]any{"fmt": "N/A"}, nil},
		{"garbage", "n/a", nil},
		{"bool", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Float(map[string]any{"k": tt.v}, "k")
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("Float() = %v, want nil", *got)
			case tt.want != nil && got == nil:
				t.Errorf("Float() = nil, want %v", *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("Float() = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestFloat_SkipsUncoercibleCandidate(t *testing.T) {
	m := map[string]any{"totalTradedVolume": "-", "totalTradeQuantity": "15,000"}

	got := Int(m, "totalTradedVolume", "totalTradeQuantity")
	if got == nil || *got != 15000 {
		t.Errorf("Int() = %v, want 15000", got)
	}
}

func TestString(t *testing.T) {
	m := map[string]any{
		"exDividendDate": map[string]any{"raw": 1718841600.0, "fmt": "2024-06-20"},
		"code":           500325.0,
	}

	if got := String(m, "exDividendDate"); got == nil || *got != "2024-06-20" {
		t.Errorf("String(exDividendDate) = %v, want 2024-06-20", got)
	}
	if got := String(m, "code"); got == nil || *got != "500325" {
		t.Errorf("String(code) = %v, want 500325", got)
	}
	if got := StringOr(m, "N/A", "longName"); got != "N/A" {
		t.Errorf("StringOr() = %q, want N/A", got)
	}
}

func TestPath(t *testing.T) {
	m := map[string]any{
		"priceInfo": map[string]any{
			"intraDayHighLow": map[string]any{"max": 10.0, "min": 5.0},
		},
	}

	if got := Path(m, "priceInfo", "intraDayHighLow"); got["max"] != 10.0 {
		t.Errorf("Path() = %v, want map with max 10", got)
	}
	if got := Path(m, "priceInfo", "weekHighLow"); got != nil {
		t.Errorf("Path(missing) = %v, want nil", got)
	}
	if got := Path(nil, "a"); got != nil {
		t.Errorf("Path(nil) = %v, want nil", got)
	}
}

func TestMerge_EarlierWins(t *testing.T) {
	header := map[string]any{"securityID": "RELIANCE", "high": nil}
	rate := map[string]any{"securityID": "OTHER", "high": 3010.0, "LTP": 3000.0}

	got := Merge(header, rate)
	if got["securityID"] != "RELIANCE" {
		t.Errorf("securityID = %v, want RELIANCE", got["securityID"])
	}
	if got["high"] != 3010.0 {
		t.Errorf("high = %v, want 3010 (empty earlier value must not win)", got["high"])
	}
	if got["LTP"] != 3000.0 {
		t.Errorf("LTP = %v, want 3000", got["LTP"])
	}
}

func TestOptional(t *testing.T) {
	if Optional[float64](nil) != nil {
		t.Error("Optional(nil) != nil")
	}
	if Optional(ptr(1.5)) != 1.5 {
		t.Error("Optional(1.5) != 1.5")
	}
}

func ptr(f float64) *float64 { return &f }
