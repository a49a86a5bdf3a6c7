package engine

import (
	"encoding/json"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in         string
		r, g, b, a uint8
	}{
		{"255,0,0", 255, 0, 0, 255},
		{"0, 128, 255, 10", 0, 128, 255, 10},
		{"#00ff00", 0, 255, 0, 255},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		sc := c.SDL()
		if sc.R != tt.r || sc.G != tt.g || sc.B != tt.b || sc.A != tt.a {
			t.Errorf("ParseColor(%q) = %v", tt.in, sc)
		}
	}

	for _, in := range []string{"", "1,2", "300,0,0", "#zz0000", "red"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) accepted", in)
		}
	}
}

func TestColorJSON(t *testing.T) {
	var v struct {
		C Color `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"c": "#ff0000"}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.C.String() != "255,0,0,255" {
		t.Errorf("decoded %s", v.C)
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"c":"255,0,0,255"}` {
		t.Errorf("encoded %s", out)
	}
}
