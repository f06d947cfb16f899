package mediakit

import (
	"bytes"
	"testing"
)

func TestRender(t *testing.T) {
	doc := &Document{
		StationName:   "Rajiv Chowk",
		Address:       "Connaught Place",
		City:          "Delhi",
		Description:   "Busiest interchange on the network.",
		DailyFootfall: 500000,
		Lines:         []string{"Blue Line", "Yellow Line"},
		Audiences:     []string{"Commuters", "Students"},
		Rates: []Rate{
			{Product: "Platform Banner", Unit: "per panel", DurationDays: 30, RateCents: 1250000},
			{Product: "Digital Screen", Format: "10s slot", Unit: "per slot", DurationDays: 7, RateCents: 400000},
		},
	}
	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with PDF marker: %q", out[:min(8, len(out))])
	}
	if len(out) < 500 {
		t.Errorf("suspiciously small PDF: %d bytes", len(out))
	}
}

func TestRenderMinimalDocument(t *testing.T) {
	out, err := Render(&Document{StationName: "Hauz Khas"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(out) == 0 {
		t.Error("empty output")
	}
}

func TestFormatINR(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{99, "0.99"},
		{1250000, "12,500.00"},
		{100000000, "1,000,000.00"},
		{-4500, "-45.00"},
	}
	for _, tc := range cases {
		if got := formatINR(tc.cents); got != tc.want {
			t.Errorf("formatINR(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}
