package main

import "testing"

func TestParseDam(t *testing.T) {
	start, end, err := parseDam("0.1, 0.2,0.3,0.4")
	if err != nil {
		t.Fatalf("parseDam failed: %v", err)
	}
	if start.X != 0.1 || start.Y != 0.2 || end.X != 0.3 || end.Y != 0.4 {
		t.Errorf("unexpected points %v %v", start, end)
	}

	if _, _, err := parseDam("0.1,0.2,0.3"); err == nil {
		t.Error("expected error for three values")
	}
	if _, _, err := parseDam("a,b,c,d"); err == nil {
		t.Error("expected error for non-numbers")
	}
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("0.5,0.25")
	if err != nil {
		t.Fatalf("parsePoint failed: %v", err)
	}
	if p.X != 0.5 || p.Y != 0.25 {
		t.Errorf("unexpected point %v", p)
	}
}

func TestParseRegion(t *testing.T) {
	r, err := parseRegion("")
	if err != nil || r != nil {
		t.Errorf("empty string should mean no region, got %v %v", r, err)
	}

	r, err = parseRegion("10,20,300,400")
	if err != nil {
		t.Fatalf("parseRegion failed: %v", err)
	}
	if r.X != 10 || r.Y != 20 || r.Width != 300 || r.Height != 400 {
		t.Errorf("unexpected region %v", r)
	}

	if _, err := parseRegion("0,0,0,10"); err == nil {
		t.Error("expected error for empty region")
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		w, h int
		ok   bool
	}{
		{"", 0, 0, true},
		{"640x480", 640, 480, true},
		{"64X32", 64, 32, true},
		{"640", 0, 0, false},
		{"ax10", 0, 0, false},
		{"10x-1", 0, 0, false},
	}

	for _, tc := range tests {
		w, h, err := parseSize(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("parseSize(%q) error = %v, want ok=%v", tc.in, err, tc.ok)
			continue
		}
		if tc.ok && (w != tc.w || h != tc.h) {
			t.Errorf("parseSize(%q) = %dx%d, want %dx%d", tc.in, w, h, tc.w, tc.h)
		}
	}
}
