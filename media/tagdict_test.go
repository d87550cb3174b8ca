package media_test

import (
	"testing"

	"github.com/camden-git/photocatalog/media"
)

func TestParseFStop(t *testing.T) {
	cases := []struct {
		desc string
		want float64
	}{
		{"4/8", 8.0},
		{"1/1.8", 1.8},
		{"1/2.8", 2.8},
		{"1/22", 22.0},
	}
	for _, tc := range cases {
		got, err := media.ParseFStop(tc.desc)
		if err != nil {
			t.Errorf("ParseFStop(%q) returned error: %v", tc.desc, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFStop(%q) = %v, want %v", tc.desc, got, tc.want)
		}
	}
}

func TestParseFStopMalformed(t *testing.T) {
	for _, desc := range []string{"", "4", "a/b", "4/8/16", "f2.8"} {
		if _, err := media.ParseFStop(desc); err == nil {
			t.Errorf("ParseFStop(%q) = nil error, want failure", desc)
		}
	}
}

func TestParseFractionExposure(t *testing.T) {
	cases := []struct {
		desc string
		want int
	}{
		{"1/500 sec", 2},    // (1/500)*1000 truncated
		{"1/20 sec", 50},
		{"1/3 sec", 333},
		{"2/1 sec", 2000},
		{"1/1000 sec", 1},
	}
	for _, tc := range cases {
		got, err := media.ParseFractionExposure(tc.desc)
		if err != nil {
			t.Errorf("ParseFractionExposure(%q) returned error: %v", tc.desc, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFractionExposure(%q) = %d ms, want %d ms", tc.desc, got, tc.want)
		}
	}
}

func TestParseFractionExposureMalformed(t *testing.T) {
	for _, desc := range []string{"", "1/500", "1 sec", "a/b sec", "1/0 sec"} {
		if _, err := media.ParseFractionExposure(desc); err == nil {
			t.Errorf("ParseFractionExposure(%q) = nil error, want failure", desc)
		}
	}
}

func TestParseWholeExposure(t *testing.T) {
	cases := []struct {
		desc string
		want int
	}{
		{"1 sec", 1000},
		{"2 sec", 2000},
		{"0.5 sec", 500},
	}
	for _, tc := range cases {
		got, err := media.ParseWholeExposure(tc.desc)
		if err != nil {
			t.Errorf("ParseWholeExposure(%q) returned error: %v", tc.desc, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseWholeExposure(%q) = %d ms, want %d ms", tc.desc, got, tc.want)
		}
	}
}

func TestParseWholeExposureMalformed(t *testing.T) {
	for _, desc := range []string{"", "1", "one sec", "sec"} {
		if _, err := media.ParseWholeExposure(desc); err == nil {
			t.Errorf("ParseWholeExposure(%q) = nil error, want failure", desc)
		}
	}
}

func TestParseISO(t *testing.T) {
	got, err := media.ParseISO("400")
	if err != nil {
		t.Fatalf("ParseISO returned error: %v", err)
	}
	if got != 400 {
		t.Fatalf("ParseISO(\"400\") = %d, want 400", got)
	}
	if _, err := media.ParseISO("fast"); err == nil {
		t.Fatal("expected error for non-numeric ISO")
	}
}

func TestParseLeadingDecimal(t *testing.T) {
	cases := []struct {
		desc string
		want float64
	}{
		{"-0.3 EV", -0.3},
		{"0 EV", 0},
		{"52 mm", 52},
		{"17.5 mm", 17.5},
	}
	for _, tc := range cases {
		got, err := media.ParseLeadingDecimal(tc.desc)
		if err != nil {
			t.Errorf("ParseLeadingDecimal(%q) returned error: %v", tc.desc, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLeadingDecimal(%q) = %v, want %v", tc.desc, got, tc.want)
		}
	}

	for _, desc := range []string{"", "EV", "52mm", "many mm"} {
		if _, err := media.ParseLeadingDecimal(desc); err == nil {
			t.Errorf("ParseLeadingDecimal(%q) = nil error, want failure", desc)
		}
	}
}
