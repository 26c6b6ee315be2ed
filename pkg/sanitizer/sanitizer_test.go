package sanitizer

import (
	"reflect"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Grand Hotel 42  ", "grand_hotel_42"},
		{"Café---del Mar!!", "café_del_mar"},
		{"___", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SanitizeName(tt.input); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeCityOrCategory(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" Tel Aviv ", "tel_aviv"},
		{"New-York", "new_york"},
		{"berlin", "berlin"},
		{"123", ""},
	}

	for _, tt := range tests {
		if got := SanitizeCityOrCategory(tt.input); got != tt.want {
			t.Errorf("SanitizeCityOrCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeText(t *testing.T) {
	got := SanitizeText("  spacious   loft \n with a view  ")
	want := "spacious loft with a view"
	if got != want {
		t.Errorf("SanitizeText() = %q, want %q", got, want)
	}
}

func TestSanitizeSlice_DeduplicatesAndDropsEmpty(t *testing.T) {
	got := SanitizeSlice([]string{" WiFi ", "wifi", "  ", "Pool"}, SanitizeText)
	want := []string{"WiFi", "wifi", "Pool"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SanitizeSlice() = %v, want %v", got, want)
	}

	got = SanitizeSlice([]string{"Pool", "Pool", "pool "}, SanitizeCityOrCategory)
	want = []string{"pool"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SanitizeSlice() = %v, want %v", got, want)
	}
}
