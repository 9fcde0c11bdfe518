package bot

import (
	"errors"
	"strings"
	"testing"
)

func TestCallbackRoundTrip(t *testing.T) {
	tests := []Callback{
		{Scope: ScopeMain, Menu: MenuMain, Page: 1},
		{Scope: ScopeAwards, Menu: MenuConfirm, Page: 1, Award: 42},
		{Scope: ScopeAvail, Menu: MenuPage, Page: 17},
		{Scope: ScopeSelect, Page: 1, Award: 9223372036854775807},
		{Scope: ScopeRole, Menu: "mip", Page: 1},
	}
	for _, tc := range tests {
		data := tc.Encode()
		if len(data) > MaxCallbackLen {
			t.Fatalf("%q exceeds %d bytes", data, MaxCallbackLen)
		}
		got, err := Decode(data)
		if err != nil {
			t.Fatalf("decode %q: %v", data, err)
		}
		if got != tc {
			t.Fatalf("expected %+v, got %+v", tc, got)
		}
	}
}

func TestCallbackEncodeFormat(t *testing.T) {
	got := Callback{Scope: ScopeAwards, Menu: MenuAll, Page: 2}.Encode()
	if got != "v1|awards|all|2|0" {
		t.Fatalf("unexpected encoding %q", got)
	}
}

func TestDecodeRejectsForeignData(t *testing.T) {
	tests := []string{
		"",
		Noop,
		"awards:all:1",
		"v2|awards|all|1|0",
		"v1|shop|all|1|0",
		"v1|awards|all|x|0",
		"v1|awards|all|1|-5",
		"v1|awards|all|1",
		"v1|awards|" + strings.Repeat("a", 60) + "|1|0",
	}
	for _, data := range tests {
		if _, err := Decode(data); !errors.Is(err, ErrInvalidCallback) {
			t.Fatalf("Decode(%q) = %v, want ErrInvalidCallback", data, err)
		}
	}
}

func TestDecodeClampsPage(t *testing.T) {
	cb, err := Decode("v1|avail|page|0|0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cb.Page != 1 {
		t.Fatalf("expected page 1, got %d", cb.Page)
	}
}
