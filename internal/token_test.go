package internal

import (
	"strings"
	"testing"
)

func TestNewTokenShape(t *testing.T) {
	token, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken failed: %v", err)
	}
	if len(token) != TokenHexLen {
		t.Fatalf("token length = %d, want %d", len(token), TokenHexLen)
	}
	if !ValidToken(token) {
		t.Fatalf("freshly minted token failed validation: %s", token)
	}
}

func TestNewTokenUnique(t *testing.T) {
	seen := make(map[string]bool, 256)
	for i := 0; i < 256; i++ {
		token, err := NewToken()
		if err != nil {
			t.Fatalf("NewToken failed: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token minted: %s", token)
		}
		seen[token] = true
	}
}

func TestValidToken(t *testing.T) {
	good, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken failed: %v", err)
	}

	cases := []struct {
		in   string
		want bool
	}{
		{good, true},
		{"", false},
		{good[:TokenHexLen-1], false},
		{good + "0", false},
		{strings.ToUpper(good), false},
		{strings.Repeat("g", TokenHexLen), false},
		{"../" + good[3:], false},
	}
	for _, tc := range cases {
		if got := ValidToken(tc.in); got != tc.want {
			t.Fatalf("ValidToken(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestValidUserID(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"65f1a2b3c4d5e6f708192a3b", true},
		{"", false},
		{"65f1a2b3c4d5e6f708192a3", false},
		{"65F1A2B3C4D5E6F708192A3B", false},
		{"65f1a2b3c4d5e6f708192a3z", false},
	}
	for _, tc := range cases {
		if got := ValidUserID(tc.in); got != tc.want {
			t.Fatalf("ValidUserID(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
