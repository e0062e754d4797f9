package textutil

import "testing"

func TestWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"Touhou", 6},
		{"死神与少年", 10},
		{"ささき", 6},
		{"Ｒ1", 3},
		{"", 0},
	}
	for _, tt := range tests {
		if got := Width(tt.in); got != tt.want {
			t.Errorf("Width(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("幻想死洛谭", 3); got != "幻想死..." {
		t.Errorf("Truncate = %q, want %q", got, "幻想死...")
	}
	if got := Truncate("abc", 3); got != "abc" {
		t.Errorf("Truncate = %q, want %q", got, "abc")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		in   string
		cols int
		want string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abc…"},
		{"幻想死洛谭", 6, "幻想… "},
		{"幻想", 4, "幻想"},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := Fit(tt.in, tt.cols); got != tt.want {
			t.Errorf("Fit(%q, %d) = %q, want %q", tt.in, tt.cols, got, tt.want)
		}
	}
}

func TestOneLine(t *testing.T) {
	if got := OneLine("a\n b\tc  "); got != "a b c" {
		t.Errorf("OneLine = %q, want %q", got, "a b c")
	}
}
