package render

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Big Buck Bunny", "Big Buck Bunny"},
		{"control characters dropped", "line\x00one\x1b\x07", "lineone"},
		{"newline dropped", "a\nb", "ab"},
		{"tab becomes space", "a\tb", "a b"},
		{"nbsp becomes space", "a b", "a b"},
		{"invalid utf8 dropped", "a\xffb", "ab"},
		{"wide characters kept", "日本語", "日本語"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateEllipsis(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "exact", 5, "exact"},
		{"cut", "a long video title", 8, "a long …"},
		{"wide characters", "日本語テキスト", 7, "日本語…"},
		{"zero width", "anything", 0, ""},
		{"negative width", "anything", -3, ""},
		{"cleaned before cutting", "a\x00bc", 3, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateEllipsis(tt.input, tt.width); got != tt.want {
				t.Errorf("TruncateEllipsis(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight() = %q, want %q", got, "ab   ")
	}
	if got := PadRight("abcdef", 3); got != "abcdef" {
		t.Errorf("PadRight() = %q, want unchanged", got)
	}
	if got := PadRight("日本", 6); got != "日本  " {
		t.Errorf("PadRight() = %q, want %q", got, "日本  ")
	}
}

func TestRow(t *testing.T) {
	tests := []struct {
		name        string
		left, right string
		width       int
		want        string
	}{
		{"spread", "title", "hd", 10, "title   hd"},
		{"too narrow keeps one space", "title", "hd", 4, "title hd"},
		{"empty right", "title", "", 7, "title  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Row(tt.left, tt.right, tt.width); got != tt.want {
				t.Errorf("Row(%q, %q, %d) = %q, want %q", tt.left, tt.right, tt.width, got, tt.want)
			}
		})
	}
}
