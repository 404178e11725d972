package sanitize

import "testing"

func TestStripHTML(t *testing.T) {
	s := NewStripHTML()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "I teach guitar", "I teach guitar"},
		{"script removed", `hello<script>alert(1)</script>`, "hello"},
		{"tags stripped", `<b>bold</b> <a href="https://x">link</a>`, "bold link"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Text(tt.in); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPassthrough(t *testing.T) {
	in := `<b>kept</b>`
	if got := (Passthrough{}).Text(in); got != in {
		t.Fatalf("got %q", got)
	}
}

func TestStripHTML_EscapesEntities(t *testing.T) {
	// 输出可直接嵌入 HTML
	if got := NewStripHTML().Text("a & b"); got != "a &amp; b" {
		t.Fatalf("got %q", got)
	}
}
