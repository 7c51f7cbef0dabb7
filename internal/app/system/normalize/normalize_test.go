package normalize

import (
	"reflect"
	"testing"
)

func TestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Bakers", "Bakers"},
		{"  Weekend   Bakers  ", "Weekend Bakers"},
		{"", ""},
		{"   ", ""},
		{"a\tb\nc", "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Name(tt.input)
			if got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestText_StripsHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain text", "plain text"},
		{"<b>bold</b> claim", "bold claim"},
		{"  <script>alert(1)</script>hello  ", "hello"},
		{"<img src=x onerror=alert(1)>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Text(tt.input)
			if got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTextSlice_DropsEmpty(t *testing.T) {
	got := TextSlice([]string{" flour ", "", "<i></i>", "water"})
	want := []string{"flour", "water"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TextSlice = %v, want %v", got, want)
	}
}
