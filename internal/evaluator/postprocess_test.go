package evaluator

import "testing"

func TestExtractAnswer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"delimited", "noise<response>ANSWER</response>trailing", "ANSWER"},
		{"close only", "ANSWER</response>", "ANSWER"},
		{"no markers", "plain text, no markers", "plain text, no markers"},
		{"open only", "reasoning<response> ANSWER ", "ANSWER"},
		{"multiple opens", "<response>draft</response><response>final</response>", "final"},
		{"whitespace", "  <response>\n padded \n</response>  ", "padded"},
		{"empty", "", ""},
		{"empty answer", "<response></response>", ""},
		{"close before open", "</response>before<response>after", "after"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ExtractAnswer(tt.in); got != tt.want {
				t.Fatalf("ExtractAnswer(%q): got %q want %q", tt.in, got, tt.want)
			}
		})
	}
}
