package sanitize

import (
	"regexp"
	"testing"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"apostrophe joins", "O'Brien, J. 2020!", "obrien j"},
		{"plain title", "A Study of Widgets", "a study of widgets"},
		{"line breaks join", "Deep\nLearning", "deeplearning"},
		{"crlf", "Deep\r\nLearning", "deeplearning"},
		{"digits removed in place", "abc2def", "abcdef"},
		{"hyphen joins", "Self-Attention Is All", "selfattention is all"},
		{"accents folded", "Müller Ångström", "muller angstrom"},
		{"collapses whitespace", "  many   spaces\there ", "many spaces here"},
		{"empty", "", ""},
		{"only digits", "2020", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.input); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestText_OnlyLettersAndSingleSpaces(t *testing.T) {
	valid := regexp.MustCompile(`^([a-z]+( [a-z]+)*)?$`)
	inputs := []string{
		"O'Brien, J. 2020!",
		"Ünïcödé — “quoted” «text» 42",
		"tabs\tand\nnewlines\r\n",
		"x_y z",
		"α-helix β sheet",
	}

	for _, in := range inputs {
		got := Text(in)
		if !valid.MatchString(got) {
			t.Errorf("Text(%q) = %q, contains characters other than a-z and single spaces", in, got)
		}
	}
}

func TestText_Idempotent(t *testing.T) {
	inputs := []string{
		"O'Brien, J. 2020!",
		"A Study of Widgets: Part 2",
		"Müller–Lyer illusion",
		"",
	}

	for _, in := range inputs {
		once := Text(in)
		if twice := Text(once); twice != once {
			t.Errorf("Text(Text(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestFirstToken(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Smith John", "smith"},
		{"Smith, John", "smith"},
		{"  van Dyke", "van"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FirstToken(tt.input); got != tt.want {
			t.Errorf("FirstToken(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
