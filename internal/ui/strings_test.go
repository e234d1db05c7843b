package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"  short  ", 10, "short"},
		{"Стальной алхимик", 10, "Стально..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestFit(t *testing.T) {
	if got := fit("ab", 4); got != "ab  " {
		t.Fatalf("fit pad = %q, want %q", got, "ab  ")
	}
	if got := fit("abcdefgh", 6); got != "abc..." {
		t.Fatalf("fit truncate = %q, want %q", got, "abc...")
	}
}

func TestPlainText(t *testing.T) {
	in := "[character=17]Эдвард[/character] и [anime=121]аниме[/anime]<br>вторая строка\r\n\n\n\nконец"
	want := "Эдвард и аниме\nвторая строка\n\nконец"
	if got := plainText(in); got != want {
		t.Fatalf("plainText = %q, want %q", got, want)
	}
}

func TestJoinNonEmpty(t *testing.T) {
	if got := joinNonEmpty(" / ", "a", " ", "", "b"); got != "a / b" {
		t.Fatalf("joinNonEmpty = %q, want %q", got, "a / b")
	}
}
