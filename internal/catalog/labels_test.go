package catalog

import "testing"

func TestLabels(t *testing.T) {
	if got := KindLabel(strPtr("tv")); got != "ТВ" {
		t.Fatalf("KindLabel(tv) = %q, want ТВ", got)
	}
	if got := KindLabel(strPtr("pv")); got != "PV" {
		t.Fatalf("KindLabel(pv) = %q, want PV", got)
	}
	if got := KindLabel(nil); got != "" {
		t.Fatalf("KindLabel(nil) = %q, want empty", got)
	}
	if got := StatusLabel(strPtr("ongoing")); got != "Онгоинг" {
		t.Fatalf("StatusLabel(ongoing) = %q", got)
	}
	if got := RatingLabel(strPtr("r_plus")); got != "R+" {
		t.Fatalf("RatingLabel(r_plus) = %q, want R+", got)
	}
	if got := RelationLabel("sequel"); got != "Сиквел" {
		t.Fatalf("RelationLabel(sequel) = %q", got)
	}
	if got := RelationLabel("crossover"); got != "crossover" {
		t.Fatalf("RelationLabel passthrough = %q", got)
	}
	if got := RoleLabel("Original Creator"); got != "Автор оригинала" {
		t.Fatalf("RoleLabel = %q", got)
	}
}

func intPtr(i int) *int { return &i }

func TestFormatDate(t *testing.T) {
	cases := []struct {
		name string
		in   *Date
		want string
	}{
		{"nil", nil, ""},
		{"full date string", &Date{Date: strPtr("2009-04-05")}, "5 апреля 2009"},
		{"components", &Date{Year: intPtr(2009), Month: intPtr(12), Day: intPtr(1)}, "1 декабря 2009"},
		{"year and month", &Date{Year: intPtr(2020), Month: intPtr(1)}, "января 2020"},
		{"year only", &Date{Year: intPtr(1999)}, "1999"},
		{"bad string falls back", &Date{Date: strPtr("soon"), Year: intPtr(2030)}, "2030"},
		{"no year", &Date{Month: intPtr(3)}, ""},
	}
	for _, tc := range cases {
		if got := FormatDate(tc.in); got != tc.want {
			t.Fatalf("%s: FormatDate = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCards(t *testing.T) {
	score := 8.5
	m := MediaSummary{ID: 1, Collection: CollectionAnimes, Title: "A", Russian: strPtr("А"), Score: &score, Kind: strPtr("movie")}
	card := MediaCard(m)
	if card.Subtitle != "А" || card.Kind != "Фильм" || card.Score == nil || *card.Score != 8.5 {
		t.Fatalf("MediaCard = %#v", card)
	}

	yes := true
	p := PersonCard(PersonSummary{ID: 2, Name: "P", IsSeyu: &yes, IsProducer: &yes})
	if p.Kind != "сэйю, продюсер" || p.Collection != CollectionPeople {
		t.Fatalf("PersonCard = %#v", p)
	}

	cards := Cards([]CharacterSummary{{ID: 3, Name: "C"}}, CharacterCard)
	if len(cards) != 1 || cards[0].Collection != CollectionCharacters {
		t.Fatalf("Cards = %#v", cards)
	}
}
