package wikigenre

import (
	"errors"
	"reflect"
	"testing"
)

func TestGenres(t *testing.T) {
	ex := NewExtractor(DefaultPolicy())
	got, err := ex.Genres(clash)
	if err != nil {
		t.Fatalf("Error extracting genres: %v", err)
	}
	exp := []string{"punk rock", "rock and roll"}
	if !reflect.DeepEqual(exp, got) {
		t.Fatalf("Expected %#v, got %#v", exp, got)
	}
}

func TestGenresNotFound(t *testing.T) {
	ex := NewExtractor(DefaultPolicy())
	tests := []struct {
		doc string
		exp error
	}{
		{"'''Yes''' are a band.", ErrNoInfobox},
		{"{{Infobox band\n| name = Yes\n}}", ErrNoField},
		{"{{Infobox band\n| genre = [[Rock music|Rock]]<ref>x</ref>\n}}", ErrNoGenres},
	}
	for _, test := range tests {
		got, err := ex.Genres(test.doc)
		if !errors.Is(err, test.exp) {
			t.Errorf("Expected %v, got %v (%#v)", test.exp, err, got)
		}
		if !IsNotFound(err) {
			t.Errorf("Expected %v to count as not found", err)
		}
	}
}

func TestGenresAlternateFieldNames(t *testing.T) {
	p := DefaultPolicy()
	p.FieldNames = []string{"style"}
	ex := NewExtractor(p)

	got, err := ex.Genres("{{Infobox band\n| genre = Ska\n| style = Dub, Reggae\n}}")
	if err != nil {
		t.Fatalf("Error extracting genres: %v", err)
	}
	if !reflect.DeepEqual([]string{"dub", "reggae"}, got) {
		t.Fatalf("Unexpected genres %#v", got)
	}
}

func TestGenresReportsDroppedParentheticals(t *testing.T) {
	ex := NewExtractor(DefaultPolicy())
	var items []string
	ex.OnDroppedParenthetical(func(item, _ string) { items = append(items, item) })

	got, err := ex.Genres("{{Infobox band\n| genre = {{hlist|Ska (music)|Dub (early)}}\n}}")
	if err != nil {
		t.Fatalf("Error extracting genres: %v", err)
	}
	if !reflect.DeepEqual([]string{"ska", "dub (early)"}, got) {
		t.Fatalf("Unexpected genres %#v", got)
	}
	if !reflect.DeepEqual([]string{"Ska (music)"}, items) {
		t.Fatalf("Unexpected drops %#v", items)
	}
}

func TestExtractorReusesPatterns(t *testing.T) {
	doc := "{{Infobox band\n| genres = {{hlist|[[Progressive rock]]|[[Pop rock]] (later)|Art rock (UK)}}\n}}"

	ex := NewExtractor(DefaultPolicy())
	field, era := ex.field, ex.era
	if field == nil || era == nil {
		t.Fatalf("Patterns not built with the extractor: %v, %v", field, era)
	}
	for i := 0; i < 3; i++ {
		got, err := ex.Genres(doc)
		if err != nil {
			t.Fatalf("Error extracting genres: %v", err)
		}
		exp := []string{"progressive rock", "pop rock (later)", "art rock"}
		if !reflect.DeepEqual(exp, got) {
			t.Fatalf("Expected %#v, got %#v", exp, got)
		}
	}
	if ex.field != field || ex.era != era {
		t.Fatalf("Extractor rebuilt its patterns")
	}

	fb, err := LocateField(doc, nil)
	if err != nil {
		t.Fatalf("Error locating field: %v", err)
	}
	exp := []string{"Progressive rock", "Pop rock (later)", "Art rock"}
	if got := ParseField(fb.Text(), DefaultParseOptions()); !reflect.DeepEqual(exp, got) {
		t.Fatalf("Expected %#v, got %#v", exp, got)
	}

	p := DefaultPolicy()
	p.KeepEraParentheticals = false
	if ex := NewExtractor(p); ex.era != nil {
		t.Fatalf("Expected no era pattern when parentheticals are dropped")
	}
}
