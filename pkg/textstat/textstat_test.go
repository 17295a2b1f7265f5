package textstat

import (
	"math"
	"strings"
	"testing"
)

func TestWords(t *testing.T) {
	got := Words("The Quick, brown FOX!")
	want := []string{"the", "quick", "brown", "fox"}
	if len(got) != len(want) {
		t.Fatalf("Words = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Words[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSentences(t *testing.T) {
	got := Sentences("First one. Second one! Third?  ")
	if len(got) != 3 {
		t.Fatalf("Sentences = %v, want 3", got)
	}
	if got[0] != "First one" {
		t.Errorf("Sentences[0] = %q", got[0])
	}
}

func TestReadabilityFormula(t *testing.T) {
	// 206.835 - 1.015*asl - 84.6*awl, verified by hand.
	got := Readability(10, 4.5)
	want := 206.835 - 1.015*10 - 84.6*4.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Readability = %v, want %v", got, want)
	}
	if Readability(5, 3) <= Readability(30, 6) {
		t.Error("shorter sentences and words should score higher")
	}
}

func TestAvgSentenceLength(t *testing.T) {
	if got := AvgSentenceLength(10, 0); got != 0 {
		t.Errorf("zero sentences should give 0, got %v", got)
	}
	if got := AvgSentenceLength(10, 4); got != 2.5 {
		t.Errorf("AvgSentenceLength = %v, want 2.5", got)
	}
}

func TestTopKeywordsFiltersStopwordsAndShortTokens(t *testing.T) {
	text := strings.Repeat("the analytics platform ", 10) + "an is to it"
	kws := TopKeywords(Words(text), 5)
	for _, kw := range kws {
		if kw.Word == "the" || kw.Word == "an" || kw.Word == "is" {
			t.Errorf("stopword %q leaked into keywords", kw.Word)
		}
		if len(kw.Word) <= 2 {
			t.Errorf("short token %q leaked into keywords", kw.Word)
		}
	}
	if len(kws) == 0 || kws[0].Word != "analytics" && kws[0].Word != "platform" {
		t.Errorf("unexpected top keywords: %v", kws)
	}
	if kws[0].Density <= 0 {
		t.Error("density should be positive")
	}
}

func TestTopWordsDeterministicTies(t *testing.T) {
	freqs := map[string]int{"beta": 2, "alpha": 2, "gamma": 1}
	got := TopWords(freqs, 2)
	if len(got) != 2 || got[0] != "alpha" || got[1] != "beta" {
		t.Errorf("TopWords = %v, want alphabetical tie-break", got)
	}
}
