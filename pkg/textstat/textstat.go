// Package textstat implements the lightweight text statistics the content
// and semantic auditors rely on: tokenizing, keyword densities, and a
// reading-ease estimate.
package textstat

import (
	"regexp"
	"sort"
	"strings"

	"github.com/seolens/seolens/pkg/scoring"
)

var (
	wordRe     = regexp.MustCompile(`\w+`)
	sentenceRe = regexp.MustCompile(`[.!?]+`)
	alphaRe    = regexp.MustCompile(`[a-zA-Z]{3,}`)
)

// stopWords are excluded from keyword extraction.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "a": {}, "an": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"is": {}, "are": {}, "was": {}, "were": {},
}

// Words tokenizes text into lowercased word tokens.
func Words(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// Sentences splits text on terminal punctuation, dropping empty pieces.
func Sentences(text string) []string {
	parts := sentenceRe.Split(text, -1)
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// AvgWordLength returns the mean rune length of words, 0 for no words.
func AvgWordLength(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	var total int
	for _, w := range words {
		total += len([]rune(w))
	}
	return float64(total) / float64(len(words))
}

// AvgSentenceLength returns words per sentence, 0 for no sentences.
func AvgSentenceLength(wordCount, sentenceCount int) float64 {
	if sentenceCount == 0 {
		return 0
	}
	return float64(wordCount) / float64(sentenceCount)
}

// Readability estimates reading ease from average sentence length (words)
// and average word length (characters). Higher is easier; 60 and above
// reads comfortably.
func Readability(avgSentenceLen, avgWordLen float64) float64 {
	return 206.835 - 1.015*avgSentenceLen - 84.6*avgWordLen
}

// Keyword is one extracted keyword with its density over all words.
type Keyword struct {
	Word    string
	Count   int
	Density float64
}

// TopKeywords returns the n most frequent non-stopword tokens longer than
// two characters. Ties break alphabetically so output is deterministic.
func TopKeywords(words []string, n int) []Keyword {
	counts := make(map[string]int)
	for _, w := range words {
		if len(w) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		counts[w]++
	}
	kws := make([]Keyword, 0, len(counts))
	for w, c := range counts {
		kws = append(kws, Keyword{Word: w, Count: c})
	}
	sort.Slice(kws, func(i, j int) bool {
		if kws[i].Count != kws[j].Count {
			return kws[i].Count > kws[j].Count
		}
		return kws[i].Word < kws[j].Word
	})
	if len(kws) > n {
		kws = kws[:n]
	}
	for i := range kws {
		kws[i].Density = scoring.Round2(float64(kws[i].Count) / float64(len(words)) * 100)
	}
	return kws
}

// WordFrequencies counts alphabetic tokens of three or more letters,
// lowercased. Used by the topic analysis.
func WordFrequencies(text string) map[string]int {
	freqs := make(map[string]int)
	for _, w := range alphaRe.FindAllString(text, -1) {
		freqs[strings.ToLower(w)]++
	}
	return freqs
}

// TopWords returns the n highest-frequency entries of freqs,
// ties broken alphabetically.
func TopWords(freqs map[string]int, n int) []string {
	type wc struct {
		word  string
		count int
	}
	all := make([]wc, 0, len(freqs))
	for w, c := range freqs {
		all = append(all, wc{w, c})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].word < all[j].word
	})
	if len(all) > n {
		all = all[:n]
	}
	out := make([]string, len(all))
	for i, e := range all {
		out[i] = e.word
	}
	return out
}
