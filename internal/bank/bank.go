package bank

import "fmt"

// Bank is a loaded, validated question bank with precomputed indices.
type Bank struct {
	Version    string
	Categories []CategoryInfo
	Baseline   map[Category]Seed
	Questions  []Question

	byID       map[string]int
	byCategory map[Category][]int
	labels     map[Category]string
}

// New validates the given parts and builds a Bank.
func New(version string, categories []CategoryInfo, baseline map[Category]Seed, questions []Question) (*Bank, error) {
	if err := Validate(categories, questions); err != nil {
		return nil, err
	}
	return build(version, categories, baseline, questions), nil
}

func build(version string, categories []CategoryInfo, baseline map[Category]Seed, questions []Question) *Bank {
	b := &Bank{
		Version:    version,
		Categories: categories,
		Baseline:   baseline,
		Questions:  questions,
		byID:       make(map[string]int, len(questions)),
		byCategory: make(map[Category][]int),
		labels:     make(map[Category]string, len(categories)),
	}
	for _, c := range categories {
		b.labels[c.Key] = c.Label
	}
	for i, q := range questions {
		b.byID[q.ID] = i
		b.byCategory[q.Category] = append(b.byCategory[q.Category], i)
	}
	return b
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.Questions)
}

// CategoryKeys returns all category keys in table order.
func (b *Bank) CategoryKeys() []Category {
	keys := make([]Category, len(b.Categories))
	for i, c := range b.Categories {
		keys[i] = c.Key
	}
	return keys
}

// HasCategory reports whether key is in the category table.
func (b *Bank) HasCategory(key Category) bool {
	_, ok := b.labels[key]
	return ok
}

// Label returns the display label for a category, or the key itself if unknown.
func (b *Bank) Label(key Category) string {
	if l, ok := b.labels[key]; ok && l != "" {
		return l
	}
	return string(key)
}

// Question returns the question with the given ID.
func (b *Bank) Question(id string) (Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return b.Questions[i], true
}

// ByCategory returns the questions of one category in bank order.
func (b *Bank) ByCategory(key Category) []Question {
	idx := b.byCategory[key]
	out := make([]Question, len(idx))
	for i, qi := range idx {
		out[i] = b.Questions[qi]
	}
	return out
}

// CountByCategory returns the number of questions per category.
func (b *Bank) CountByCategory() map[Category]int {
	counts := make(map[Category]int, len(b.Categories))
	for _, c := range b.Categories {
		counts[c.Key] = len(b.byCategory[c.Key])
	}
	return counts
}

// Focus selects which questions an exam draws from.
type Focus string

const (
	// FocusSmart draws from the whole bank, weighted toward weak categories.
	FocusSmart Focus = "smart"
	// FocusAll draws uniformly from the whole bank.
	FocusAll Focus = "all"
)

// Category returns the forced category, if this focus names one.
func (f Focus) Category() (Category, bool) {
	if f == FocusSmart || f == FocusAll || f == "" {
		return "", false
	}
	return Category(f), true
}

// ParseFocus validates s against the bank's category table.
func ParseFocus(s string, b *Bank) (Focus, error) {
	switch Focus(s) {
	case FocusSmart, FocusAll:
		return Focus(s), nil
	case "":
		return FocusSmart, nil
	}
	if b != nil && b.HasCategory(Category(s)) {
		return Focus(s), nil
	}
	return "", fmt.Errorf("unknown focus %q (want smart, all, or a category key)", s)
}

// FocusLabel returns a human-readable name for a focus.
func (b *Bank) FocusLabel(f Focus) string {
	switch f {
	case FocusSmart:
		return "Smart (weak areas)"
	case FocusAll:
		return "All categories"
	}
	cat, _ := f.Category()
	return b.Label(cat)
}
