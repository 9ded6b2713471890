package oracle

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// WordFile is the YAML document read by the static oracle.
//
//	associations:
//	  coffee: [espresso, morning, beans]
//	categories:
//	  drinks: [espresso, latte, tea]
type WordFile struct {
	Associations map[string][]string `yaml:"associations"`
	Categories   map[string][]string `yaml:"categories"`
}

// maxExtracted caps the phrases pulled out of one note.
const maxExtracted = 8

// fallbackFacets extend a source word when the word file has nothing for it.
var fallbackFacets = []string{
	"ideas", "history", "people", "places", "tools", "questions", "feelings", "examples",
	"problems", "future",
}

// Static is an offline Oracle backed by a word file with deterministic fallbacks.
type Static struct {
	associations map[string][]string
	categoryOf   map[string]string
}

// NewStatic builds a static oracle from wf. Keys and words are matched case-insensitively.
func NewStatic(wf WordFile) *Static {
	s := &Static{
		associations: make(map[string][]string, len(wf.Associations)),
		categoryOf:   make(map[string]string),
	}
	for k, v := range wf.Associations {
		key := strings.ToLower(strings.TrimSpace(k))
		s.associations[key] = append(s.associations[key], v...)
	}
	for name, words := range wf.Categories {
		for _, w := range words {
			s.categoryOf[strings.ToLower(strings.TrimSpace(w))] = name
		}
	}
	return s
}

// LoadStatic reads a YAML word file. An empty path gives an oracle with fallbacks only.
func LoadStatic(path string) (*Static, error) {
	if path == "" {
		return NewStatic(WordFile{}), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word file: %w", err)
	}
	var wf WordFile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parse word file %s: %w", path, err)
	}
	return NewStatic(wf), nil
}

// Expand implements Oracle.
func (s *Static) Expand(ctx context.Context, source string, count int, exclude []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: "expand", Message: "cancelled", Err: err}
	}
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, &Error{Op: "expand", Message: "nothing to expand"}
	}

	candidates := append([]string(nil), s.associations[strings.ToLower(source)]...)
	for _, f := range fallbackFacets {
		candidates = append(candidates, source+" "+f)
	}
	skip := append(append([]string(nil), exclude...), source)
	return Distinct(candidates, skip, count), nil
}

// Cluster implements Oracle. Words listed under a category in the word file join it;
// the rest are grouped by initial letter.
func (s *Static) Cluster(ctx context.Context, items []Item) ([]Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: "cluster", Message: "cancelled", Err: err}
	}

	index := make(map[string]int)
	var cats []Category
	for _, it := range items {
		name := s.categoryOf[strings.ToLower(strings.TrimSpace(it.Text))]
		if name == "" {
			name = initialGroup(it.Text)
		}
		i, ok := index[name]
		if !ok {
			i = len(cats)
			index[name] = i
			cats = append(cats, Category{Name: name})
		}
		cats[i].IDs = append(cats[i].IDs, it.ID)
	}
	return cats, nil
}

func initialGroup(text string) string {
	for _, r := range strings.TrimSpace(text) {
		if unicode.IsLetter(r) {
			return strings.ToUpper(string(r))
		}
		break
	}
	return "#"
}

// Extract implements Oracle. Text is split on punctuation and line breaks; each piece
// is cut to its first four words.
func (s *Static) Extract(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: "extract", Message: "cancelled", Err: err}
	}

	pieces := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(".,;:!?\n\r\t•", r)
	})
	for i, p := range pieces {
		words := strings.Fields(p)
		if len(words) > 4 {
			words = words[:4]
		}
		pieces[i] = strings.Join(words, " ")
	}

	phrases := Distinct(pieces, nil, maxExtracted)
	if len(phrases) == 0 {
		return nil, &Error{Op: "extract", Message: "no phrases found in note"}
	}
	return phrases, nil
}

// SuggestTitle implements Oracle. The first two phrases are joined.
func (s *Static) SuggestTitle(ctx context.Context, phrases []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &Error{Op: "title", Message: "cancelled", Err: err}
	}
	phrases = Distinct(phrases, nil, 2)
	if len(phrases) == 0 {
		return "", &Error{Op: "title", Message: "nothing to name"}
	}
	return strings.Join(phrases, " & "), nil
}
