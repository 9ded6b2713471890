package oracle

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLastWriteWins(t *testing.T) {
	cats := []Category{
		{Name: "drinks", IDs: []string{"n1", "n2", "n2"}},
		{Name: "time", IDs: []string{"n3", "n1"}},
		{Name: "empty", IDs: nil},
		{Name: "stolen", IDs: []string{"n3"}},
	}

	got, violations := Normalize(cats)

	assert.Equal(t, []Category{
		{Name: "drinks", IDs: []string{"n2"}},
		{Name: "time", IDs: []string{"n1"}},
		{Name: "stolen", IDs: []string{"n3"}},
	}, got)
	assert.Equal(t, []Violation{
		{ID: "n1", Kept: "time", Moved: []string{"drinks"}},
		{ID: "n3", Kept: "stolen", Moved: []string{"time"}},
	}, violations)
}

func TestNormalizeCleanInput(t *testing.T) {
	cats := []Category{{Name: "a", IDs: []string{"x"}}, {Name: "b", IDs: []string{"y"}}}
	got, violations := Normalize(cats)
	assert.Equal(t, cats, got)
	assert.Empty(t, violations)
}

func TestDistinct(t *testing.T) {
	got := Distinct([]string{" Espresso ", "espresso", "", "Latte", "coffee", "tea"}, []string{"COFFEE"}, 2)
	assert.Equal(t, []string{"Espresso", "Latte"}, got)

	assert.Len(t, Distinct([]string{"a", "b", "c"}, nil, 0), 3)
}

func TestStaticExpand(t *testing.T) {
	s := NewStatic(WordFile{Associations: map[string][]string{
		"Coffee": {"espresso", "morning", "beans"},
	}})
	exclude := []string{"morning"}

	got, err := s.Expand(context.Background(), "coffee", 4, exclude)
	require.NoError(t, err)
	assert.Equal(t, []string{"espresso", "beans", "coffee ideas", "coffee history"}, got)
	assert.Equal(t, []string{"morning"}, exclude, "caller's exclude list must not change")

	got, err = s.Expand(context.Background(), "unknown", 2, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"unknown ideas", "unknown history"}, got)

	_, err = s.Expand(context.Background(), "  ", 2, nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Expand(ctx, "coffee", 2, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStaticCluster(t *testing.T) {
	s := NewStatic(WordFile{Categories: map[string][]string{
		"drinks": {"Espresso", "latte"},
	}})
	items := []Item{
		{ID: "1", Text: "espresso"},
		{ID: "2", Text: "morning"},
		{ID: "3", Text: "latte"},
		{ID: "4", Text: "Mug"},
		{ID: "5", Text: "42"},
	}

	got, err := s.Cluster(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, []Category{
		{Name: "drinks", IDs: []string{"1", "3"}},
		{Name: "M", IDs: []string{"2", "4"}},
		{Name: "#", IDs: []string{"5"}},
	}, got)
}

func TestStaticExtract(t *testing.T) {
	s := NewStatic(WordFile{})

	got, err := s.Extract(context.Background(), "Buy beans. Call the roaster about the new blend tomorrow; buy beans!\nclean grinder")
	require.NoError(t, err)
	assert.Equal(t, []string{"Buy beans", "Call the roaster about", "clean grinder"}, got)

	_, err = s.Extract(context.Background(), " ... ")
	assert.Error(t, err)
	assert.Equal(t, "no phrases found in note", Message(err))
}

func TestStaticSuggestTitle(t *testing.T) {
	s := NewStatic(WordFile{})

	got, err := s.SuggestTitle(context.Background(), []string{"espresso", "latte", "tea"})
	require.NoError(t, err)
	assert.Equal(t, "espresso & latte", got)

	got, err = s.SuggestTitle(context.Background(), []string{"solo"})
	require.NoError(t, err)
	assert.Equal(t, "solo", got)

	_, err = s.SuggestTitle(context.Background(), nil)
	assert.Error(t, err)
}

func TestLoadStatic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.yaml")
	doc := "associations:\n  tea: [green, kettle]\ncategories:\n  kitchen: [kettle]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	s, err := LoadStatic(path)
	require.NoError(t, err)

	got, err := s.Expand(context.Background(), "Tea", 2, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"green", "kettle"}, got)

	_, err = LoadStatic(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("associations: [not, a, map"), 0o644))
	_, err = LoadStatic(path)
	assert.Error(t, err)

	s, err = LoadStatic("")
	require.NoError(t, err)
	assert.NotNil(t, s)
}
