package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodsearch/fuzzyrank/internal/config"
	"github.com/foodsearch/fuzzyrank/internal/distance"
	"github.com/foodsearch/fuzzyrank/internal/evaluator"
	"github.com/foodsearch/fuzzyrank/internal/synonym"
	"github.com/foodsearch/fuzzyrank/pkg/models"
)

func newComposer() *Composer {
	cfg := config.Default()
	syn := synonym.NewIndex(cfg.Synonyms)
	ev := evaluator.New(cfg.MaxLevenshteinDistance, syn, distance.New())
	return NewComposer(cfg, ev)
}

func TestComposeEmptyQuery(t *testing.T) {
	c := newComposer()
	doc := models.Document{"name": "Le Petit Resto", "name_search": "petit resto"}

	main := c.Compose(doc, models.QueryData{})

	assert.Equal(t, "none", main.WinningStrategy)
	assert.Equal(t, models.MatchPartial, main.MatchType)
	assert.Equal(t, 0.0, main.TotalScore)
}

func TestComposeExactFull(t *testing.T) {
	c := newComposer()
	doc := models.Document{
		"name":        "Petit Resto",
		"name_search": "petit resto",
	}
	q := models.QueryData{
		Original:      "petit resto",
		Cleaned:       "petit resto",
		WordsCleaned:  []string{"petit", "resto"},
		WordsOriginal: []string{"petit", "resto"},
	}

	main := c.Compose(doc, q)

	require.Equal(t, "name_search", main.WinningStrategy)
	assert.Equal(t, models.MatchExactFull, main.MatchType)
	assert.True(t, main.AllWordsFound)
	assert.GreaterOrEqual(t, main.TotalScore, 10.0)
}

func TestComposeExactWithExtras(t *testing.T) {
	c := newComposer()
	doc := models.Document{
		"name":        "Petit Resto de la Gare",
		"name_search": "petit resto de la gare",
	}
	q := models.QueryData{
		Original:      "petit resto",
		Cleaned:       "petit resto",
		WordsCleaned:  []string{"petit", "resto"},
		WordsOriginal: []string{"petit", "resto"},
	}

	main := c.Compose(doc, q)

	assert.True(t, main.AllWordsFound)
	assert.NotEqual(t, models.MatchExactFull, main.MatchType)
}

func TestComposeSynonymExactFull(t *testing.T) {
	c := newComposer()
	doc := models.Document{
		"name":        "Saint Jean Brasserie",
		"name_search": "saint jean brasserie",
	}
	q := models.QueryData{
		Original:      "st jean brasserie",
		Cleaned:       "st jean brasserie",
		WordsCleaned:  []string{"st", "jean", "brasserie"},
		WordsOriginal: []string{"st", "jean", "brasserie"},
	}

	main := c.Compose(doc, q)

	assert.Equal(t, models.MatchExactFull, main.MatchType)
}

func TestComposeNoSpaceMatch(t *testing.T) {
	c := newComposer()
	doc := models.Document{
		"name":          "McDonald's",
		"name_search":   "mcdonalds",
		"name_no_space": "mcdonalds",
	}
	q := models.QueryData{
		Original:      "mc donalds",
		Cleaned:       "mc donalds",
		NoSpace:       "mcdonalds",
		WordsCleaned:  []string{"mc", "donalds"},
		WordsOriginal: []string{"mc", "donalds"},
		WordsNoSpace:  []string{"mcdonalds"},
	}

	main := c.Compose(doc, q)

	assert.Equal(t, "no_space", main.WinningStrategy)
}

func TestComposeFuzzyNearPerfect(t *testing.T) {
	c := newComposer()
	doc := models.Document{
		"name":        "Petit Resto",
		"name_search": "petit resto",
	}
	q := models.QueryData{
		Original:      "petit restp",
		Cleaned:       "petit restp",
		WordsCleaned:  []string{"petit", "restp"},
		WordsOriginal: []string{"petit", "restp"},
	}

	main := c.Compose(doc, q)

	assert.True(t, main.AllWordsFound)
	assert.Contains(t, []string{models.MatchFuzzyFull, models.MatchNearPerfect}, main.MatchType)
}
