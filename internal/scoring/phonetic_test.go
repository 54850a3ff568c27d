package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodsearch/fuzzyrank/internal/distance"
	"github.com/foodsearch/fuzzyrank/pkg/models"
)

func newPhoneticScorer() *PhoneticScorer {
	return NewPhoneticScorer(distance.New())
}

func TestPhoneticTokensDropsShortTokens(t *testing.T) {
	assert.Equal(t, []string{"rstr", "brss"}, phoneticTokens("rstr a brss"))
}

func TestPhoneticScoreNoTokensOnEitherSide(t *testing.T) {
	p := newPhoneticScorer()

	q := models.QueryData{Soundex: ""}
	doc := models.Document{"name_soundex": "rstr brss"}
	_, ok := p.Score(doc, q)
	assert.False(t, ok)

	q2 := models.QueryData{Soundex: "rstr brss"}
	doc2 := models.Document{"name_soundex": ""}
	_, ok2 := p.Score(doc2, q2)
	assert.False(t, ok2)
}

func TestPhoneticScoreStrictFullMatch(t *testing.T) {
	p := newPhoneticScorer()

	q := models.QueryData{Soundex: "rstr brss"}
	doc := models.Document{"name_soundex": "rstr brss"}

	res, ok := p.Score(doc, q)
	require.True(t, ok)
	assert.Equal(t, models.MatchPhoneticStrict, res.MatchType)
	assert.Equal(t, 1.0, res.Ratio)
	assert.InDelta(t, 7.5, res.Score, 0.001)
}

func TestPhoneticScorePartialRatio(t *testing.T) {
	p := newPhoneticScorer()

	q := models.QueryData{Soundex: "rstr brss lyon"}
	doc := models.Document{"name_soundex": "rstr brss"}

	res, ok := p.Score(doc, q)
	require.True(t, ok)
	assert.Less(t, res.Score, 7.5)
	assert.Less(t, res.Ratio, 1.0)
}

func TestPhoneticScoreTolerantFallback(t *testing.T) {
	p := newPhoneticScorer()

	// "resto" vs "restp": distance 1, both length >= 6 is false here (5
	// chars) so use longer tokens to clear the tolerant length gate.
	q := models.QueryData{Soundex: "brasserie"}
	doc := models.Document{"name_soundex": "brasseria"}

	res, ok := p.Score(doc, q)
	require.True(t, ok)
	assert.Equal(t, models.MatchPhoneticTolerant, res.MatchType)
	assert.Equal(t, 1.0, res.Ratio)
}

func TestPhoneticScoreNoMatch(t *testing.T) {
	p := newPhoneticScorer()

	q := models.QueryData{Soundex: "completely"}
	doc := models.Document{"name_soundex": "different"}

	res, ok := p.Score(doc, q)
	require.True(t, ok)
	assert.Equal(t, 0.0, res.Ratio)
	assert.Equal(t, 0.0, res.Score)
}
