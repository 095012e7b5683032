package contentparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinishExplanation(t *testing.T) {
	t.Run("keeps explanation that already mentions impact", func(t *testing.T) {
		q := goodQuestion()
		assert.Equal(t, q, FinishExplanation(q))
	})

	t.Run("leaves empty explanation alone", func(t *testing.T) {
		q := goodQuestion()
		q.Explanation = ""
		assert.Equal(t, "", FinishExplanation(q).Explanation)
	})

	t.Run("appends a deterministic closer", func(t *testing.T) {
		q := goodQuestion()
		q.Explanation = "The Court has had nine seats since 1869"

		first := FinishExplanation(q)
		second := FinishExplanation(q)

		assert.Equal(t, first, second)
		assert.True(t, strings.HasPrefix(first.Explanation, "The Court has had nine seats since 1869. "))
		assert.True(t, HasImpactLanguage(first.Explanation))

		closer := strings.TrimPrefix(first.Explanation, "The Court has had nine seats since 1869. ")
		assert.Contains(t, impactClosers, closer)
		assert.Equal(t, "The Court has had nine seats since 1869", q.Explanation)
	})
}

func TestImpactClosersCarryImpactLanguage(t *testing.T) {
	for _, c := range impactClosers {
		assert.True(t, HasImpactLanguage(c), c)
	}
}
