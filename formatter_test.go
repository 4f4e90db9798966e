package unibot_test

import (
	"testing"

	"github.com/MuhammadAbbas01/unibot"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	t.Run("short text is unchanged", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "hello", unibot.Truncate("hello", 10))
	})

	t.Run("long text is cut with ellipsis", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "hel...", unibot.Truncate("hello", 3))
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "جامعہ", unibot.Truncate("جامعہ", 5))
		assert.Equal(t, "جا...", unibot.Truncate("جامعہ", 2))
	})

	t.Run("non-positive length yields empty", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, unibot.Truncate("hello", 0))
	})
}
