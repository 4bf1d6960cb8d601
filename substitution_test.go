package ficbot_test

import (
	"testing"

	"github.com/fwojciec/ficbot"
	"github.com/stretchr/testify/assert"
)

func TestTagify(t *testing.T) {
	t.Parallel()

	chars := ficbot.LinkSet{
		"Taylor":        "https://example.com/taylor",
		"Taylor Hebert": "https://example.com/taylor-hebert",
		"Amy":           "https://example.com/amy",
	}

	t.Run("links whole words", func(t *testing.T) {
		t.Parallel()

		got := ficbot.Tagify("Amy and Amelia", chars)

		assert.Equal(t, "[Amy](https://example.com/amy) and Amelia", got)
	})

	t.Run("prefers longer phrases", func(t *testing.T) {
		t.Parallel()

		got := ficbot.Tagify("Taylor Hebert/Amy", chars)

		assert.Equal(t, "[Taylor Hebert](https://example.com/taylor-hebert)/[Amy](https://example.com/amy)", got)
	})

	t.Run("leaves existing links alone", func(t *testing.T) {
		t.Parallel()

		got := ficbot.Tagify("[Taylor](https://other.example) and Taylor", chars)

		assert.Equal(t, "[Taylor](https://other.example) and [Taylor](https://example.com/taylor)", got)
	})

	t.Run("shortens link targets", func(t *testing.T) {
		t.Parallel()

		fics := ficbot.LinkSet{"Worm": "https://forums.spacebattles.com/threads/worm.1/"}

		assert.Equal(t, "[Worm](https://forums.spacebattles.com/threads/1)", ficbot.Tagify("Worm", fics))
	})

	t.Run("without sets returns input", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Taylor", ficbot.Tagify("Taylor"))
		assert.Equal(t, "Taylor", ficbot.Tagify("Taylor", nil))
	})
}

func TestStrify(t *testing.T) {
	t.Parallel()

	tags := ficbot.LinkSet{"Fluff": "https://example.com/fluff"}

	got := ficbot.Strify([]string{"Fluff", "Angst"}, tags)

	assert.Equal(t, "[Fluff](https://example.com/fluff), Angst", got)
}
