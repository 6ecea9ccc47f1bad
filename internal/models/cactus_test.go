package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThumbName(t *testing.T) {
	cases := map[string]string{
		"saguaro.jpg":      "saguaro_thumb.jpg",
		"a.b.png":          "a.b_thumb.png",
		"noextension":      "noextension_thumb",
		"dir/saguaro.webp": "dir/saguaro_thumb.webp",
	}

	for input, want := range cases {
		assert.Equal(t, want, ThumbName(input), input)
	}
}

func TestImagePath(t *testing.T) {
	cactus := Cactus{Image: "saguaro.jpg"}
	assert.Equal(t, "media/saguaro_thumb.jpg", cactus.ImagePath())

	empty := Cactus{}
	assert.Equal(t, "", empty.ImagePath())
}

func TestDifficultyLabels(t *testing.T) {
	assert.Equal(t, "Low", DifficultyLow.Label())
	assert.Equal(t, "Medium", DifficultyMedium.Label())
	assert.Equal(t, "High", DifficultyHigh.Label())
	assert.Equal(t, "", Difficulty("9").Label())
}

func TestDifficultyValid(t *testing.T) {
	assert.True(t, DifficultyLow.Valid())
	assert.False(t, Difficulty("").Valid())
	assert.False(t, Difficulty("4").Valid())
}
