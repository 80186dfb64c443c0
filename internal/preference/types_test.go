package preference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBumpScore_AccumulatesLinearly(t *testing.T) {
	score := 0.0
	for i := 0; i < 5; i++ {
		score = bumpScore(score, 0.1)
	}
	assert.InDelta(t, 0.5, score, 1e-9)
}

func TestBumpScore_CapsAtOne(t *testing.T) {
	score := 0.0
	for i := 0; i < 50; i++ {
		score = bumpScore(score, 0.1)
	}
	assert.Equal(t, 1.0, score)
}

func TestBumpScore_NeverDecreases(t *testing.T) {
	previous := 0.0
	for i := 0; i < 20; i++ {
		next := bumpScore(previous, 0.1)
		assert.GreaterOrEqual(t, next, previous)
		previous = next
	}
}

func TestAxis_ArtistCarriesNoGenre(t *testing.T) {
	axis := ForArtist("artist-1")

	assert.Equal(t, ArtistAxis, axis.Kind())
	assert.Equal(t, "artist-1", axis.ArtistID())
	assert.Empty(t, axis.Genre())
}

func TestAxis_GenreCarriesNoArtist(t *testing.T) {
	axis := ForGenre("jazz")

	assert.Equal(t, GenreAxis, axis.Kind())
	assert.Equal(t, "jazz", axis.Genre())
	assert.Empty(t, axis.ArtistID())
}
