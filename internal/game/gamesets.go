package game

import "math/rand"

// DefaultGameSets is the built-in flavor-text catalog. One entry is chosen
// per round to set the round's social scenario. Overridable via the catalog
// config file.
var DefaultGameSets = []string{
	"You are all stuck in a military underground bunker.",
	"You are all family members sharing a house, with very different personalities.",
	"You are all at a reunion party, everyone being in their mid 40's.",
}

// DefaultQuestions is the built-in discussion prompt catalog, walked in order
// by the question deck.
var DefaultQuestions = []string{
	"What's your favorite color?",
	"What did you have for breakfast?",
	"What's your dream vacation destination?",
	"What's your favorite movie genre?",
}

// PickGameSet chooses one flavor text uniformly at random. An empty catalog
// yields an empty string.
func PickGameSet(sets []string, rng *rand.Rand) string {
	if len(sets) == 0 {
		return ""
	}
	return sets[rng.Intn(len(sets))]
}
