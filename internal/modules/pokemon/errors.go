package pokemon

import "errors"

var (
	// ErrPokemonNotFound covers ids absent both locally and upstream, as
	// well as upstream failures (the two are not distinguished).
	ErrPokemonNotFound = errors.New("pokemon not found")
	ErrNotFavorite     = errors.New("pokemon is not in your favorites")
	ErrGroupTooLarge   = errors.New("battle group may contain at most 6 pokemon")
	ErrNotInFavorites  = errors.New("not in favorites")
)
