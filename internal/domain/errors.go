package domain

import (
	"errors"
	"fmt"
)

// Check-in errors
var (
	ErrInvalidCoordinates = errors.New("coordinates out of range")
	ErrSpawnPointNotFound = errors.New("spawn point not found")
	ErrSpawnPointInactive = errors.New("spawn point is not active")
	ErrSpawnPointExpired  = errors.New("spawn point has expired")
	ErrAlreadyCollected   = errors.New("shard already collected from this spawn point")
	ErrLowAccuracy        = errors.New("GPS accuracy too low")
)

// TooFarError carries the measured distance so the client can show how far
// off the user is.
type TooFarError struct {
	DistanceM float64
	RadiusM   float64
}

func (e *TooFarError) Error() string {
	return fmt.Sprintf("too far from spawn point: %.1fm away, radius is %.1fm", e.DistanceM, e.RadiusM)
}

// Craft errors
var (
	ErrShardsNotOwned     = errors.New("shards not found in inventory")
	ErrInvalidCombination = errors.New("need exactly 3 distinct shards")
	ErrMixedCardShards    = errors.New("shards belong to different cards")
	ErrWrongShardTypes    = errors.New("wrong shard types for this card")
)

// Mint errors
var (
	ErrCardNotFound   = errors.New("crafted card not found")
	ErrAlreadyMinted  = errors.New("card is already minted")
	ErrInvalidAddress = errors.New("invalid wallet address")
	ErrInvalidTxHash  = errors.New("invalid transaction hash")
)
