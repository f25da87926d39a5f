package mahjong

import "errors"

var (
	ErrInvalidHandSize    = errors.New("invalid hand size")
	ErrNoDiscardCandidate = errors.New("no discard candidate")
	ErrMalformedTile      = errors.New("malformed tile")
	ErrWallExhausted      = errors.New("wall exhausted")
)

// 牌型相关错误
var (
	ErrUnknownShape = errors.New("unknown target shape")
	ErrNoEstimator  = errors.New("no distance estimator for shape")
)
