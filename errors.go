package lloyd

import (
	"errors"
	"fmt"

	"github.com/hupe1980/lloyd/internal/kmeans"
)

var (
	// ErrInvalidInput is returned when an operation's preconditions are violated,
	// e.g. an empty point set, non-finite coordinates or no means.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDivisionByEmptyCluster is returned when a centroid is computed for a
	// cluster without points.
	ErrDivisionByEmptyCluster = errors.New("division by empty cluster")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")
)

// ErrInsufficientPoints indicates that k exceeds the number of distinct points,
// so k distinct initial means cannot be drawn.
//
// It matches ErrInvalidInput via errors.Is.
type ErrInsufficientPoints struct {
	K        int
	Distinct int
}

func (e *ErrInsufficientPoints) Error() string {
	return fmt.Sprintf("k=%d exceeds %d distinct points", e.K, e.Distinct)
}

func (e *ErrInsufficientPoints) Unwrap() error { return ErrInvalidInput }

// ErrNonFinitePoint indicates a point with a NaN or infinite coordinate.
//
// It matches ErrInvalidInput via errors.Is.
type ErrNonFinitePoint struct {
	Index int
}

func (e *ErrNonFinitePoint) Error() string {
	return fmt.Sprintf("point %d has a non-finite coordinate", e.Index)
}

func (e *ErrNonFinitePoint) Unwrap() error { return ErrInvalidInput }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, kmeans.ErrInvalidInput) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, kmeans.ErrDivisionByEmptyCluster) {
		return fmt.Errorf("%w: %w", ErrDivisionByEmptyCluster, err)
	}

	return err
}
