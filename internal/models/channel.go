package models

import (
	"fmt"
	"strings"
)

// ChannelSelector chooses which raw channel(s) populate the observation matrix
type ChannelSelector int

const (
	Red ChannelSelector = iota
	Green
	Blue
	All
)

// Width returns the number of observation matrix columns for the selector
func (c ChannelSelector) Width() int {
	if c == All {
		return 3
	}
	return 1
}

// Index returns the RGB index (0, 1 or 2) of a single-channel selector.
// It returns -1 for All.
func (c ChannelSelector) Index() int {
	switch c {
	case Red:
		return 0
	case Green:
		return 1
	case Blue:
		return 2
	}
	return -1
}

// Valid reports whether c is one of the four known selectors
func (c ChannelSelector) Valid() bool {
	return c >= Red && c <= All
}

func (c ChannelSelector) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case All:
		return "all"
	}
	return fmt.Sprintf("channel(%d)", int(c))
}

// ParseChannel parses "red", "green", "blue" or "all" (also "r", "g", "b")
func ParseChannel(s string) (ChannelSelector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "red":
		return Red, nil
	case "g", "green":
		return Green, nil
	case "b", "blue":
		return Blue, nil
	case "all", "rgb":
		return All, nil
	}
	return 0, fmt.Errorf("unknown channel %q: %w", s, ErrInvalidInput)
}

// EigenOrder controls how eigenpairs are arranged before projection
type EigenOrder int

const (
	// EigenOrderSolver keeps the order returned by the eigensolver
	EigenOrderSolver EigenOrder = iota
	// EigenOrderDescending sorts eigenpairs by decreasing eigenvalue
	EigenOrderDescending
)

func (o EigenOrder) String() string {
	switch o {
	case EigenOrderSolver:
		return "solver"
	case EigenOrderDescending:
		return "descending"
	}
	return fmt.Sprintf("eigenorder(%d)", int(o))
}

// ParseEigenOrder parses "solver" or "descending"
func ParseEigenOrder(s string) (EigenOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solver":
		return EigenOrderSolver, nil
	case "descending", "desc":
		return EigenOrderDescending, nil
	}
	return 0, fmt.Errorf("unknown eigen order %q: %w", s, ErrInvalidInput)
}

// FillPolicy decides what goes into the two unselected channels when a
// single channel is reconstructed
type FillPolicy int

const (
	// FillOriginal copies the source pixel's other channels (channel composite)
	FillOriginal FillPolicy = iota
	// FillZero leaves the other channels black
	FillZero
)

func (f FillPolicy) String() string {
	switch f {
	case FillOriginal:
		return "original"
	case FillZero:
		return "zero"
	}
	return fmt.Sprintf("fill(%d)", int(f))
}

// ParseFillPolicy parses "original" or "zero"
func ParseFillPolicy(s string) (FillPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "original", "composite":
		return FillOriginal, nil
	case "zero", "black":
		return FillZero, nil
	}
	return 0, fmt.Errorf("unknown fill policy %q: %w", s, ErrInvalidInput)
}
