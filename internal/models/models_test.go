package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestChannelSelector verifies selector widths, indices and parsing
func TestChannelSelector(t *testing.T) {
	assert.Equal(t, 3, All.Width())
	assert.Equal(t, 1, Green.Width())
	assert.Equal(t, 2, Blue.Index())
	assert.Equal(t, -1, All.Index())
	assert.False(t, ChannelSelector(4).Valid())

	for _, in := range []string{"red", "R", " Red "} {
		sel, err := ParseChannel(in)
		require.NoError(t, err)
		assert.Equal(t, Red, sel)
	}
	sel, err := ParseChannel("ALL")
	require.NoError(t, err)
	assert.Equal(t, All, sel)

	_, err = ParseChannel("alpha")
	assert.ErrorIs(t, err, ErrInvalidInput)

	for _, c := range []ChannelSelector{Red, Green, Blue, All} {
		parsed, err := ParseChannel(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

// TestParsePolicies verifies eigen order and fill policy parsing
func TestParsePolicies(t *testing.T) {
	order, err := ParseEigenOrder("")
	require.NoError(t, err)
	assert.Equal(t, EigenOrderSolver, order)

	order, err = ParseEigenOrder("desc")
	require.NoError(t, err)
	assert.Equal(t, EigenOrderDescending, order)

	_, err = ParseEigenOrder("ascending")
	assert.ErrorIs(t, err, ErrInvalidInput)

	fill, err := ParseFillPolicy("black")
	require.NoError(t, err)
	assert.Equal(t, FillZero, fill)

	_, err = ParseFillPolicy("noise")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// TestStageError verifies errors.Is and errors.As through StageError
func TestStageError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &StageError{
		Stage: StageProject,
		Err:   fmt.Errorf("shape: %w", ErrDimensionMismatch),
	})

	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.NotErrorIs(t, err, ErrNumericalFailure)

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StageProject, stageErr.Stage)
	assert.Contains(t, err.Error(), "project stage failed")
}
