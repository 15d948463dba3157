package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseError_Error(t *testing.T) {
	err := &PhaseError{Phase: PhaseQuery, RunID: "run-1", Err: errors.New("boom")}
	assert.Equal(t, "query phase failed (run=run-1): boom", err.Error())

	err = &PhaseError{Phase: PhaseExport, Err: errors.New("disk full")}
	assert.Equal(t, "export phase failed: disk full", err.Error())
}

func TestIsPhase_Wrapped(t *testing.T) {
	inner := errors.New("boom")
	err := fmt.Errorf("outer: %w", phaseError(PhaseLoad, "run-1", inner))

	assert.True(t, IsPhase(err, PhaseLoad))
	assert.False(t, IsPhase(err, PhaseExport))
	assert.ErrorIs(t, err, inner)
	assert.False(t, IsPhase(inner, PhaseLoad))
	assert.False(t, IsPhase(nil, PhaseLoad))
}

func TestFixedGenerator(t *testing.T) {
	gen := NewFixedGenerator("a", "b")
	assert.Equal(t, "a", gen.Generate())
	assert.Equal(t, "b", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}
	first := gen.Generate()
	second := gen.Generate()

	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
	assert.Equal(t, byte('7'), first[14], "version nibble")
}
