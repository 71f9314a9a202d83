package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powellquiring/infoguess/battleship"
	"github.com/powellquiring/infoguess/engine"
)

func TestParseCells(t *testing.T) {
	cells, err := parseCells([]string{"2,2", " 0 , 5"})
	require.NoError(t, err)
	assert.Equal(t, []battleship.Cell{{Row: 2, Col: 2}, {Row: 0, Col: 5}}, cells)

	_, err = parseCells([]string{"22"})
	assert.Error(t, err)
	_, err = parseCells([]string{"a,1"})
	assert.Error(t, err)
}

func TestPadPolicy(t *testing.T) {
	for name, want := range map[string]engine.PadPolicy{"none": engine.PadNone, "zero": engine.PadZero, "last": engine.PadLast} {
		got, err := padPolicy(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := padPolicy("mean")
	assert.Error(t, err)
}
