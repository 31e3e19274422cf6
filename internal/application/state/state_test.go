package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameState_String(t *testing.T) {
	tests := []struct {
		state    GameState
		expected string
	}{
		{StateLoading, "Loading"},
		{StatePlaying, "Playing"},
		{StateOver, "Over"},
		{GameState(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestGameStateConstants(t *testing.T) {
	// Verify the iota ordering
	assert.Equal(t, GameState(0), StateLoading)
	assert.Equal(t, GameState(1), StatePlaying)
	assert.Equal(t, GameState(2), StateOver)
}

func TestGameState_CanTransition(t *testing.T) {
	tests := []struct {
		from, to GameState
		want     bool
	}{
		{StateLoading, StatePlaying, true},
		{StateLoading, StateOver, false},
		{StatePlaying, StateOver, true},
		{StatePlaying, StateLoading, false},
		{StatePlaying, StatePlaying, false},
		{StateOver, StatePlaying, false},
		{StateOver, StateOver, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestGameState_IsTerminal(t *testing.T) {
	assert.False(t, StateLoading.IsTerminal())
	assert.False(t, StatePlaying.IsTerminal())
	assert.True(t, StateOver.IsTerminal())
}
