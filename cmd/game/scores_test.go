package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/starcatch/internal/infrastructure/storage"
)

func testEntries() []storage.ScoreEntry {
	at := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	return []storage.ScoreEntry{
		{ID: 2, Stage: "level1", Score: 250, Seed: 7, CreatedAt: at},
		{ID: 1, Stage: "level1", Score: 120, Seed: 42, CreatedAt: at},
	}
}

func TestRenderScores_Plain(t *testing.T) {
	out := renderScores("level1", testEntries(), false)

	assert.Contains(t, out, "High Scores - level1")
	assert.Contains(t, out, "Rank")
	assert.Contains(t, out, "250")
	assert.Contains(t, out, "2026-03-01 12:30")
	assert.Less(t, bytes.Index([]byte(out), []byte("250")), bytes.Index([]byte(out), []byte("120")))
}

func TestRenderScores_Styled(t *testing.T) {
	out := renderScores("level1", testEntries(), true)

	assert.Contains(t, out, "High Scores - level1")
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "250")
	assert.Contains(t, out, "120")
}

func TestRenderScores_Empty(t *testing.T) {
	for _, styled := range []bool{false, true} {
		out := renderScores("level1", nil, styled)
		assert.Contains(t, out, "No scores recorded yet.")
	}
}

func TestIsTerminal_Buffer(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}
