package entity

import "fmt"

// ScoreLabel owns the score and the text shown for it.
// The text is refreshed on every change so it never lags the value.
type ScoreLabel struct {
	X, Y  float64
	score int
	text  string
}

// NewScoreLabel creates a label at screen position x, y
func NewScoreLabel(x, y float64, score int) *ScoreLabel {
	l := &ScoreLabel{X: x, Y: y}
	l.setScore(score)
	return l
}

// FormatScore renders a score the way the label shows it
func FormatScore(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

// Add increases the score. Negative amounts are ignored; the score only grows.
func (l *ScoreLabel) Add(points int) {
	if points < 0 {
		return
	}
	l.setScore(l.score + points)
}

func (l *ScoreLabel) setScore(score int) {
	l.score = score
	l.text = FormatScore(score)
}

// Score returns the current score
func (l *ScoreLabel) Score() int {
	return l.score
}

// Text returns the label text
func (l *ScoreLabel) Text() string {
	return l.text
}
