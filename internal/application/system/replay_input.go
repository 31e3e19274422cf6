package system

import "github.com/younwookim/starcatch/internal/application/replay"

// ReplayInput feeds recorded frames back as input.
// Once the recording runs out it reports no keys held.
type ReplayInput struct {
	replayer *replay.Replayer
}

// NewReplayInput wraps a replayer as an InputSource
func NewReplayInput(r *replay.Replayer) *ReplayInput {
	return &ReplayInput{replayer: r}
}

// Poll implements InputSource
func (r *ReplayInput) Poll() InputState {
	in, ok := r.replayer.GetInput()
	if !ok {
		return InputState{}
	}
	return InputState{Left: in.Left, Right: in.Right, Up: in.Up, Down: in.Down}
}

// Done returns true once the recording is exhausted
func (r *ReplayInput) Done() bool {
	return r.replayer.Done()
}
