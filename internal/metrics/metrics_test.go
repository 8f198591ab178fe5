package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"videoplayer-service/internal/player"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "flagged", Outcome(&player.Error{Op: player.OpPlay, Kind: player.KindFlagged}))
	assert.Equal(t, "error", Outcome(errors.New("boom")))
}

func TestObserveOperation(t *testing.T) {
	before := testutil.ToFloat64(Operations.WithLabelValues("pause", "invalid_state"))
	ObserveOperation("pause", &player.Error{Op: player.OpPause, Kind: player.KindInvalidState})
	after := testutil.ToFloat64(Operations.WithLabelValues("pause", "invalid_state"))
	assert.Equal(t, before+1, after)
}
