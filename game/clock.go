package game

import "time"

const (
	PreTurnDuration = time.Second * 15
	PlayingDuration = time.Second * 60
)

// PhaseDuration returns how long a timer-armed phase lasts. Phases that only
// advance on client intents report false.
func PhaseDuration(p Phase) (time.Duration, bool) {
	switch p {
	case PhasePreTurn:
		return PreTurnDuration, true
	case PhasePlaying:
		return PlayingDuration, true
	}
	return 0, false
}

// PeriodicTickerChannelCreator is the seam that lets tests drive ticks by
// hand instead of waiting on real time.
type PeriodicTickerChannelCreator interface {
	Create(duration time.Duration) <-chan time.Time
}

type tickerGen struct{}

func (t *tickerGen) Create(duration time.Duration) <-chan time.Time {
	return time.NewTicker(duration).C
}

func NewTickerGen() tickerGen {
	return tickerGen{}
}
