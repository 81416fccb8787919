package checkout

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// declineReasons are the plausible simulated failures; all are members of
// the outcome taxonomy.
var declineReasons = []string{
	ReasonInsufficientFunds,
	ReasonCardDeclined,
	ReasonNetworkTimeout,
	ReasonInvalidDetails,
	ReasonUnsupportedMethod,
	ReasonLimitExceeded,
}

// Simulator fabricates processor outcomes for testing and staging. The
// RNG is injectable so tests can be deterministic instead of statistical.
type Simulator struct {
	rate  float64
	delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulator(successRate float64, delay time.Duration, rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{rate: successRate, delay: delay, rng: rng}
}

func (s *Simulator) Simulate(ctx context.Context) (bool, string) {
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return false, ReasonNetworkTimeout
		case <-time.After(s.delay):
		}
	}

	s.mu.Lock()
	draw := s.rng.Float64()
	var idx int
	if draw >= s.rate {
		idx = s.rng.Intn(len(declineReasons))
	}
	s.mu.Unlock()

	if draw < s.rate {
		return true, ""
	}
	return false, declineReasons[idx]
}
