package metrics

import "storefront/kit/observability"

type Service struct {
	m *observability.Metrics
}

func NewService(m *observability.Metrics) *Service {
	return &Service{m: m}
}

func (s *Service) Snapshot() map[string]int64 {
	if s.m == nil {
		return map[string]int64{}
	}
	return map[string]int64{
		"charges_attempted": s.m.ChargesAttempted.Load(),
		"charges_succeeded": s.m.ChargesSucceeded.Load(),
		"charges_failed":    s.m.ChargesFailed.Load(),
		"charges_simulated": s.m.ChargesSimulated.Load(),
		"free_tier_grants":  s.m.FreeTierGrants.Load(),
		"idempotent_hits":   s.m.IdempotentHits.Load(),
	}
}
