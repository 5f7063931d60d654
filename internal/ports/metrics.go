package ports

import (
	"time"

	"github.com/bnema/halo-bridge/internal/domain"
)

// Metrics records bridge activity. Implementations must be safe for concurrent use.
type Metrics interface {
	ObserveRequest(operation string, outcome string, elapsed time.Duration)
	ObserveRefresh(outcome string)
	ObserveAttach(stage domain.AttachStage, outcome string, bytes int64)
	ObserveFinalize(outcome string)
}

type NopMetrics struct{}

func (NopMetrics) ObserveRequest(string, string, time.Duration) {}
func (NopMetrics) ObserveRefresh(string) {}
func (NopMetrics) ObserveAttach(domain.AttachStage, string, int64) {}
func (NopMetrics) ObserveFinalize(string) {}
