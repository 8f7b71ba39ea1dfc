package agent

import (
	"github.com/poiesic/researchit/core"
)

// RunMonitor provides hooks to observe a research run.
// Implement this interface to stream intermediate results while the run
// executes; callbacks fire synchronously at state boundaries.
type RunMonitor interface {
	Start(question string)
	PlanReady(plan *core.Plan)
	RetrievalReady(stepIndex int, strategy core.RetrievalStrategy, docs []*core.Document)
	ContextDistilled(stepIndex int, context string)
	ReflectionReady(pastStep *core.PastStep)
	PolicyDecided(action core.PolicyAction, reason string)
	AnswerReady(answer string)
}

// noopMonitor is a no-op implementation of RunMonitor
type noopMonitor struct{}

var _ RunMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                                  {}
func (n *noopMonitor) PlanReady(_ *core.Plan)                                          {}
func (n *noopMonitor) RetrievalReady(_ int, _ core.RetrievalStrategy, _ []*core.Document) {}
func (n *noopMonitor) ContextDistilled(_ int, _ string)                                {}
func (n *noopMonitor) ReflectionReady(_ *core.PastStep)                                {}
func (n *noopMonitor) PolicyDecided(_ core.PolicyAction, _ string)                     {}
func (n *noopMonitor) AnswerReady(_ string)                                            {}
