// Package diplomacy is the autonomous negotiation core: condition
// evaluators, trigger arbitration, utility scoring, and deal composition.
// Everything here is deterministic and total — no storage, no randomness,
// sentinel returns instead of errors.
// See design doc Section 4.
package diplomacy

import (
	"github.com/talgya/statecraft/internal/nations"
)

// Purpose classifies why a negotiation is opened.
type Purpose uint8

const (
	PurposeRequestHelp        Purpose = 0
	PurposeOfferAlliance      Purpose = 1
	PurposeReconciliation     Purpose = 2
	PurposeDemandCompensation Purpose = 3
	PurposeWarning            Purpose = 4
	PurposeTradeOpportunity   Purpose = 5
	PurposeMutualDefense      Purpose = 6
	PurposePeaceOffer         Purpose = 7
	PurposeJointVenture       Purpose = 8
)

func (p Purpose) String() string {
	switch p {
	case PurposeRequestHelp:
		return "request-help"
	case PurposeOfferAlliance:
		return "offer-alliance"
	case PurposeReconciliation:
		return "reconciliation"
	case PurposeDemandCompensation:
		return "demand-compensation"
	case PurposeWarning:
		return "warning"
	case PurposeTradeOpportunity:
		return "trade-opportunity"
	case PurposeMutualDefense:
		return "mutual-defense"
	case PurposePeaceOffer:
		return "peace-offer"
	case PurposeJointVenture:
		return "joint-venture"
	default:
		return "unknown"
	}
}

// Urgency controls how long a proposal stays on the table.
type Urgency uint8

const (
	UrgencyLow      Urgency = 0
	UrgencyMedium   Urgency = 1
	UrgencyHigh     Urgency = 2
	UrgencyCritical Urgency = 3
)

func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyMedium:
		return "medium"
	case UrgencyHigh:
		return "high"
	case UrgencyCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Window returns how many turns a proposal of this urgency stays open.
func (u Urgency) Window() uint64 {
	switch u {
	case UrgencyCritical:
		return 2
	case UrgencyHigh:
		return 3
	case UrgencyMedium:
		return 5
	default:
		return 10
	}
}

// Resource names a transferable stockpile. Gold draws on production.
type Resource uint8

const (
	ResourceNone    Resource = 0
	ResourceGold    Resource = 1
	ResourceIntel   Resource = 2
	ResourceUranium Resource = 3
)

func (r Resource) String() string {
	switch r {
	case ResourceGold:
		return "gold"
	case ResourceIntel:
		return "intel"
	case ResourceUranium:
		return "uranium"
	default:
		return "none"
	}
}

// Context carries the purpose-specific facts a trigger fired on, for deal
// composition and message rendering.
type Context struct {
	Reason       string            `json:"reason"`
	ThreatTarget *nations.NationID `json:"threat_target,omitempty"` // Who endangers the proposer / shared menace
	GrievanceID  uint64            `json:"grievance_id,omitempty"`  // Triggering grievance
	Severity     int               `json:"severity,omitempty"`      // Summed severity points
	Resource     Resource          `json:"resource,omitempty"`      // Surplus to move
}

// TriggerResult is one evaluator's verdict for an actor pair. The zero
// value means "no trigger".
type TriggerResult struct {
	ShouldTrigger bool    `json:"should_trigger"`
	Purpose       Purpose `json:"purpose"`
	Urgency       Urgency `json:"urgency"`
	Priority      int     `json:"priority"` // 0–100, ranking only
	Context       Context `json:"context"`
}

// Ledger is the read-only view of the relationship subsystem the core
// consumes. Relationship is −100..100, trust 0..100, favor balance a
// signed count (positive = owed to a).
type Ledger interface {
	Relationship(a, b nations.NationID) float64
	Trust(a, b nations.NationID) float64
	FavorBalance(a, b nations.NationID) float64
}

func clampPriority(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func findNation(all []*nations.Nation, id nations.NationID) *nations.Nation {
	for _, n := range all {
		if n != nil && n.ID == id {
			return n
		}
	}
	return nil
}
