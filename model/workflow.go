package model

import (
	"time"

	"esports-career-sim/pkg/errors"
)

// WorkflowStatus tracks an externally-driven season workflow (transfer
// window negotiations, the rookie draft) that the simulation core gates
// phase completion on but does not itself simulate.
type WorkflowStatus int

const (
	WorkflowPending WorkflowStatus = iota
	WorkflowCompleted
)

var workflowStatusNames = [...]string{"Pending", "Completed"}

func (s WorkflowStatus) String() string {
	if s < 0 || int(s) >= len(workflowStatusNames) {
		return "Unknown"
	}
	return workflowStatusNames[s]
}

func ParseWorkflowStatus(s string) (WorkflowStatus, error) {
	for i, name := range workflowStatusNames {
		if name == s {
			return WorkflowStatus(i), nil
		}
	}
	return 0, errors.New(errors.ValidationFailed, "unknown workflow status: "+s)
}

// TransferWindowRow is the TransferWindow phase's external-workflow
// marker: one row per (save, season), created Pending on phase
// initialization and flipped to Completed by a driver outside this core
// (e.g. an AI general-manager pass, or a human UI) before the phase can
// be completed.
type TransferWindowRow struct {
	ID        uint64
	SaveID    string
	SeasonID  uint32
	Status    WorkflowStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DraftResult is one region's rookie-draft outcome for a season. The
// Draft phase completes once every region in the save has a row for the
// current season.
type DraftResult struct {
	ID       uint64
	SaveID   string
	SeasonID uint32
	RegionID uint64
	// PlayerIDs lists the rookies the region's teams drafted, in pick
	// order.
	PlayerIDs []uint64
}
