package repair

import "github.com/tallergestion/workshop-api/internal/httperr"

// ===============================
// Repair Status
// ===============================

type Status string

const (
	StatusPending      Status = "pending"
	StatusInProgress   Status = "in_progress"
	StatusWaitingParts Status = "waiting_parts"
	StatusReview       Status = "review"
	StatusCompleted    Status = "completed"
	StatusCancelled    Status = "cancelled"
)

// Condición general del vehículo al ingresar.
type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
	ConditionCritical  Condition = "critical"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusWaitingParts,
		StatusReview, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func ValidCondition(c string) bool {
	switch Condition(c) {
	case ConditionExcellent, ConditionGood, ConditionFair,
		ConditionPoor, ConditionCritical:
		return true
	}
	return false
}

// transitions lista los estados alcanzables desde cada estado.
// Completada y cancelada son terminales.
var transitions = map[Status][]Status{
	StatusPending:      {StatusInProgress, StatusCancelled},
	StatusInProgress:   {StatusWaitingParts, StatusReview, StatusCompleted, StatusCancelled},
	StatusWaitingParts: {StatusInProgress, StatusCancelled},
	StatusReview:       {StatusInProgress, StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_transition")
}

// CanTake define si un mecánico puede tomar la reparación.
func CanTake(current Status, assigned bool) error {
	if assigned || current != StatusPending {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
