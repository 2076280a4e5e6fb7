package purchasing

import "pharmacy-manager/feature/purchasing/models"

// DeriveStatus recomputes an order's status from its items: complete when
// every item is fully received, partial when at least one item has received
// stock, otherwise the current status is kept (still draft/sent). The
// function is pure; the engine persists whatever it returns.
func DeriveStatus(items models.Items, current models.Status) models.Status {
	if len(items) == 0 {
		return current
	}
	allFull := true
	anyReceived := false
	for _, item := range items {
		if item.QuantityReceived > 0 {
			anyReceived = true
		}
		if item.QuantityReceived != item.QuantityOrdered {
			allFull = false
		}
	}
	if allFull {
		return models.StatusComplete
	}
	if anyReceived {
		return models.StatusPartial
	}
	return current
}

// CanTransition reports whether an external status update from -> to is
// permitted. partial and complete are reserved to the receiving engine;
// complete and cancelled are terminal.
func CanTransition(from, to models.Status) bool {
	switch from {
	case models.StatusDraft:
		return to == models.StatusSent
	case models.StatusSent:
		return to == models.StatusCancelled
	case models.StatusPartial:
		return to == models.StatusCancelled
	default:
		return false
	}
}
