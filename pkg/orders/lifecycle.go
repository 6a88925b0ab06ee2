package orders

import "github.com/drezzup/storefront/pkg/models"

// Transitions is the admin-facing status workflow: a linear new -> paid ->
// done progression. Deletion is not a transition; it removes the record from
// any state. The table is data so an eventual cancellation or refund path is
// an entry here, not new control flow.
var Transitions = map[string]string{
	models.StatusNew:  models.StatusPaid,
	models.StatusPaid: models.StatusDone,
}

// NextStatus returns the status that follows s, if any. A done order, or an
// unrecognized status written directly to the store, has no next step.
func NextStatus(s string) (string, bool) {
	next, ok := Transitions[s]
	return next, ok
}

// CanTransition reports whether an admin action may move an order from one
// status straight to another. Skipping steps is not allowed: new reaches
// done only through paid.
func CanTransition(from, to string) bool {
	next, ok := Transitions[from]
	return ok && next == to
}
