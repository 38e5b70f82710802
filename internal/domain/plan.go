package domain

// PlanState is the session's entitlement. The only transition is
// free -> paid; there is no downgrade, expiry or revalidation, matching
// the stored flag being treated as permanently authoritative.
type PlanState struct {
	paid bool
}

func NewPlanState(paid bool) PlanState {
	return PlanState{paid: paid}
}

func (p PlanState) Paid() bool {
	return p.paid
}

// Upgrade returns the paid state. Upgrading an already-paid plan is a no-op.
func (p PlanState) Upgrade() PlanState {
	return PlanState{paid: true}
}

func (p PlanState) String() string {
	if p.paid {
		return "paid"
	}
	return "free"
}
