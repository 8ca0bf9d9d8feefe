package domain

// Transitions is a finite-state table: current status -> allowed next statuses.
// Every known status is a key, terminal ones map to nil.
type Transitions[S ~string] map[S][]S

// Known reports whether s is a status of this machine
func (t Transitions[S]) Known(s S) bool {
	_, ok := t[s]
	return ok
}

// Allows reports whether from -> to is an edge of the table
func (t Transitions[S]) Allows(from, to S) bool {
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Check validates a status write. Writing the current status again is not a transition.
func (t Transitions[S]) Check(entity string, from, to S) error {
	if !t.Known(to) {
		return Invalid("statut", "unknown %s status %q", entity, to)
	}
	if from == to {
		return nil
	}
	if !t.Allows(from, to) {
		return InvalidState(entity, from, t[from]...)
	}
	return nil
}

// ContractTransitions drives ContratAssurance.statut. Expired is reached by the
// expiry job; renewing an expired contract reactivates it as Renewed.
var ContractTransitions = Transitions[ContractStatus]{
	ContractPending:   {ContractActive, ContractRenewed, ContractCancelled, ContractExpired},
	ContractActive:    {ContractRenewed, ContractCancelled, ContractExpired},
	ContractRenewed:   {ContractRenewed, ContractCancelled, ContractExpired},
	ContractExpired:   {ContractRenewed, ContractCancelled},
	ContractCancelled: nil,
}

// ClaimTransitions drives Sinistre.statut. Closed is terminal.
var ClaimTransitions = Transitions[ClaimStatus]{
	ClaimDeclared:    {ClaimUnderReview},
	ClaimUnderReview: {ClaimApproved, ClaimRejected},
	ClaimApproved:    {ClaimClosed},
	ClaimRejected:    {ClaimClosed},
	ClaimClosed:      nil,
}

// IndemnificationTransitions is strictly forward.
var IndemnificationTransitions = Transitions[IndemnificationStatus]{
	IndemnificationPending:   {IndemnificationValidated},
	IndemnificationValidated: {IndemnificationPaid},
	IndemnificationPaid:      nil,
}

// PremiumTransitions drives PrimeAssurance.statut
var PremiumTransitions = Transitions[PremiumStatus]{
	PremiumPending: {PremiumPaid, PremiumUnpaid},
	PremiumUnpaid:  {PremiumPaid},
	PremiumPaid:    nil,
}
