package game

// Rejection is a refused action. Rejections never leave the session in a
// partially-updated state; callers surface Reason to the participant.
type Rejection struct {
	Code   string
	Reason string
	base   *Rejection
}

func (r *Rejection) Error() string { return r.Reason }

func (r *Rejection) Unwrap() error {
	if r.base == nil {
		return nil
	}
	return r.base
}

// With keeps the rejection class but swaps in a more specific reason, so
// errors.Is against the sentinel still matches.
func (r *Rejection) With(reason string) error {
	return &Rejection{Code: r.Code, Reason: reason, base: r}
}

func reject(code, reason string) *Rejection {
	return &Rejection{Code: code, Reason: reason}
}

var (
	ErrStaleRound          = reject("stale_round", "Round has changed.")
	ErrInvalidPhase        = reject("invalid_phase", "Action is not available right now.")
	ErrSubmissionsLocked   = reject("submissions_locked", "Submissions are locked.")
	ErrNotEligible         = reject("not_eligible", "You cannot act in this phase.")
	ErrDuplicateSubmission = reject("duplicate_submission", "Already submitted.")
	ErrInvalidPayload      = reject("invalid_payload", "Invalid selection.")
	ErrContentRejected     = reject("content_rejected", "Keep it PG-13.")
	ErrPreconditionUnmet   = reject("precondition_unmet", "Requirements for this mode are not met.")
)
