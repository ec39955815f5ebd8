package readiness

// ProcessApplicant runs the full pipeline for one applicant: score,
// classification, and affordability. It is deterministic and safe to call
// from concurrent goroutines; each call reads only its own input and returns
// a fresh result.
func ProcessApplicant(a *Applicant) Result {
	score := ComputeReadinessScore(a)
	level, reason := Classify(score, a)

	return Result{
		ReadinessScore: score,
		ReadinessLevel: level,
		OverrideReason: reason,
		Affordability:  ComputeAffordability(a),
	}
}
