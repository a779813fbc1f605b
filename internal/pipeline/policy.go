package pipeline

// DefaultAlertThreshold is the confidence score at which an insight is
// pushed to the notification channel.
const DefaultAlertThreshold = 85

// AlertPolicy is the pure notify/persist decision. Persistence always
// happens for a completed symbol; notification fires at the threshold,
// boundary inclusive.
type AlertPolicy struct {
	Threshold int
}

func NewAlertPolicy(threshold int) AlertPolicy {
	if threshold <= 0 {
		threshold = DefaultAlertThreshold
	}
	return AlertPolicy{Threshold: threshold}
}

func (p AlertPolicy) ShouldNotify(score int) bool {
	return score >= p.Threshold
}
