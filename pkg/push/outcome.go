package push

// OutcomeStatus is the terminal state of a single send attempt.
type OutcomeStatus string

const (
	StatusSent   OutcomeStatus = "sent"
	StatusFailed OutcomeStatus = "failed"
)

// Outcome records the result of one send attempt against one target.
type Outcome struct {
	Target     string        `json:"target"`
	Status     OutcomeStatus `json:"status"`
	MessageID  string        `json:"messageId,omitempty"`
	ErrorClass ErrorClass    `json:"errorClass,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// Sent builds a successful outcome.
func Sent(target, messageID string) Outcome {
	return Outcome{Target: target, Status: StatusSent, MessageID: messageID}
}

// Failed builds a failed outcome with its normalized classification.
func Failed(target string, class ErrorClass, err error) Outcome {
	o := Outcome{Target: target, Status: StatusFailed, ErrorClass: class}
	if err != nil {
		o.Error = err.Error()
	}
	return o
}

// Summary is the aggregate response for one dispatch invocation. Results is
// an unordered multiset keyed by target.
type Summary struct {
	Success bool      `json:"success"`
	Sent    int       `json:"sent"`
	Failed  int       `json:"failed"`
	Total   int       `json:"total"`
	Results []Outcome `json:"results"`
}

// Summarize folds per-target outcomes into a Summary. A request with at least
// one success is not treated as a hard failure even if others failed; an
// empty outcome set (no recipients) is also not a failure.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Results: outcomes, Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Status == StatusSent {
			s.Sent++
		} else {
			s.Failed++
		}
	}
	s.Success = s.Sent > 0 || s.Total == 0
	return s
}
