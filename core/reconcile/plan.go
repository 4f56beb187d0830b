package reconcile

// Summarize counts results by action.
func Summarize(results ...Result) Summary {
	var s Summary
	for _, r := range results {
		s.Add(r)
	}
	return s
}

// Add counts one more result.
func (s *Summary) Add(r Result) {
	switch r.Action {
	case ActionCreated:
		s.Created++
	case ActionEdited:
		s.Edited++
	case ActionRecreated:
		s.Recreated++
	case ActionFailed:
		s.Failed++
	case ActionSkipped:
		s.Skipped++
	}
}

// Merge adds the counts of other.
func (s *Summary) Merge(other Summary) {
	s.Created += other.Created
	s.Edited += other.Edited
	s.Recreated += other.Recreated
	s.Failed += other.Failed
	s.Skipped += other.Skipped
}
