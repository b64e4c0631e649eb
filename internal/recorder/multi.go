package recorder

import "errors"

// Multi fans every event out to several recorders. A failing backend does
// not stop the others; errors are joined.
type Multi []Recorder

func (m Multi) RecordTurn(evt *TurnEvent) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.RecordTurn(evt))
	}
	return errors.Join(errs...)
}

func (m Multi) RecordReset(evt *ResetEvent) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.RecordReset(evt))
	}
	return errors.Join(errs...)
}

func (m Multi) RecordCommentary(evt *CommentaryEvent) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.RecordCommentary(evt))
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.Close())
	}
	return errors.Join(errs...)
}
