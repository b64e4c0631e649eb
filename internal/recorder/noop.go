package recorder

// NoopRecorder is a no-op implementation used when no storage is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordTurn(_ *TurnEvent) error             { return nil }
func (n *NoopRecorder) RecordReset(_ *ResetEvent) error           { return nil }
func (n *NoopRecorder) RecordCommentary(_ *CommentaryEvent) error { return nil }
func (n *NoopRecorder) Close() error                              { return nil }
