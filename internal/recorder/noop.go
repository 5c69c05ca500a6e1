package recorder

// NoopRecorder is used when the journal is disabled.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordCommand(_ *CommandEvent) error          { return nil }
func (n *NoopRecorder) RecordAgentSnapshot(_ *AgentSnapshot) error   { return nil }
func (n *NoopRecorder) RecentCommands(_ int) ([]CommandEvent, error) { return nil, nil }
func (n *NoopRecorder) Close() error                                 { return nil }
