package session

import "context"

// MessageStore persists raw outbound/inbound message bytes by sequence
// number, so a ResendRequest can be answered without re-deriving state.
type MessageStore interface {
	Save(ctx context.Context, sessionID string, seqNum int, raw []byte) error
	Range(ctx context.Context, sessionID string, beginSeqNo, endSeqNo int) ([][]byte, error)
}

// SequenceStore persists the in/out sequence counters across restarts.
type SequenceStore interface {
	Load(ctx context.Context, sessionID string) (inSeqNum, outSeqNum int, err error)
	Save(ctx context.Context, sessionID string, inSeqNum, outSeqNum int) error
}

// Deduplicator suppresses messages already processed once, keyed on a
// session-scoped idempotency key (typically SenderCompID/TargetCompID/
// MsgSeqNum).
type Deduplicator interface {
	SeenBefore(ctx context.Context, key string) (bool, error)
}
