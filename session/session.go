// Package session wires the byte-resumable parser into a stateful FIX
// session: one Parser per logical connection, sequence-number bookkeeping,
// gap detection, and heartbeat timing, grounded on the same state-machine
// shape the teacher engine used for its trading sessions.
package session

import (
	"sync"
	"time"

	"github.com/epic1st/fixengine/fixversion"
	"github.com/epic1st/fixengine/logging"
	"github.com/epic1st/fixengine/message"
	"github.com/epic1st/fixengine/messages"
	"github.com/epic1st/fixengine/metrics"
	"github.com/epic1st/fixengine/parser"
)

// State is the lifecycle state of one FIX session.
type State string

const (
	StateDisconnected State = "DISCONNECTED"
	StateConnecting   State = "CONNECTING"
	StateLoggingOn    State = "LOGGING_ON"
	StateLoggedOn     State = "LOGGED_ON"
	StateLoggingOut   State = "LOGGING_OUT"
)

// Session is one logical FIX connection: its own Parser instance (so
// resumability is per-connection, never shared), its sequence counters,
// and the gap-recovery tracker watching incoming MsgSeqNum.
type Session struct {
	ID           string
	SenderCompID string
	TargetCompID string
	BeginString  fixversion.BeginString

	HeartbeatInterval time.Duration
	LastHeartbeat     time.Time

	parser *parser.Parser
	gap    *GapRecovery

	mu        sync.Mutex
	state     State
	inSeqNum  int
	outSeqNum int
}

// Config describes a session at construction time.
type Config struct {
	ID                string
	SenderCompID      string
	TargetCompID      string
	BeginString       fixversion.BeginString
	HeartbeatInterval time.Duration
	StartInSeqNum     int
	StartOutSeqNum    int
}

// New builds a Session around parser p, seeding its sequence counters from
// cfg.StartInSeqNum/StartOutSeqNum (zero means 1).
func New(cfg Config, p *parser.Parser) *Session {
	if cfg.HeartbeatInterval == 0 {
		cfg.HeartbeatInterval = 30 * time.Second
	}
	in := cfg.StartInSeqNum
	if in == 0 {
		in = 1
	}
	out := cfg.StartOutSeqNum
	if out == 0 {
		out = 1
	}
	return &Session{
		ID:                cfg.ID,
		SenderCompID:      cfg.SenderCompID,
		TargetCompID:      cfg.TargetCompID,
		BeginString:       cfg.BeginString,
		HeartbeatInterval: cfg.HeartbeatInterval,
		parser:            p,
		gap:               NewGapRecovery(cfg.ID, in),
		state:             StateDisconnected,
		inSeqNum:          in,
		outSeqNum:         out,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) SetState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Session) NextOutSeqNum() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.outSeqNum
	s.outSeqNum++
	return n
}

// Summary is the admin-facing snapshot of a session's identity and
// sequence state.
type Summary struct {
	ID           string `json:"id"`
	SenderCompID string `json:"senderCompId"`
	TargetCompID string `json:"targetCompId"`
	BeginString  string `json:"beginString"`
	State        string `json:"state"`
	InSeqNum     int    `json:"inSeqNum"`
	OutSeqNum    int    `json:"outSeqNum"`
}

// Summary snapshots the session's current identity and sequence state.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{
		ID:           s.ID,
		SenderCompID: s.SenderCompID,
		TargetCompID: s.TargetCompID,
		BeginString:  s.BeginString.String(),
		State:        string(s.state),
		InSeqNum:     s.inSeqNum,
		OutSeqNum:    s.outSeqNum,
	}
}

// Feed pushes bytes into the session's parser, applies gap/duplicate
// checks to every completed message by its MsgSeqNum, and returns the
// messages that passed those checks in order alongside however many bytes
// the parser consumed.
func (s *Session) Feed(data []byte) (int, []message.Template, error) {
	start := time.Now()
	n, err := s.parser.Parse(data)
	elapsedMicros := time.Since(start).Seconds() * 1e6
	metrics.RecordBytesParsed(n)
	if err != nil {
		metrics.RecordParseError(classifyError(err))
		return n, nil, err
	}

	pending := s.parser.Messages
	s.parser.Messages = nil

	accepted := make([]message.Template, 0, len(pending))
	for _, m := range pending {
		metrics.RecordMessageParsed(m.MsgType(), s.BeginString.String(), elapsedMicros)

		seqNum := intField(m, "34")
		possDup := boolField(m, "43")

		status, gapErr := s.gap.CheckMessage(seqNum, possDup)
		if gapErr != nil {
			logging.Warn("sequence gap exceeds configured maximum", logging.SessionID(s.ID), logging.SeqNum(seqNum))
			metrics.RecordSequenceGap(s.ID)
			continue
		}
		switch status {
		case GapStatusDuplicate:
			metrics.RecordDuplicate(s.ID)
			continue
		case GapStatusDetected:
			metrics.RecordSequenceGap(s.ID)
			metrics.RecordResendRequest(s.ID)
		}

		s.mu.Lock()
		if seqNum >= s.inSeqNum {
			s.inSeqNum = seqNum + 1
		}
		s.mu.Unlock()

		accepted = append(accepted, m)
	}

	return n, accepted, nil
}

// SeqNumOf returns m's MsgSeqNum (tag 34), for callers outside this
// package that need to key off it (e.g. a distributed deduplicator).
func SeqNumOf(m message.Template) int {
	return intField(m, messages.TagMsgSeqNum)
}

func classifyError(err error) string {
	if pe, ok := err.(*parser.ParseError); ok {
		return pe.Kind.String()
	}
	return "unknown"
}

func intField(m message.Template, tag string) int {
	gt, ok := m.(*messages.GenericTemplate)
	if !ok {
		return 0
	}
	ft := gt.Value(tag)
	switch v := ft.(type) {
	case interface{ Value() uint64 }:
		return int(v.Value())
	case interface{ Value() int64 }:
		return int(v.Value())
	}
	return 0
}

func boolField(m message.Template, tag string) bool {
	gt, ok := m.(*messages.GenericTemplate)
	if !ok {
		return false
	}
	ft := gt.Value(tag)
	if v, ok := ft.(interface{ Value() bool }); ok {
		return v.Value()
	}
	return false
}
