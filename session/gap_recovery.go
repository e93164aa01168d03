package session

import (
	"fmt"
	"sync"
	"time"
)

// GapStatus reports what CheckMessage found for one incoming MsgSeqNum.
type GapStatus int

const (
	GapStatusNoGap GapStatus = iota
	GapStatusDetected
	GapStatusDuplicate
)

// SequenceGap records one open gap awaiting a ResendRequest/fill.
type SequenceGap struct {
	BeginSeqNo int
	EndSeqNo   int
	DetectedAt time.Time
}

// GapRecovery tracks the next expected inbound MsgSeqNum for one session
// and classifies every arriving sequence number as in-order, a duplicate
// (below expectation), or the start/continuation of a gap (above
// expectation), the same three-way split the teacher's engine used for its
// order-flow sessions.
type GapRecovery struct {
	sessionID      string
	expectedSeqNum int
	maxGapSize     int

	currentGap *SequenceGap

	mu sync.Mutex
}

// NewGapRecovery builds a tracker that next expects expectedSeqNum.
func NewGapRecovery(sessionID string, expectedSeqNum int) *GapRecovery {
	return &GapRecovery{
		sessionID:      sessionID,
		expectedSeqNum: expectedSeqNum,
		maxGapSize:     1000,
	}
}

// CheckMessage classifies receivedSeqNum against the running expectation.
// possDup (tag 43 PossDupFlag) does not change the result: a number below
// the expectation is reported as GapStatusDuplicate either way.
func (g *GapRecovery) CheckMessage(receivedSeqNum int, possDup bool) (GapStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if receivedSeqNum < g.expectedSeqNum {
		if possDup {
			return GapStatusDuplicate, nil
		}
		return GapStatusDuplicate, nil
	}

	if receivedSeqNum > g.expectedSeqNum {
		gapSize := receivedSeqNum - g.expectedSeqNum
		if gapSize > g.maxGapSize {
			return GapStatusNoGap, fmt.Errorf("session %s: gap too large (%d, max %d)", g.sessionID, gapSize, g.maxGapSize)
		}
		g.currentGap = &SequenceGap{
			BeginSeqNo: g.expectedSeqNum,
			EndSeqNo:   receivedSeqNum - 1,
			DetectedAt: time.Now(),
		}
		g.expectedSeqNum = receivedSeqNum + 1
		return GapStatusDetected, nil
	}

	g.expectedSeqNum++
	g.currentGap = nil
	return GapStatusNoGap, nil
}

// OpenGap returns the currently outstanding gap, if any.
func (g *GapRecovery) OpenGap() *SequenceGap {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentGap
}
