// Package ratelimit throttles inbound FIX traffic per session using a
// token-bucket algorithm, so one misbehaving counterparty cannot starve
// the gateway's parser goroutines.
package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"github.com/epic1st/fixengine/logging"
)

// Tier bounds how many messages and order-entry messages (NewOrderSingle,
// OrderCancelRequest, OrderCancelReplaceRequest) a session may submit per
// second, with a burst allowance above the steady-state rate.
type Tier struct {
	Name              string
	MessagesPerSecond int
	OrdersPerSecond   int
	BurstSize         int
}

var (
	TierBasic = Tier{Name: "basic", MessagesPerSecond: 20, OrdersPerSecond: 5, BurstSize: 10}

	TierStandard = Tier{Name: "standard", MessagesPerSecond: 100, OrdersPerSecond: 20, BurstSize: 40}

	TierPremium = Tier{Name: "premium", MessagesPerSecond: 500, OrdersPerSecond: 100, BurstSize: 200}
)

// sessionState tracks token-bucket state for one session. Token counts are
// refilled using integer nanosecond arithmetic rather than floating point,
// since accumulating a fractional token count across many short refills
// loses tokens to truncation.
type sessionState struct {
	tier Tier

	messageTokens int
	orderTokens   int

	messageNanos int64
	orderNanos   int64

	lastMessageRefill time.Time
	lastOrderRefill   time.Time

	violations int
}

// Limiter enforces per-session Tier limits on inbound FIX traffic.
type Limiter struct {
	mu       sync.Mutex
	sessions map[string]*sessionState
}

// New builds an empty Limiter.
func New() *Limiter {
	return &Limiter{sessions: make(map[string]*sessionState)}
}

// Register starts throttling sessionID under tier, replacing any prior
// registration for the same session (e.g. on reconnect).
func (l *Limiter) Register(sessionID string, tier Tier) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.sessions[sessionID] = &sessionState{
		tier:              tier,
		messageTokens:     tier.BurstSize,
		orderTokens:       tier.BurstSize,
		lastMessageRefill: now,
		lastOrderRefill:   now,
	}
}

// Unregister stops throttling sessionID, e.g. on logout.
func (l *Limiter) Unregister(sessionID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sessions, sessionID)
}

// AllowMessage claims one token from sessionID's message bucket. An
// unregistered session is always allowed, since message throttling is
// opt-in per session config.
func (l *Limiter) AllowMessage(sessionID string) bool {
	return l.allow(sessionID, func(s *sessionState) (*int, int) {
		l.refillMessages(s)
		return &s.messageTokens, 0
	})
}

// AllowOrder claims one token from sessionID's order bucket, for
// order-entry MsgTypes specifically.
func (l *Limiter) AllowOrder(sessionID string) bool {
	return l.allow(sessionID, func(s *sessionState) (*int, int) {
		l.refillOrders(s)
		return &s.orderTokens, 0
	})
}

func (l *Limiter) allow(sessionID string, refill func(*sessionState) (*int, int)) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.sessions[sessionID]
	if !ok {
		return true
	}

	tokens, _ := refill(s)
	if *tokens > 0 {
		*tokens--
		return true
	}

	s.violations++
	logging.Warn("rate limit exceeded",
		logging.SessionID(sessionID),
		logging.String("tier", s.tier.Name),
		logging.Int("violations", s.violations),
	)
	return false
}

func (l *Limiter) refillMessages(s *sessionState) {
	now := time.Now()
	elapsed := now.Sub(s.lastMessageRefill).Nanoseconds()
	s.messageNanos += elapsed

	toAdd := (s.messageNanos * int64(s.tier.MessagesPerSecond)) / 1_000_000_000
	if toAdd <= 0 {
		return
	}
	s.messageTokens += int(toAdd)
	if s.messageTokens > s.tier.BurstSize {
		s.messageTokens = s.tier.BurstSize
	}
	s.messageNanos -= toAdd * 1_000_000_000 / int64(s.tier.MessagesPerSecond)
	s.lastMessageRefill = now
}

func (l *Limiter) refillOrders(s *sessionState) {
	now := time.Now()
	elapsed := now.Sub(s.lastOrderRefill).Nanoseconds()
	s.orderNanos += elapsed

	toAdd := (s.orderNanos * int64(s.tier.OrdersPerSecond)) / 1_000_000_000
	if toAdd <= 0 {
		return
	}
	s.orderTokens += int(toAdd)
	if s.orderTokens > s.tier.BurstSize {
		s.orderTokens = s.tier.BurstSize
	}
	s.orderNanos -= toAdd * 1_000_000_000 / int64(s.tier.OrdersPerSecond)
	s.lastOrderRefill = now
}

// State reports a session's current token counts, for the diagnostic CLI.
type State struct {
	Tier               string
	AvailableMessages  int
	AvailableOrders    int
	Violations         int
}

// State returns the current throttling state for sessionID.
func (l *Limiter) State(sessionID string) (State, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.sessions[sessionID]
	if !ok {
		return State{}, fmt.Errorf("ratelimit: session %q not registered", sessionID)
	}
	l.refillMessages(s)
	l.refillOrders(s)
	return State{
		Tier:              s.tier.Name,
		AvailableMessages: s.messageTokens,
		AvailableOrders:   s.orderTokens,
		Violations:        s.violations,
	}, nil
}
