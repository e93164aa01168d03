// Command fixgateway is the long-running FIX counterparty listener: it
// accepts TCP connections, feeds their bytes through a per-connection
// session.Session, persists and deduplicates traffic, throttles inbound
// messages, and exposes an admin control API plus a live execution/market
// data feed over WebSocket.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/epic1st/fixengine/auth"
	"github.com/epic1st/fixengine/authapi"
	"github.com/epic1st/fixengine/config"
	"github.com/epic1st/fixengine/dedup"
	"github.com/epic1st/fixengine/dictionary"
	"github.com/epic1st/fixengine/fixversion"
	"github.com/epic1st/fixengine/iopool"
	"github.com/epic1st/fixengine/livefeed"
	"github.com/epic1st/fixengine/logging"
	"github.com/epic1st/fixengine/messages"
	"github.com/epic1st/fixengine/metrics"
	"github.com/epic1st/fixengine/ratelimit"
	"github.com/epic1st/fixengine/session"
	"github.com/epic1st/fixengine/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("failed to load configuration", err)
	}

	dict := dictionary.New(messages.Catalog())
	engine := session.NewEngine(dict)

	seqStore, msgStore := buildStores(cfg)
	deduper := buildDeduper(cfg)
	limiter := ratelimit.New()

	authSvc := auth.NewService(cfg.Admin.Password, cfg.JWT.Secret)
	feed := livefeed.NewHub(authSvc)
	go feed.Run()

	apiHandler := authapi.NewHandler(authSvc, engine, limiter)
	metricsCollector := metrics.NewCollector()

	mux := http.NewServeMux()
	mux.HandleFunc("/admin/login", apiHandler.HandleLogin)
	mux.HandleFunc("/admin/sessions", apiHandler.HandleListSessions)
	mux.HandleFunc("/admin/ratelimit", apiHandler.HandleSessionRateLimit)
	mux.HandleFunc("/live", feed.ServeWS)
	mux.Handle("/metrics", metricsCollector.Handler())

	go func() {
		addr := ":" + cfg.Port
		logging.Info("admin API listening", logging.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			logging.Fatal("admin API server failed", err)
		}
	}()

	gw := &gateway{
		cfg:      cfg,
		engine:   engine,
		seqStore: seqStore,
		msgStore: msgStore,
		deduper:  deduper,
		limiter:  limiter,
		feed:     feed,
		bufs:     iopool.New(readBufferSize),
	}
	gw.run()
}

const readBufferSize = 64 * 1024

type gateway struct {
	cfg      *config.Config
	engine   *session.Engine
	seqStore session.SequenceStore
	msgStore session.MessageStore
	deduper  session.Deduplicator
	limiter  *ratelimit.Limiter
	feed     *livefeed.Hub
	bufs     *iopool.BufferPool
}

func (g *gateway) run() {
	listener, err := net.Listen("tcp", g.cfg.Gateway.ListenAddr)
	if err != nil {
		logging.Fatal("failed to bind FIX listener", err, logging.String("addr", g.cfg.Gateway.ListenAddr))
	}
	defer listener.Close()
	logging.Info("FIX gateway listening", logging.String("addr", g.cfg.Gateway.ListenAddr))

	for {
		conn, err := listener.Accept()
		if err != nil {
			logging.Error("accept failed", err)
			continue
		}
		go g.handleConn(conn)
	}
}

func (g *gateway) handleConn(conn net.Conn) {
	defer conn.Close()

	sessionID := conn.RemoteAddr().String()
	ctx := context.Background()

	inSeq, outSeq, err := g.seqStore.Load(ctx, sessionID)
	if err != nil {
		logging.Error("failed to load sequence state", err, logging.SessionID(sessionID))
		inSeq, outSeq = 1, 1
	}

	sess, err := g.engine.Open(session.Config{
		ID:                sessionID,
		BeginString:       fixversion.FIXT11,
		HeartbeatInterval: time.Duration(g.cfg.Gateway.HeartbeatInterval) * time.Second,
		StartInSeqNum:     inSeq,
		StartOutSeqNum:    outSeq,
	})
	if err != nil {
		logging.Error("failed to open session", err, logging.SessionID(sessionID))
		return
	}
	defer g.engine.Close(sessionID)

	tier := rateLimitTier(g.cfg.Gateway.RateLimitTier)
	g.limiter.Register(sessionID, tier)
	defer g.limiter.Unregister(sessionID)

	sess.SetState(session.StateLoggingOn)
	logging.Info("session connected", logging.SessionID(sessionID))

	buf := g.bufs.Get()
	defer g.bufs.Put(buf)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			g.feedBytes(ctx, sess, buf[:n])
		}
		if err != nil {
			logging.Info("session disconnected", logging.SessionID(sessionID))
			sess.SetState(session.StateDisconnected)
			return
		}
	}
}

func (g *gateway) feedBytes(ctx context.Context, sess *session.Session, data []byte) {
	_, accepted, err := sess.Feed(data)
	if err != nil {
		logging.Warn("parse error", logging.SessionID(sess.ID), logging.String("error", logging.MaskSensitiveData(err.Error())))
		return
	}

	for _, m := range accepted {
		if !g.limiter.AllowMessage(sess.ID) {
			continue
		}
		if isOrderEntry(m.MsgType()) && !g.limiter.AllowOrder(sess.ID) {
			continue
		}

		dedupKey := fmt.Sprintf("%s:%d", sess.ID, session.SeqNumOf(m))
		if g.deduper != nil {
			seen, err := g.deduper.SeenBefore(ctx, dedupKey)
			if err == nil && seen {
				continue
			}
		}

		// data is the network read chunk this message arrived in, not an
		// isolated per-message slice; the parser doesn't expose byte
		// offsets for individual completed messages.
		if err := g.msgStore.Save(ctx, sess.ID, sess.NextOutSeqNum(), data); err != nil {
			logging.Warn("failed to persist message", logging.SessionID(sess.ID))
		}

		g.feed.Publish(livefeed.Event{
			Type:      "fix-message",
			SessionID: sess.ID,
			MsgType:   m.MsgType(),
			Body:      m.ReadBody(nil),
		})
	}
}

func isOrderEntry(msgType string) bool {
	switch msgType {
	case messages.MsgTypeNewOrderSingle, messages.MsgTypeOrderCancelRequest, messages.MsgTypeOrderCancelReplaceRequest:
		return true
	default:
		return false
	}
}

func rateLimitTier(name string) ratelimit.Tier {
	switch name {
	case "premium":
		return ratelimit.TierPremium
	case "basic":
		return ratelimit.TierBasic
	default:
		return ratelimit.TierStandard
	}
}

func buildStores(cfg *config.Config) (session.SequenceStore, session.MessageStore) {
	if cfg.Database.Host == "" {
		logging.Warn("no database configured, using in-memory store (state does not survive a restart)")
		return store.NewMemSequenceStore(), store.NewMemMessageStore(0)
	}

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.Name, cfg.Database.SSLMode,
	)
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		logging.Error("failed to connect to postgres, falling back to in-memory store", err)
		return store.NewMemSequenceStore(), store.NewMemMessageStore(0)
	}
	return store.NewPostgresSequenceStore(pool), store.NewPostgresMessageStore(pool)
}

func buildDeduper(cfg *config.Config) session.Deduplicator {
	if cfg.Redis.Host == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
	})
	return dedup.NewRedisDeduplicator(client, "fixgateway", time.Duration(cfg.Gateway.DedupTTLHours)*time.Hour)
}
