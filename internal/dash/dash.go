// Package dash exposes the latest analysis pass over HTTP: a JSON snapshot
// endpoint and a websocket that pushes each new report as it lands.
package dash

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zhokingg/abt-un-sub002/internal/types"
	"go.uber.org/zap"
)

// Row is one opportunity flattened for display.
type Row struct {
	Path          string  `json:"path"`
	Hops          int     `json:"hops"`
	Weight        float64 `json:"weight"`
	RiskScore     float64 `json:"riskScore"`
	RiskLevel     string  `json:"riskLevel"`
	Recommend     string  `json:"recommendation"`
	AdjustedScore float64 `json:"adjustedScore"`
	Viable        bool    `json:"viable"`
	OptimalSize   float64 `json:"optimalSizeUSD"`
	NetProfit     float64 `json:"netProfitUSD"`
	TS            int64   `json:"ts"`
}

type view struct {
	Rows      []Row `json:"rows"`
	Cycles    int   `json:"cycles"`
	Viable    int   `json:"viable"`
	TotalMs   int64 `json:"totalMs"`
	TargetMet bool  `json:"targetMet"`
	TS        int64 `json:"ts"`
}

type Store struct {
	mu     sync.RWMutex
	latest view
	subs   map[chan view]struct{}
}

func NewStore() *Store {
	return &Store{subs: make(map[chan view]struct{})}
}

// Update replaces the displayed report and fans it out to websocket
// subscribers. Slow subscribers drop updates instead of blocking the pass.
func (s *Store) Update(rep *types.Report) {
	v := view{
		Rows:      make([]Row, 0, len(rep.Opportunities)),
		Cycles:    rep.CyclesFound,
		Viable:    rep.ViableCount,
		TotalMs:   rep.Timings.Total.Milliseconds(),
		TargetMet: rep.Timings.TargetMet,
		TS:        time.Now().UnixMilli(),
	}
	for _, o := range rep.Opportunities {
		r := Row{
			Path:          strings.Join(o.Path, "->"),
			Hops:          o.Hops,
			Weight:        o.Weight,
			RiskScore:     o.Risk.Score,
			RiskLevel:     string(o.Risk.Level),
			Recommend:     string(o.Risk.Recommendation),
			AdjustedScore: o.AdjustedScore,
			Viable:        o.Viable,
			TS:            o.Ts.UnixMilli(),
		}
		if o.Sizing != nil {
			r.OptimalSize = o.Sizing.OptimalSizeUSD
			r.NetProfit = o.Sizing.ExpectedNetProfitUSD
		}
		v.Rows = append(v.Rows, r)
	}

	s.mu.Lock()
	s.latest = v
	for ch := range s.subs {
		select {
		case ch <- v:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Store) snapshot() view {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func (s *Store) subscribe() chan view {
	ch := make(chan view, 4)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *Store) unsubscribe(ch chan view) {
	s.mu.Lock()
	delete(s.subs, ch)
	s.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Serve starts the dashboard HTTP server; it shuts down when ctx is done.
func Serve(ctx context.Context, addr string, store *Store, log *zap.Logger) {
	if addr == "" {
		log.Info("dash disabled: empty addr")
		return
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/report", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(store.snapshot())
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Debug("ws upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		ch := store.subscribe()
		defer store.unsubscribe(ch)

		// Current state first, then live updates.
		if err := conn.WriteJSON(store.snapshot()); err != nil {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case v := <-ch:
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteJSON(v); err != nil {
					return
				}
			}
		}
	})

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("dash server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("dash server error", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
