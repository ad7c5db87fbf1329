package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Christian2525252525/bbl-evacuatie-calculator/sim"
	"github.com/Christian2525252525/bbl-evacuatie-calculator/sim/scenario"
	"github.com/Christian2525252525/bbl-evacuatie-calculator/sim/trace"
)

const (
	maxScenarioBytes = 1 << 20
	streamWriteWait  = 10 * time.Second
	streamReadWait   = 60 * time.Second
)

var (
	serveAddr      string
	serveCacheSize int
)

// Server exposes the engine over HTTP. Every request builds its own simulator;
// the only state shared between requests is the result cache.
type Server struct {
	cache    *lru.Cache[string, *sim.Result]
	upgrader websocket.Upgrader
}

// NewServer creates a server caching up to cacheSize results.
func NewServer(cacheSize int) (*Server, error) {
	cache, err := lru.New[string, *sim.Result](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Server{
		cache: cache,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
	}, nil
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /v1/defaults", s.handleDefaults)
	mux.HandleFunc("POST /v1/simulate", s.handleSimulate)
	mux.HandleFunc("GET /v1/stream", s.handleStream)
	return mux
}

type simulateResponse struct {
	RunID       string      `json:"run_id"`
	Fingerprint string      `json:"fingerprint"`
	Cached      bool        `json:"cached"`
	Result      *sim.Result `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) handleDefaults(w http.ResponseWriter, _ *http.Request) {
	sc := scenario.Default()
	writeJSON(w, http.StatusOK, sc.Expand())
}

// handleSimulate runs a JSON scenario. Snapshots are omitted unless the
// request asks for them with ?snapshots=true.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxScenarioBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	sc, err := parseAndValidate(body)
	if err != nil {
		writeError(w, err)
		return
	}
	fingerprint, err := sc.Fingerprint()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	resp := simulateResponse{RunID: uuid.NewString(), Fingerprint: fingerprint}
	if res, ok := s.cache.Get(fingerprint); ok {
		resp.Cached = true
		resp.Result = res
	} else {
		res, err := sim.Simulate(sc.BuildingConfig())
		if err != nil {
			writeError(w, err)
			return
		}
		s.cache.Add(fingerprint, res)
		resp.Result = res
	}
	logrus.Infof("run %s: scenario %s, %.2f min, cached=%v", resp.RunID, fingerprint, resp.Result.EvacuationMinutes, resp.Cached)

	if r.URL.Query().Get("snapshots") != "true" {
		resp.Result = withoutSnapshots(resp.Result)
	}
	writeJSON(w, http.StatusOK, resp)
}

type streamFrame struct {
	Type     string          `json:"type"` // "started", "snapshot", "result" or "error"
	RunID    string          `json:"run_id,omitempty"`
	Snapshot *trace.Snapshot `json:"snapshot,omitempty"`
	Result   *sim.Result     `json:"result,omitempty"`
	Error    string          `json:"error,omitempty"`
	Field    string          `json:"field,omitempty"`
}

// handleStream reads one JSON scenario from the websocket, then sends a frame
// per simulated step followed by the result without snapshots.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Debugf("stream upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxScenarioBytes)

	if err := conn.SetReadDeadline(time.Now().Add(streamReadWait)); err != nil {
		return
	}
	_, msg, err := conn.ReadMessage()
	if err != nil {
		logrus.Debugf("stream read failed: %v", err)
		return
	}

	send := func(f streamFrame) error {
		if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
			return err
		}
		return conn.WriteJSON(f)
	}

	sc, err := parseAndValidate(msg)
	if err != nil {
		_ = send(errorFrame(err))
		return
	}
	simulator, err := sim.NewSimulator(sc.BuildingConfig())
	if err != nil {
		_ = send(errorFrame(err))
		return
	}

	runID := uuid.NewString()
	if err := send(streamFrame{Type: "started", RunID: runID}); err != nil {
		return
	}
	var writeErr error
	simulator.SetObserver(func(snap trace.Snapshot) {
		if writeErr != nil {
			return
		}
		writeErr = send(streamFrame{Type: "snapshot", RunID: runID, Snapshot: &snap})
	})
	res := simulator.Run()
	if writeErr != nil {
		logrus.Debugf("stream %s: client went away: %v", runID, writeErr)
		return
	}
	_ = send(streamFrame{Type: "result", RunID: runID, Result: withoutSnapshots(res)})
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
		time.Now().Add(streamWriteWait))
}

func parseAndValidate(data []byte) (*scenario.Scenario, error) {
	sc, err := scenario.ParseJSON(data)
	if err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// withoutSnapshots returns a shallow copy of res with the snapshot list dropped.
func withoutSnapshots(res *sim.Result) *sim.Result {
	out := *res
	out.Snapshots = nil
	return &out
}

func errorFrame(err error) streamFrame {
	f := streamFrame{Type: "error", Error: err.Error()}
	var cfgErr *sim.ConfigError
	if errors.As(err, &cfgErr) {
		f.Field = cfgErr.Field
	}
	return f
}

func writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	var cfgErr *sim.ConfigError
	if errors.As(err, &cfgErr) {
		resp.Field = cfgErr.Field
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("writing response: %v", err)
	}
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulator over HTTP and websocket",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)
		cfg, err := LoadServerConfig()
		if err != nil {
			logrus.Fatalf("Invalid server configuration: %v", err)
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr = serveAddr
		}
		if cmd.Flags().Changed("cache-size") {
			cfg.CacheSize = serveCacheSize
		}
		srv, err := NewServer(cfg.CacheSize)
		if err != nil {
			logrus.Fatalf("Failed to create server: %v", err)
		}
		httpServer := &http.Server{
			Addr:              cfg.Addr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		logrus.Infof("Listening on %s (result cache: %d entries)", cfg.Addr, cfg.CacheSize)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server stopped: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", defaultServerAddr, "Listen address (overrides EVAC_ADDR)")
	serveCmd.Flags().IntVar(&serveCacheSize, "cache-size", defaultServerCacheSize, "Number of cached results (overrides EVAC_CACHE_SIZE)")
	rootCmd.AddCommand(serveCmd)
}
