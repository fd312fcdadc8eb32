// Package monitor serves live run progress: a websocket stream, Prometheus metrics and a JSON status
package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/genpop/genetic"
)

// Status is the latest run state
type Status struct {
	Problem    string  `json:"problem"`
	State      string  `json:"state"` // running or a stop reason
	Generation int     `json:"generation"`
	Best       float64 `json:"best"`
	Average    float64 `json:"average"`
	Worst      float64 `json:"worst"`
	StdDev     float64 `json:"std_dev"`
	Fittest    string  `json:"fittest,omitempty"`
}

// Server publishes generation updates; Observe and Finish are called from the run goroutine
type Server struct {
	hub      *hub
	upgrader websocket.Upgrader

	registry    *prometheus.Registry
	generation  prometheus.Gauge
	fitness     *prometheus.GaugeVec
	generations prometheus.Counter
	evaluations prometheus.Counter

	mu     sync.RWMutex
	status Status

	closeOnce sync.Once
}

func New(problem string) *Server {
	s := &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		registry: prometheus.NewRegistry(),
		generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "genpop_generation",
			Help: "Current generation number.",
		}),
		fitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "genpop_fitness",
			Help: "Fitness of the current generation by kind.",
		}, []string{"kind"}),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "genpop_generations_total",
			Help: "Generations scored since start, including generation 0.",
		}),
		evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "genpop_evaluations_total",
			Help: "Fitness evaluations performed.",
		}),
		status: Status{Problem: problem, State: "running"},
	}
	s.registry.MustRegister(s.generation, s.fitness, s.generations, s.evaluations)
	s.hub = newHub(func() Message {
		return Message{Type: MsgStatus, Data: s.Status(), Time: time.Now().Unix()}
	})
	go s.hub.run()
	return s
}

// Handler routes /ws, /metrics and /status
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/status", s.handleStatus)
	return corsMiddleware(mux)
}

// Serve runs the HTTP server on ln until ctx is done
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Observe records a scored generation. evaluations is the number of fitness calls it took.
func (s *Server) Observe(stats genetic.Stats, evaluations int, fittest string, improved bool) {
	s.generation.Set(float64(stats.Generation))
	s.fitness.WithLabelValues("best").Set(stats.Best)
	s.fitness.WithLabelValues("average").Set(stats.Average)
	s.fitness.WithLabelValues("worst").Set(stats.Worst)
	s.generations.Inc()
	s.evaluations.Add(float64(evaluations))

	s.mu.Lock()
	s.status.Generation = stats.Generation
	s.status.Best = stats.Best
	s.status.Average = stats.Average
	s.status.Worst = stats.Worst
	s.status.StdDev = stats.StdDev
	s.status.Fittest = fittest
	status := s.status
	s.mu.Unlock()

	s.hub.send(MsgGeneration, status)
	if improved {
		s.hub.send(MsgBest, status)
	}
}

// Finish marks the run stopped with reason and notifies clients
func (s *Server) Finish(reason string) {
	s.mu.Lock()
	s.status.State = reason
	status := s.status
	s.mu.Unlock()
	s.hub.send(MsgStatus, status)
}

func (s *Server) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Close disconnects websocket clients
func (s *Server) Close() {
	s.closeOnce.Do(s.hub.close)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		return
	}
	s.hub.attach(conn)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Status())
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
