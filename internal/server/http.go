package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"

	"photohunt-server/internal/engine"
	"photohunt-server/internal/infrastructure/storage"
	"photohunt-server/internal/version"
	"photohunt-server/pkg/api"
	"photohunt-server/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	Engine *engine.GameService
	Scores storage.ScoreStore
	Port   string
	// Debug открывает /debug/* и pprof
	Debug bool
}

func New(engine *engine.GameService, scores storage.ScoreStore, port string) *Server {
	return &Server{
		Engine: engine,
		Scores: scores,
		Port:   port,
	}
}

// Routes собирает все HTTP-маршруты сервера
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))
	mux.HandleFunc("/scores", enableCORS(s.handleScores))

	if s.Debug {
		NewDebugHandler(s.Engine).RegisterRoutes(mux)

		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	return mux
}

// Run запускает HTTP сервер и останавливает его при отмене ctx
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Port,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("📷 Photo hunt server running on :%s", s.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Log.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		// Разрешаем заголовки, если фронт шлет что-то нестандартное
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket.
// ?codec=msgpack включает бинарные кадры, ?name= задает имя охотника.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	codec, err := api.CodecByName(r.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Upgrade error")
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "hunter"
	}

	client := NewClient(s.Engine, conn, codec)
	if err := client.join(r.Context(), name); err != nil {
		logger.Log.WithError(err).Info("connection refused")
		return
	}

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status": "ok",
		"phase":  s.Engine.Phase().String(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, version.Info())
}

// /scores?level=3&limit=5 - таблица лучших результатов уровня
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(r.URL.Query().Get("level"))
	if err != nil || level <= 0 {
		http.Error(w, "level must be a positive integer", http.StatusBadRequest)
		return
	}
	limit := storage.TopLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			http.Error(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
	}

	if s.Scores == nil {
		http.Error(w, "score history disabled", http.StatusServiceUnavailable)
		return
	}

	entries, err := s.Scores.Top(r.Context(), level, limit)
	if err != nil {
		logger.Log.WithError(err).WithField("level", level).Error("failed to read scores")
		http.Error(w, "failed to read scores", http.StatusInternalServerError)
		return
	}

	view := make([]scoreView, 0, len(entries))
	for _, e := range entries {
		view = append(view, scoreView{
			PlayerName: e.PlayerName,
			Score:      e.Score,
			Level:      e.Level,
			Date:       e.RecordedAt.UTC().Format(time.RFC3339),
			TimeTaken:  e.TimeTaken.Seconds(),
		})
	}
	writeJSON(w, view)
}

// scoreView - строка таблицы лидеров
type scoreView struct {
	PlayerName string  `json:"player_name"`
	Score      int     `json:"score"`
	Level      int     `json:"level"`
	Date       string  `json:"date"`
	TimeTaken  float64 `json:"time_taken"`
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")

	// Если data == nil, возвращаем пустой массив [], а не null
	if data == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Debug("write json response failed")
	}
}
