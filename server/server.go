package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/amonks/musicareas/db"
)

var shutdownTimeout = 5 * time.Second

func Run(ctx context.Context, db *db.DB, addr string) error {
	return run(ctx, &http.Server{Addr: addr, Handler: Handler(db)})
}

func run(ctx context.Context, srv *http.Server) error {
	errs := make(chan error, 1)
	go func() { errs <- srv.ListenAndServe() }()
	log.Printf("listening on %s", srv.Addr)

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Handler serves the stored music areas as JSON.
func Handler(store *db.DB) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /profiles", func(w http.ResponseWriter, req *http.Request) {
		profiles, err := store.AllProfiles(req.Context())
		if err != nil {
			log.Printf("error listing profiles: %s", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, profiles)
	})

	mux.HandleFunc("GET /profiles/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := req.PathValue("id")
		profile, err := store.GetProfile(req.Context(), id)
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "no music area '"+id+"'", http.StatusNotFound)
			return
		} else if err != nil {
			log.Printf("error getting profile '%s': %s", id, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, profile)
	})

	return logRequests(mux)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("error writing response: %s", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		log.Printf("%s %s %d %s", req.Method, req.URL.Path, rec.status, time.Since(start).Truncate(time.Microsecond))
	})
}
