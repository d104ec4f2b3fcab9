package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/hallforge/seatplan/pkg/bridge"
	apperrors "github.com/hallforge/seatplan/pkg/errors"
	"github.com/hallforge/seatplan/pkg/layout"
	"github.com/hallforge/seatplan/pkg/store"
)

// serveCommand creates the serve command exposing layouts over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored layouts over HTTP",
		Long: `Serve exposes the stored layout collection as a read-only JSON API.
Exported documents carry hydrated positions folded into section metadata,
exactly like a file export.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           c.newRouter(st),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			c.Logger.Info("serving layouts", "addr", addr)

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8420", "listen address")
	return cmd
}

// newRouter builds the read-only HTTP API. Every request reloads the
// collection from the store, so writes from a concurrent editor are visible
// without restarting.
func (c *CLI) newRouter(st store.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(c.requestLogger)

	r.Get("/layouts", func(w http.ResponseWriter, req *http.Request) {
		repo, err := c.loadRepository(req.Context(), st)
		if err != nil {
			writeError(w, err)
			return
		}
		layouts := repo.Layouts()
		if layouts == nil {
			layouts = []layout.Layout{}
		}
		writeJSON(w, http.StatusOK, layouts)
	})

	r.Get("/layouts/{id}", func(w http.ResponseWriter, req *http.Request) {
		repo, err := c.loadRepository(req.Context(), st)
		if err != nil {
			writeError(w, err)
			return
		}
		l, ok := repo.Layout(chi.URLParam(req, "id"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "layout not found"})
			return
		}
		writeJSON(w, http.StatusOK, l)
	})

	r.Get("/layouts/{id}/export", func(w http.ResponseWriter, req *http.Request) {
		repo, err := c.loadRepository(req.Context(), st)
		if err != nil {
			writeError(w, err)
			return
		}
		l, ok := repo.Layout(chi.URLParam(req, "id"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "layout not found"})
			return
		}
		folded := layout.Fold(l, layout.Hydrate(l.Sections))
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", folded.ExportName()+".json"))
		writeJSON(w, http.StatusOK, folded)
	})

	return r
}

func (c *CLI) loadRepository(ctx context.Context, st store.Store) (*bridge.Repository, error) {
	repo := bridge.NewRepository(st, c.Logger)
	if err := repo.Load(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func (c *CLI) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		c.Logger.Debug("request", "method", req.Method, "path", req.URL.Path, "dur", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": apperrors.UserMessage(err)})
}
