// main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"stallpos/internal/cart"
	"stallpos/internal/config"
	"stallpos/internal/httpapi"
	"stallpos/internal/logger"
	"stallpos/internal/menu"
	"stallpos/internal/order"
	"stallpos/internal/sales"
	"stallpos/internal/security"
	"stallpos/internal/sheets"
	"stallpos/internal/store"
)

type App struct {
	addr          string
	mux           *http.ServeMux
	connections   sync.WaitGroup
	totalRequests int64
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "stallpos",
		Short:         "Point-of-sale backend for a small food stall",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the POS API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	var exportDate, exportOut string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write one day's sales CSV from the local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(exportDate, exportOut)
		},
	}
	exportCmd.Flags().StringVar(&exportDate, "date", "", "day to export (YYYY-MM-DD, default today)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")

	root.AddCommand(serveCmd, exportCmd)
	return root
}

// bootstrap loads configuration and opens the record store. Callers own
// closing the store.
func bootstrap() (*store.Store, error) {
	config.LoadEnv()

	if err := logger.Setup(config.LoggerConfig()); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.LogInfo("Environment loaded. Logger ready.")

	config.ConfigurePaths()

	st, err := store.Open(config.DBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}
	return st, nil
}

func runServe() error {
	st, err := bootstrap()
	if err != nil {
		return err
	}
	defer st.Close()

	gate := security.NewGate(st)
	if config.BootstrapPIN != "" && !gate.Enabled() {
		if err := gate.Set(config.BootstrapPIN); err != nil {
			return err
		}
		logger.LogInfo("Manager PIN seeded from environment")
	}

	catalog, err := menu.Load(st, gate.Confirmer())
	if err != nil {
		return err
	}

	till := cart.New()
	ledger := order.NewLedger(st)

	svc := &order.Service{
		Ledger:  ledger,
		Catalog: catalog,
		Cart:    till,
	}
	if config.SheetsWebhookURL != "" {
		svc.Sync = sheets.NewClient(config.SheetsWebhookURL, config.SheetsToken)
		logger.LogInfo("Sheets sync enabled")
	} else {
		logger.LogWarn("SHEETS_WEBHOOK_URL not set; orders will be kept locally only")
	}

	app := &App{
		addr: config.ServerAddress(),
		mux: routes(
			&menu.Handlers{Catalog: catalog},
			&cart.Handlers{Cart: till, Catalog: catalog},
			&order.Handlers{Service: svc, Ledger: ledger},
			&sales.Handlers{Ledger: ledger},
			&security.Handlers{Gate: gate},
		),
	}
	app.Run()
	return nil
}

func runExport(date, out string) error {
	st, err := bootstrap()
	if err != nil {
		return err
	}
	defer st.Close()

	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid --date %q: %w", date, err)
	}

	orders, err := order.NewLedger(st).Day(date)
	if err != nil {
		return err
	}

	w := os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %q: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	if err := sales.WriteCSV(w, orders); err != nil {
		return err
	}
	logger.LogInfo("Exported %d orders for %s", len(orders), date)
	return nil
}

// routes sets up all API routes.
func routes(
	menuH *menu.Handlers,
	cartH *cart.Handlers,
	orderH *order.Handlers,
	salesH *sales.Handlers,
	pinH *security.Handlers,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /menu", menuH.List)
	apiMux.HandleFunc("POST /menu", menuH.Add)
	apiMux.HandleFunc("PUT /menu/{id}", menuH.Update)
	apiMux.HandleFunc("DELETE /menu/{id}", menuH.Remove)

	apiMux.HandleFunc("GET /cart", cartH.Get)
	apiMux.HandleFunc("POST /cart/items", cartH.AddOne)
	apiMux.HandleFunc("PUT /cart/items/{id}", cartH.SetQty)
	apiMux.HandleFunc("DELETE /cart/items/{id}", cartH.Remove)
	apiMux.HandleFunc("DELETE /cart", cartH.Clear)

	apiMux.HandleFunc("POST /orders", orderH.Submit)
	apiMux.HandleFunc("GET /orders", orderH.Day)
	apiMux.HandleFunc("PUT /orders/{date}/{index}", orderH.Edit)
	apiMux.HandleFunc("DELETE /orders/{date}/{index}", orderH.Delete)

	apiMux.HandleFunc("GET /sales", salesH.Summary)
	apiMux.HandleFunc("GET /sales/export", salesH.ExportCSV)

	apiMux.HandleFunc("POST /pin", pinH.SetPin)

	mux.Handle("/api/", http.StripPrefix("/api", apiMux))

	return mux
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() {
	server := &http.Server{
		Addr:         a.addr,
		Handler:      a.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.LogInfo("Starting server on %s", a.addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.LogFatal("Server failed: %v", err)
		}
	}()

	<-stop
	logger.LogInfo("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.LogError("Server shutdown error: %v", err)
	}

	logger.LogInfo("Waiting for active connections to finish...")
	a.connections.Wait()
	logger.LogInfo("Server shut down gracefully. Total requests handled: %d", atomic.LoadInt64(&a.totalRequests))
}

// Handler assembles all middleware around the main mux.
func (a *App) Handler() http.Handler {
	var handler http.Handler = a.mux

	handler = httpapi.RequestID(handler)
	handler = a.trackConnections(handler)
	handler = logRequests(handler)
	handler = withTimeout(handler, 15*time.Second)

	return handler
}

// Middleware: timeout handler
func withTimeout(h http.Handler, timeout time.Duration) http.Handler {
	return http.TimeoutHandler(h, timeout, "Request timed out")
}

// Middleware: log requests
func logRequests(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		h.ServeHTTP(w, r)

		logger.LogInfo("%s %s took %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// Middleware: track active connections and total requests
func (a *App) trackConnections(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.connections.Add(1)
		atomic.AddInt64(&a.totalRequests, 1)
		defer a.connections.Done()

		h.ServeHTTP(w, r)
	})
}
