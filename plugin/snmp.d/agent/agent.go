// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/errgroup"

	"github.com/snmpcollect/snmpcollect/logger"
	"github.com/snmpcollect/snmpcollect/plugin/snmp.d/collector/snmp"
	"github.com/snmpcollect/snmpcollect/plugin/snmp.d/exporter"
)

const (
	onceConcurrency = 16
	shutdownTimeout = 10 * time.Second
)

// Config is an Agent configuration.
type Config struct {
	ConfigPath string
	// Listen overrides the exporter address of the config file.
	Listen string
	// Once polls every host one time, writes the exposition to Out and returns.
	Once bool
	Out  io.Writer
}

// Agent loads the configuration, keeps one job per host and serves the collected metrics.
type Agent struct {
	*logger.Logger

	ConfigPath string
	Listen     string
	Once       bool
	Out        io.Writer

	exporter *exporter.Exporter
}

// New creates a new Agent.
func New(cfg Config) *Agent {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	exp := exporter.New()
	exp.Logger = logger.New().With(slog.String("component", "exporter"))

	return &Agent{
		Logger: logger.New().With(
			slog.String("component", "agent"),
		),
		ConfigPath: cfg.ConfigPath,
		Listen:     cfg.Listen,
		Once:       cfg.Once,
		Out:        out,
		exporter:   exp,
	}
}

// Run blocks until SIGINT or SIGTERM. SIGHUP reloads the configuration.
func (a *Agent) Run() error {
	if a.Once {
		return a.runOnce(context.Background())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	return a.serve(ctx, hup)
}

func (a *Agent) serve(ctx context.Context, hup <-chan os.Signal) error {
	a.Info("instance is started")
	defer func() { a.Info("instance is stopped") }()

	settings, err := LoadConfig(a.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.Infof("using config '%s': %d hosts, %d data definitions", a.ConfigPath, len(settings.Hosts), len(settings.Defs))

	var ln net.Listener
	if addr := firstNotEmpty(a.Listen, settings.Listen); addr != "" {
		if ln, err = net.Listen("tcp", addr); err != nil {
			return fmt.Errorf("listen '%s': %w", addr, err)
		}
		a.Infof("serving metrics on http://%s/metrics", ln.Addr())
	}

	mgr := newManager(a.exporter)
	mgr.apply(settings)
	defer mgr.stopAll()

	changed := make(chan struct{}, 1)
	w, err := newWatcher(settings.Files)
	if err != nil {
		a.Warningf("config files are not watched, only SIGHUP reloads: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { mgr.run(gctx); return nil })

	if w != nil {
		g.Go(func() error { w.run(gctx, changed); return nil })
	}

	if ln != nil {
		g.Go(func() error { return a.serveHTTP(gctx, ln) })
	}

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case sig := <-hup:
				a.Infof("received %s signal, reloading configuration", sig)
			case <-changed:
				a.Info("configuration file changed, reloading")
			}
			a.reload(mgr, w)
		}
	})

	return g.Wait()
}

func (a *Agent) reload(mgr *manager, w *watcher) {
	settings, err := LoadConfig(a.ConfigPath)
	if err != nil {
		a.Errorf("reload failed, keeping the running configuration: %v", err)
		return
	}
	mgr.apply(settings)
	if w != nil {
		w.update(settings.Files)
	}
}

func (a *Agent) serveHTTP(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.exporter.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

// runOnce polls every host one time, concurrently, and writes the exposition.
func (a *Agent) runOnce(ctx context.Context) error {
	settings, err := LoadConfig(a.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return a.pollOnce(ctx, settings, newCollector)
}

func (a *Agent) pollOnce(ctx context.Context, settings *Settings, newPoller func(snmp.Config, snmp.Definitions) (poller, error)) error {
	var jobs []*Job
	for _, entry := range settings.Hosts {
		p, err := newPoller(entry.Config, settings.Defs)
		if err != nil {
			a.Errorf("host '%s': %v", entry.Config.Name, err)
			continue
		}
		job := newJob(entry, p, a.exporter)
		job.ctx = ctx
		jobs = append(jobs, job)
	}

	p := pool.New().WithMaxGoroutines(onceConcurrency)
	for _, job := range jobs {
		p.Go(job.runOnce)
	}
	p.Wait()

	for _, job := range jobs {
		job.poller.Cleanup()
		job.cancel()
	}

	return a.exporter.WriteText(a.Out)
}

func firstNotEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
