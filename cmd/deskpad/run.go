package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/frudas24/deskpad/internal/app"
	"github.com/frudas24/deskpad/internal/config"
	"github.com/frudas24/deskpad/internal/control"
	"github.com/frudas24/deskpad/internal/gesture"
	"github.com/frudas24/deskpad/internal/hostlink"
	"github.com/frudas24/deskpad/internal/session"
	"github.com/frudas24/deskpad/internal/signaling"
	"github.com/frudas24/deskpad/internal/webrtc"
)

// run wires the application and blocks until shutdown.
func run(debug bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	webrtc.SetDebugLogging(debug)
	if debug {
		log.Printf("debug: enabled")
	}
	logStartup(cfg)

	tuning, err := gesture.LoadTuning(cfg.TuningPath)
	if err != nil {
		return err
	}

	sess := session.New(cfg.UIPassword)
	sess.SetAuthRequired(cfg.PasswordMode)
	sess.SetSensitivity(cfg.Sensitivity)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var local gesture.Sink
	if cfg.HostURL == "" || cfg.HostToken != "" {
		injector, err := newInjector()
		if err != nil {
			return err
		}
		applier, err := control.NewApplier(injector, control.ApplierOptions{
			WheelScale: cfg.WheelScale,
			ZoomScale:  cfg.ZoomScale,
			Debug:      debug,
		})
		if err != nil {
			return err
		}
		local = applier
	}

	sink := local
	if cfg.HostURL != "" {
		client, err := hostlink.NewClient(cfg.HostURL, cfg.HostToken, cfg.HostQueue)
		if err != nil {
			return err
		}
		go func() {
			if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("hostlink: stopped: %v", err)
			}
		}()
		sink = client
	}

	peers, err := webrtc.NewPeers()
	if err != nil {
		return err
	}

	appInstance, err := app.New(cfg, sess, sink, local, peers, signaling.SurfaceReplace, gesture.WithTuning(tuning))
	if err != nil {
		return err
	}
	defer func() {
		if err := appInstance.Stop(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux, "")
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// logFatal prints and exits for startup failures.
func logFatal(err error) {
	log.Printf("fatal: %v", err)
	os.Exit(1)
}

// logStartup prints startup checks and connection info.
func logStartup(cfg config.Config) {
	log.Printf("DeskPad starting")
	logEnvStatus(cfg)
	if fileExists(cfg.TuningPath) {
		log.Printf("gesture tuning: %s", cfg.TuningPath)
	} else {
		log.Printf("gesture tuning: defaults (%s not found)", cfg.TuningPath)
	}
	if cfg.HostURL != "" {
		log.Printf("forwarding commands to %s", cfg.HostURL)
	}
	if cfg.HostToken != "" {
		log.Printf("accepting forwarded commands on /ws/host")
	}
	logListenStatus(cfg.ListenAddr)
}

// logEnvStatus reports whether a .env file was found and required values are set.
func logEnvStatus(cfg config.Config) {
	envPath := filepath.Join(cfg.DataDir, ".env")
	if fileExists(envPath) {
		log.Printf("env check: ok (%s)", envPath)
	} else {
		log.Printf("env check: missing (%s)", envPath)
	}
	if cfg.PasswordMode {
		log.Printf("env UI_PASSWORD: set")
	} else {
		log.Printf("env PASSWORD_MODE: disabled (dev mode)")
	}
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(addr string) {
	log.Printf("listen addr: %s", addr)
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	log.Printf("local url: http://%s", net.JoinHostPort(host, port))
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
