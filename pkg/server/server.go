package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/buckcalc/buckcalc/pkg/config"
)

// Server exposes the calculator over HTTP. Parameters missing from a request
// are taken from conf.
type Server struct {
	conf config.Config
}

func New(conf config.Config) *Server {
	return &Server{conf: conf}
}

// Routes returns the HTTP handler of the server.
func (s *Server) Routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/defaults", s.getDefaults)
	router.POST("/calculate", s.calculate)
	router.GET("/version", getVersion)

	return router
}

// listen opens a unix socket if unixSocketPath is set, a TCP listener on
// listenAddr otherwise.
func listen(listenAddr, unixSocketPath string) (net.Listener, error) {
	if unixSocketPath == "" {
		l, err := net.Listen("tcp", listenAddr)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to listen on %s", listenAddr)
		}
		return l, nil
	}

	// Remove a socket left behind by a previous run.
	if err := os.Remove(unixSocketPath); err != nil && !os.IsNotExist(err) {
		return nil, pkgerrors.Wrapf(err, "failed to remove stale socket %s", unixSocketPath)
	}
	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to listen on %s", unixSocketPath)
	}
	return l, nil
}

// reloadOnSignal reloads the config for every value received on hupc until
// done is closed.
func (s *Server) reloadOnSignal(hupc <-chan os.Signal, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-hupc:
			err := s.conf.Load()
			if err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			logrus.WithFields(s.conf.LogrusFields()).Infof("config reloaded")
		}
	}
}

// Run serves until SIGINT or SIGTERM. SIGHUP reloads the config.
func (s *Server) Run(listenAddr, unixSocketPath string) error {
	logrus.WithFields(s.conf.LogrusFields()).Infof("config loaded")

	// Receive SIGHUP to reload config
	hupc := make(chan os.Signal, 1)
	signal.Notify(hupc, syscall.SIGHUP)
	defer signal.Stop(hupc)
	done := make(chan struct{})
	defer close(done)
	go s.reloadOnSignal(hupc, done)

	l, err := listen(listenAddr, unixSocketPath)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)

	select {
	case sig := <-sigc:
		logrus.Infof("caught signal \"%s\": shutting down.", sig)
	case err := <-errc:
		return pkgerrors.Wrap(err, "http server failed")
	}

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}

	if unixSocketPath != "" {
		if err := os.Remove(unixSocketPath); err != nil && !os.IsNotExist(err) {
			logrus.Warnf("failed to remove socket %s: %v", unixSocketPath, err)
		}
	}

	logrus.Info("exiting")
	return nil
}
