package main

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/tomz197/rocket/internal/config"
	"github.com/tomz197/rocket/internal/logging"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	logger := logging.New(os.Stderr, "rocket-web")
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("ignoring .env", "err", err)
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_DISPLAY_PORT", "2222")

	handler, err := newHandler(sshHost, sshPort)
	if err != nil {
		logger.Fatal("landing page", "err", err)
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting web server", "addr", srv.Addr, "sshHost", sshHost)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", "err", err)
	}
}

var pageTemplate = template.Must(template.New("index").Parse(htmlPage))

// newHandler serves the landing page with the SSH command filled in.
func newHandler(sshHost, sshPort string) (http.Handler, error) {
	var page bytes.Buffer
	err := pageTemplate.Execute(&page, struct{ SSHHost, SSHPort string }{sshHost, sshPort})
	if err != nil {
		return nil, fmt.Errorf("render landing page: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page.Bytes())
	})
	return mux, nil
}
