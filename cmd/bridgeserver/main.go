// Command bridgeserver runs the starship-bridge simulation session
// server: one TCP listener for the binary wire protocol, one HTTP/WS
// listener for the JSON protocol, both driving a single authoritative
// simulation.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/starbridge/bridgeserver/internal/obs"
	"github.com/starbridge/bridgeserver/internal/server"
)

type options struct {
	TCPPort       int    `long:"tcp-port" description:"TCP listen port for the binary protocol" default:"2010"`
	WSPort        int    `long:"ws-port" description:"HTTP listen port for the WebSocket protocol" default:"2011"`
	TickRate      int    `long:"tick-hz" description:"simulation tick rate in Hz" default:"20"`
	MaxPacketSize int    `long:"max-packet-bytes" description:"maximum framed TCP packet size in bytes" default:"1048576"`
	LogLevel      string `long:"log-level" description:"zerolog level (debug, info, warn, error)" default:"info"`
	LogJSON       bool   `long:"log-json" description:"emit ndjson logs instead of console-formatted output"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	log := obs.NewLogger(opts.LogLevel, opts.LogJSON)

	srv := server.NewServer(server.Config{
		TickRate:      opts.TickRate,
		MaxPacketSize: opts.MaxPacketSize,
	}, log)

	tcpAddr := fmt.Sprintf(":%d", opts.TCPPort)
	wsAddr := fmt.Sprintf(":%d", opts.WSPort)

	stop := make(chan struct{})
	go srv.Run(stop)

	go func() {
		if err := srv.ListenTCP(tcpAddr, opts.MaxPacketSize, stop); err != nil {
			log.Error().Err(err).Msg("tcp listener failed")
			os.Exit(1)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.HandleWS)
	httpSrv := &http.Server{
		Addr:         wsAddr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", wsAddr).Msg("ws listener started")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("ws listener failed")
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	close(stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("ws listener shutdown error")
	}

	log.Info().Msg("server stopped")
	os.Exit(0)
}
