package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/picker/internal/discovery"
	"github.com/muurk/picker/internal/logging"
	"github.com/muurk/picker/internal/server"
	"github.com/muurk/picker/internal/version"
)

// Serve command flags
var (
	serveHost     string
	servePort     int
	advertise     bool
	advertiseName string
	tlsCertPath   string
	tlsKeyPath    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host picker sessions over WebSocket",
	Long: `Start a server that hosts one picker session per WebSocket connection.

Clients connect to /ws and send JSON requests (set_items, search, toggle,
select_all, view). Every response carries the visible items and the current
selection. /healthz reports the number of open sessions.

With --advertise the server is announced on the local network over mDNS so
'picker scan' can find it.`,
	Example: `  # Serve on the default port
  picker serve

  # Serve on all interfaces and announce via mDNS
  picker serve --host 0.0.0.0 --advertise

  # Serve wss:// with your own certificate
  picker serve --tls-cert cert.pem --tls-key key.pem`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Interface to listen on (empty = all interfaces)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: preferences server_port)")
	serveCmd.Flags().BoolVar(&advertise, "advertise", false, "Announce the server via mDNS")
	serveCmd.Flags().StringVar(&advertiseName, "name", "", "mDNS instance name (default: picker on <hostname>)")
	serveCmd.Flags().StringVar(&tlsCertPath, "tls-cert", "", "TLS certificate file (enables wss://)")
	serveCmd.Flags().StringVar(&tlsKeyPath, "tls-key", "", "TLS private key file")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if (tlsCertPath == "") != (tlsKeyPath == "") {
		return fmt.Errorf("both --tls-cert and --tls-key must be provided together")
	}

	port := servePort
	if port == 0 {
		port = preferences().ServerPort
	}

	srv, err := server.New(&server.Config{
		Host:     serveHost,
		Port:     port,
		CertPath: tlsCertPath,
		KeyPath:  tlsKeyPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	addr, err := srv.Listen()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheme := "ws"
	if tlsCertPath != "" {
		scheme = "wss"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Serving picker sessions on %s://%s/ws (ctrl+c to stop)\n", scheme, addr)

	if advertise {
		withdraw, err := advertiseServer(addr, scheme == "wss")
		if err != nil {
			// The server is still usable by address
			logging.Warn("mDNS advertisement failed", zap.Error(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		} else {
			defer withdraw()
		}
	}

	return srv.Serve(ctx)
}

func advertiseServer(addr net.Addr, useTLS bool) (func(), error) {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok {
		return nil, fmt.Errorf("cannot advertise non-TCP address %s", addr)
	}

	instance := advertiseName
	if instance == "" {
		host, err := os.Hostname()
		if err != nil {
			host = "unknown"
		}
		instance = "picker on " + host
	}

	return discovery.Advertise(instance, tcp.Port, map[string]string{
		"version": version.Version,
		"path":    "/ws",
		"tls":     strconv.FormatBool(useTLS),
	})
}
