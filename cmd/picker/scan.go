package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/picker/internal/config"
	"github.com/muurk/picker/internal/discovery"
	"github.com/muurk/picker/internal/logging"
)

var scanTimeout int

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for picker servers on the network",
	Long: `Scan for picker servers using mDNS/DNS-SD discovery.

Servers started with 'picker serve --advertise' answer with their address
and metadata. Found servers are remembered in the config file so that
'picker remote --addr <instance>' can reach them by name.`,
	Example: `  # Scan using the preferred timeout (5 seconds by default)
  picker scan

  # Longer scan for busy networks
  picker scan --timeout 15`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 0, "Scan timeout in seconds (default: preferences scan_timeout)")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	timeout := scanTimeout
	if timeout <= 0 {
		timeout = preferences().ScanTimeout
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scanning for picker servers (timeout: %ds)...\n\n", timeout)

	servers, err := discovery.ScanForServers(cmd.Context(), time.Duration(timeout)*time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(servers) == 0 {
		fmt.Fprintln(out, "No servers found.")
		fmt.Fprintln(out, "\nTroubleshooting:")
		fmt.Fprintln(out, "  - Start the server with 'picker serve --advertise'")
		fmt.Fprintln(out, "  - Check that both machines are on the same network")
		fmt.Fprintln(out, "  - Make sure UDP port 5353 (mDNS) is not blocked")
		fmt.Fprintln(out, "  - Try increasing --timeout for slower networks")
		return nil
	}

	fmt.Fprintf(out, "Found %d server(s):\n\n", len(servers))
	for i, srv := range servers {
		fmt.Fprintf(out, "%d. %s\n", i+1, srv.Instance)
		fmt.Fprintf(out, "   Host:    %s\n", srv.Hostname)
		fmt.Fprintf(out, "   URL:     %s\n", srv.URL())
		if v := srv.GetMetadata("version"); v != "" {
			fmt.Fprintf(out, "   Version: %s\n", v)
		}
		fmt.Fprintln(out)
	}

	rememberServers(servers)

	fmt.Fprintln(out, "Use 'picker remote --addr \"<name>\"' to connect to a server")
	return nil
}

// rememberServers records the scan results; failure only costs the shortcut.
func rememberServers(servers []*discovery.Server) {
	reg, err := config.LoadRegistry()
	if err != nil {
		logging.Warn("Not recording scan results", zap.Error(err))
		return
	}

	for _, srv := range servers {
		reg.RecordServer(srv.Instance, srv.URL())
	}
	if err := reg.Save(); err != nil {
		logging.Warn("Failed to save scan results", zap.Error(err))
	}
}
