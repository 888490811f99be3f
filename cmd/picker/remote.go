package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/picker/internal/config"
	"github.com/muurk/picker/internal/server"
	"github.com/muurk/picker/internal/ui"
)

// Remote command flags
var (
	remoteAddr      string
	remoteSearch    string
	remoteToggle    []string
	remoteSelectAll string
	remotePush      bool
	remoteTimeout   time.Duration
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Drive a session on a picker server",
	Long: `Connect to a picker server, apply the requested operations in order
(push catalog, search, toggle, select all) and print the resulting view.

--addr accepts a ws:// or wss:// URL, a host:port, or the instance name of a
server previously found by 'picker scan'.`,
	Example: `  # Push the local catalog and search it remotely
  picker remote --addr 127.0.0.1:7878 --push --search sh

  # Toggle two items on a server found by scan
  picker remote --addr "picker on desk" --push --toggle jq --toggle fzf

  # Select everything currently shown
  picker remote --addr ws://10.0.0.5:7878/ws --push --search b --select-all visible`,
	RunE: runRemote,
}

func init() {
	remoteCmd.Flags().StringVar(&remoteAddr, "addr", "", "Server URL, host:port or known instance name")
	remoteCmd.Flags().StringVar(&remoteSearch, "search", "", "Search text to apply")
	remoteCmd.Flags().StringSliceVar(&remoteToggle, "toggle", nil, "Toggle these items (repeatable)")
	remoteCmd.Flags().StringVar(&remoteSelectAll, "select-all", "", "Select all items (all, visible) or clear (none)")
	remoteCmd.Flags().BoolVar(&remotePush, "push", false, "Send the local catalog as the session's item list")
	remoteCmd.Flags().DurationVar(&remoteTimeout, "timeout", 10*time.Second, "Overall timeout")
	_ = remoteCmd.MarkFlagRequired("addr")

	rootCmd.AddCommand(remoteCmd)
}

func runRemote(cmd *cobra.Command, args []string) error {
	var known map[string]*config.KnownServer
	if reg, err := config.LoadRegistry(); err == nil {
		known = reg.Servers
	}
	target, err := resolveRemoteURL(remoteAddr, known)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), remoteTimeout)
	defer cancel()

	client, err := server.Dial(ctx, target)
	if err != nil {
		ui.NewPrinter(cmd.ErrOrStderr()).PrintError("Cannot reach picker server", err,
			"Check that 'picker serve' is running on "+target,
			"Use 'picker scan' to find servers on the local network",
		)
		return errors.New("connection failed")
	}
	defer client.Close()

	resp, err := applyRemoteOps(ctx, client)
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Remote session", "picker remote",
		ui.Param{Key: "Server", Value: target},
		ui.Param{Key: "Session", Value: client.SessionID()},
	)
	p.Newline()
	p.PrintRows(viewRows(resp), resp.Total)
	return nil
}

func applyRemoteOps(ctx context.Context, client *server.Client) (*server.Response, error) {
	if remotePush {
		cat, err := loadCatalog(preferences())
		if err != nil {
			return nil, err
		}
		items := make([]server.WireItem, 0, cat.Len())
		for _, e := range cat.Entries {
			items = append(items, server.WireItem{Name: e.Name, Description: e.Description, Tags: e.Tags})
		}
		if _, err := client.SetItems(ctx, items); err != nil {
			return nil, fmt.Errorf("set_items failed: %w", err)
		}
	}

	if remoteSearch != "" {
		if _, err := client.Search(ctx, remoteSearch); err != nil {
			return nil, fmt.Errorf("search failed: %w", err)
		}
	}

	for _, name := range remoteToggle {
		current := slices.Contains(client.Last().Selected, name)
		if _, err := client.Toggle(ctx, name, current); err != nil {
			return nil, fmt.Errorf("toggle %q failed: %w", name, err)
		}
	}

	switch remoteSelectAll {
	case "":
	case "all", "visible", "none":
		flag := remoteSelectAll != "none"
		if _, err := client.SelectAll(ctx, flag, remoteSelectAll == "visible"); err != nil {
			return nil, fmt.Errorf("select_all failed: %w", err)
		}
	default:
		return nil, fmt.Errorf("invalid --select-all value %q (want all, visible or none)", remoteSelectAll)
	}

	resp, err := client.View(ctx)
	if err != nil {
		return nil, fmt.Errorf("view failed: %w", err)
	}
	return resp, nil
}

// resolveRemoteURL turns --addr into a WebSocket URL.
func resolveRemoteURL(addr string, known map[string]*config.KnownServer) (string, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", fmt.Errorf("--addr is required")
	}

	if srv, ok := known[addr]; ok && srv.Address != "" {
		addr = srv.Address
	}

	if strings.Contains(addr, "://") {
		u, err := url.Parse(addr)
		if err != nil {
			return "", fmt.Errorf("invalid server URL %q: %w", addr, err)
		}
		if u.Scheme != "ws" && u.Scheme != "wss" {
			return "", fmt.Errorf("unsupported scheme %q (want ws or wss)", u.Scheme)
		}
		if u.Path == "" {
			u.Path = "/ws"
		}
		return u.String(), nil
	}

	return "ws://" + addr + "/ws", nil
}

func viewRows(resp *server.Response) []ui.Row {
	rows := make([]ui.Row, len(resp.Items))
	for i, it := range resp.Items {
		rows[i] = ui.Row{Name: it.Name, Detail: it.Description, Selected: it.Selected}
	}
	return rows
}
