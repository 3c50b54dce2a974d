package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/weatherpanel/internal/discovery"
	"github.com/muurk/weatherpanel/internal/ui"
)

var (
	scanTimeout int
	scanName    string
)

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", int(discovery.DefaultScanTimeout/time.Second), "Scan timeout in seconds")
	scanCmd.Flags().StringVar(&scanName, "name", "", "Wait for the panel announced under this instance name")
	rootCmd.AddCommand(scanCmd)
}

// scanCmd discovers remote panels on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for remote panels on the network",
	Long: `Scan for weather panels started with --remote using mDNS/DNS-SD.

Each panel is listed with its websocket URL, which a viewer can connect to
for live frames and button presses.`,
	Example: `  # Scan for 5 seconds (default)
  weatherpanel scan

  # Longer scan for slow networks
  weatherpanel scan --timeout 15

  # Wait for one panel by name
  weatherpanel scan --name weatherpanel --timeout 30`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := initLogging(cfg, false); err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Scan", "weatherpanel scan",
		ui.Param{Key: "Service", Value: discovery.ServiceType},
		ui.Param{Key: "Timeout", Value: fmt.Sprintf("%ds", scanTimeout)},
	)

	if scanName != "" {
		return waitForPanel(cmd, p)
	}

	panels, err := discovery.ScanForPanels(cmd.Context(), time.Duration(scanTimeout)*time.Second)
	if err != nil {
		p.PrintFailure("Scan failed", err,
			"Check that multicast is allowed on this network",
			"Try increasing --timeout",
		)
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(panels) == 0 {
		p.PrintWarning("No panels found",
			ui.Param{Key: "Hint", Value: "start one with 'weatherpanel run --remote'"},
		)
		return nil
	}

	result := ui.NewSuccessResult(fmt.Sprintf("Found %d panel(s)", len(panels))).SetWidth(p.Width())
	for _, panel := range panels {
		result.AddDetail(panel.Instance, panel.WebSocketURL())
	}
	p.Println(result.Render())
	return nil
}

func waitForPanel(cmd *cobra.Command, p *ui.Printer) error {
	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(scanTimeout) * time.Second

	panel, err := scanner.WaitForPanel(cmd.Context(), scanName)
	if err != nil {
		p.PrintFailure("Panel not found", err,
			"Check the instance name (remote.name in the panel's config)",
			"Try increasing --timeout",
		)
		return fmt.Errorf("scan failed: %w", err)
	}

	p.PrintSuccess("Panel found",
		ui.Param{Key: "Name", Value: panel.Instance},
		ui.Param{Key: "Address", Value: panel.BaseURL()},
		ui.Param{Key: "WebSocket", Value: panel.WebSocketURL()},
	)
	return nil
}
