package configsync

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// writeSnapshot persists a device configuration as both machine-readable
// JSON and a human-readable text summary. It returns the two file paths.
func writeSnapshot(deviceName string, cfg *DeviceConfig, outputDir string) (string, string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create output directory: %w", err)
	}

	jsonPath := filepath.Join(outputDir, deviceName+".json")
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write %s: %w", jsonPath, err)
	}

	txtPath := filepath.Join(outputDir, deviceName+".txt")
	if err := os.WriteFile(txtPath, []byte(renderText(deviceName, cfg)), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write %s: %w", txtPath, err)
	}

	return jsonPath, txtPath, nil
}

// renderText formats a configuration for humans skimming a diff.
func renderText(deviceName string, cfg *DeviceConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Configuration for %s\n", deviceName)
	fmt.Fprintf(&b, "# Generated: %s\n\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "Identity: %s\n\n", cfg.Identity)

	b.WriteString("## Interfaces\n")
	for _, iface := range cfg.Interfaces {
		status := "DOWN"
		if iface.Running {
			status = "UP"
		}
		fmt.Fprintf(&b, "  %s: %s [%s]\n", iface.Name, iface.Type, status)
	}

	b.WriteString("\n## VLANs\n")
	for _, vlan := range cfg.VLANs {
		fmt.Fprintf(&b, "  VLAN %s: %s on %s\n", vlan.VLANID, vlan.Name, vlan.Interface)
	}

	b.WriteString("\n## IP Addresses\n")
	for _, ip := range cfg.IPAddresses {
		fmt.Fprintf(&b, "  %s on %s\n", ip.Address, ip.Interface)
	}

	b.WriteString("\n## Bridge Ports\n")
	for _, port := range cfg.BridgePorts {
		fmt.Fprintf(&b, "  %s: bridge=%s pvid=%s\n", port.Interface, port.Bridge, port.PVID)
	}

	b.WriteString("\n## Firewall Rules\n")
	for _, rule := range cfg.FirewallFilter {
		comment := rule.Comment
		if comment == "" {
			comment = "no comment"
		}
		fmt.Fprintf(&b, "  %s: %s - %s\n", rule.Chain, rule.Action, comment)
	}

	return b.String()
}
