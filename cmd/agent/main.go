package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"telemetry-hub/app/utils"

	"github.com/gorilla/websocket"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"
)

const agentVersion = "0.1.0"

type tokenRequest struct {
	RegistrationKey string `json:"registration_key"`
	Hostname        string `json:"hostname"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type frame struct {
	Type     string                 `json:"type"`
	Token    string                 `json:"token,omitempty"`
	Hostname string                 `json:"hostname,omitempty"`
	OS       string                 `json:"os,omitempty"`
	Arch     string                 `json:"arch,omitempty"`
	Version  string                 `json:"version,omitempty"`
	AgentID  string                 `json:"agentId,omitempty"`
	Success  *bool                  `json:"success,omitempty"`
	Message  string                 `json:"message,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

func main() {
	serverURL := flag.String("server-url", "http://localhost:9100", "Telemetry hub URL")
	registrationKey := flag.String("registration-key", "", "Agent registration key")
	interval := flag.Duration("report-interval", 5*time.Second, "Snapshot reporting interval")
	flag.Parse()

	if *registrationKey == "" {
		fmt.Fprintln(os.Stderr, "Error: --registration-key is required")
		os.Exit(1)
	}

	hostname, _ := os.Hostname()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		<-sigChan
		close(done)
	}()

	policy := utils.DefaultRetryPolicy()
	attempt := 0
	for {
		select {
		case <-done:
			log.Println("agent shutting down")
			return
		default:
		}

		if err := runSession(*serverURL, *registrationKey, hostname, *interval, done); err != nil {
			delay := policy.CalculateDelay(attempt)
			log.Printf("session ended: %v, reconnecting in %s", err, delay)
			attempt++
			select {
			case <-done:
				return
			case <-time.After(delay):
			}
			continue
		}
		attempt = 0
	}
}

// runSession obtains a token, holds one websocket session and reports
// snapshots until the connection drops or the agent is stopped.
func runSession(serverURL, registrationKey, hostname string, interval time.Duration, done <-chan struct{}) error {
	token, err := fetchToken(serverURL, registrationKey, hostname)
	if err != nil {
		return fmt.Errorf("token exchange failed: %w", err)
	}

	wsURL := strings.Replace(serverURL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}
	defer conn.Close()

	auth := frame{
		Type:     "auth",
		Token:    token,
		Hostname: hostname,
		OS:       runtime.GOOS,
		Arch:     runtime.GOARCH,
		Version:  agentVersion,
	}
	if err := conn.WriteJSON(auth); err != nil {
		return fmt.Errorf("auth write failed: %w", err)
	}

	var result frame
	if err := conn.ReadJSON(&result); err != nil {
		return fmt.Errorf("auth read failed: %w", err)
	}
	if result.Type != "authResult" || result.Success == nil || !*result.Success {
		return fmt.Errorf("authentication rejected: %s", result.Message)
	}
	log.Printf("connected as %s", result.AgentID)

	// Drain server frames (pings, commands) in the background
	readErr := make(chan error, 1)
	go func() {
		for {
			var f frame
			if err := conn.ReadJSON(&f); err != nil {
				readErr <- err
				return
			}
			if f.Type == "command" {
				log.Printf("command received: %s", f.Message)
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return nil
		case err := <-readErr:
			return err
		case <-ticker.C:
			snapshot := collectSnapshot(hostname)
			if err := conn.WriteJSON(frame{Type: "metrics", Data: snapshot}); err != nil {
				return fmt.Errorf("report failed: %w", err)
			}
		}
	}
}

func fetchToken(serverURL, registrationKey, hostname string) (string, error) {
	body, err := json.Marshal(tokenRequest{RegistrationKey: registrationKey, Hostname: hostname})
	if err != nil {
		return "", err
	}

	resp, err := http.Post(serverURL+"/api/auth/token", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", err
	}
	return tr.Token, nil
}

// collectSnapshot gathers one reporting cycle in the hub's wire format.
// Collectors that fail simply leave their section out; the hub tolerates
// partial snapshots.
func collectSnapshot(hostname string) map[string]interface{} {
	snapshot := map[string]interface{}{
		"timestamp": time.Now().Unix(),
		"hostname":  hostname,
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		counts, _ := cpu.Counts(true)
		perCore, _ := cpu.Percent(0, true)
		snapshot["cpu"] = map[string]interface{}{
			"usagePercent": percents[0],
			"coreCount":    counts,
			"perCoreUsage": perCore,
		}
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		section := map[string]interface{}{
			"total":     vm.Total,
			"used":      vm.Used,
			"available": vm.Available,
		}
		if swap, err := mem.SwapMemory(); err == nil {
			section["swapTotal"] = swap.Total
			section["swapUsed"] = swap.Used
		}
		snapshot["memory"] = section
	}

	if partitions, err := disk.Partitions(false); err == nil {
		disks := make([]interface{}, 0, len(partitions))
		for _, p := range partitions {
			usage, err := disk.Usage(p.Mountpoint)
			if err != nil {
				continue
			}
			disks = append(disks, map[string]interface{}{
				"mountPoint": p.Mountpoint,
				"device":     p.Device,
				"fsType":     p.Fstype,
				"total":      usage.Total,
				"used":       usage.Used,
				"available":  usage.Free,
			})
		}
		if len(disks) > 0 {
			snapshot["disks"] = disks
		}
	}

	if counters, err := psnet.IOCounters(true); err == nil {
		networks := make([]interface{}, 0, len(counters))
		for _, c := range counters {
			networks = append(networks, map[string]interface{}{
				"interface": c.Name,
				// io counters are cumulative; the hub treats them as
				// opaque gauges
				"rxBytesPerSec": c.BytesRecv,
				"txBytesPerSec": c.BytesSent,
			})
		}
		if len(networks) > 0 {
			snapshot["networks"] = networks
		}
	}

	if avg, err := load.Avg(); err == nil {
		snapshot["loadAverage"] = []interface{}{avg.Load1, avg.Load5, avg.Load15}
	}

	if info, err := host.Info(); err == nil {
		snapshot["systemInfo"] = map[string]interface{}{
			"osName":        info.Platform,
			"osVersion":     info.PlatformVersion,
			"kernelVersion": info.KernelVersion,
			"hostname":      info.Hostname,
			"bootTime":      info.BootTime,
			"uptimeSeconds": info.Uptime,
		}
	}

	return snapshot
}
