package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type probe struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Expect   int    `json:"expect"`
	Critical bool   `json:"critical"`
}

type result struct {
	Probe    probe
	Status   int
	Match    bool
	Error    error
	Duration time.Duration
}

// defaultProbes covers the endpoints that must answer on every deploy:
// liveness, readiness, metrics and the unauthenticated entry points.
var defaultProbes = []probe{
	{Method: http.MethodGet, Path: "/health", Expect: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/ready", Expect: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/metrics", Expect: http.StatusOK, Critical: false},
	{Method: http.MethodGet, Path: "/api/v1/payroll-config/insurance-brackets", Expect: http.StatusUnauthorized, Critical: true},
	{Method: http.MethodGet, Path: "/api/v1/company-settings", Expect: http.StatusUnauthorized, Critical: true},
}

func main() {
	var (
		base       string
		probesPath string
		timeout    time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&probesPath, "probes", "", "Path to JSON probes file (defaults to built-in set)")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	probes := defaultProbes
	if probesPath != "" {
		loaded, err := loadProbes(probesPath)
		if err != nil {
			log.Fatalf("failed to load probes: %v", err)
		}
		probes = loaded
	}

	client := &http.Client{Timeout: timeout}
	var breaking int
	results := make([]result, 0, len(probes))
	for _, p := range probes {
		res := runProbe(client, base, p)
		if (res.Error != nil || !res.Match) && p.Critical {
			breaking++
		}
		results = append(results, res)
	}

	printReport(results)

	fmt.Printf("Breaking failures: %d\n", breaking)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadProbes(path string) ([]probe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg struct {
		Probes []probe `json:"probes"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Probes) == 0 {
		return nil, fmt.Errorf("no probes defined in %s", path)
	}
	return cfg.Probes, nil
}

func runProbe(client *http.Client, base string, p probe) result {
	res := result{Probe: p}
	if client == nil {
		res.Error = errors.New("nil client")
		return res
	}

	method := strings.ToUpper(strings.TrimSpace(p.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := p.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		res.Error = err
		return res
	}
	start := time.Now()
	resp, err := client.Do(req)
	res.Duration = time.Since(start)
	if err != nil {
		res.Error = err
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode
	expect := p.Expect
	if expect == 0 {
		expect = http.StatusOK
	}
	res.Match = res.Status == expect
	return res
}

func printReport(results []result) {
	fmt.Println("Smoke Check Report")
	fmt.Println("==================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.Match {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Probe.Method, res.Probe.Path)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
			continue
		}
		fmt.Printf("  Status: %d (%s) | Critical: %t\n", res.Status, res.Duration, res.Probe.Critical)
	}
}
