package main

import (
	"bytes"
	"flag"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"
)

// Scenario is one kind of request against the duration API
type Scenario struct {
	Name   string
	Method string
	Path   string
	Body   string
}

// Result holds the outcome of a single request
type Result struct {
	Scenario     string
	Success      bool
	ResponseTime time.Duration
	Err          error
}

// Stats aggregates results across workers
type Stats struct {
	mu            sync.Mutex
	Total         int
	Succeeded     int
	Failed        int
	Elapsed       time.Duration
	ResponseTimes []time.Duration
	Errors        map[string]int
	PerScenario   map[string]int
}

func (s *Stats) add(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Success {
		s.Succeeded++
	} else {
		s.Failed++
		msg := "unknown"
		if r.Err != nil {
			msg = r.Err.Error()
		}
		s.Errors[msg]++
	}
	s.PerScenario[r.Scenario]++
	s.ResponseTimes = append(s.ResponseTimes, r.ResponseTime)
}

func (s *Stats) completed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Succeeded + s.Failed
}

func scenarios(durations []string) []Scenario {
	var out []Scenario
	for _, d := range durations {
		ref := url.PathEscape(d)
		out = append(out,
			Scenario{Name: d + " span", Method: http.MethodGet, Path: "/durations/" + ref + "/span?t=2018-12-07+13:12"},
			Scenario{Name: d + " walk", Method: http.MethodGet, Path: "/durations/" + ref + "/walk?t=2018-12-07&limit=25"},
			Scenario{Name: d + " step", Method: http.MethodGet, Path: "/durations/" + ref + "/step?t=2018-12-07+13:12&count=5"},
			Scenario{
				Name:   d + " count",
				Method: http.MethodPost,
				Path:   "/durations/" + ref + "/count",
				Body:   `{"interval":{"start":"2018-01-01","end":"2019-01-01","endOpen":true}}`,
			},
		)
	}
	return out
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent workers")
	total := flag.Int("n", 200, "Total number of requests")
	durationsFlag := flag.String("d", "1h,1d,20w,1M,daily", "Comma-separated durations or preset names")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	delayMs := flag.Int("delay", 0, "Delay between requests of a worker in milliseconds")
	flag.Parse()

	list := scenarios(strings.Split(*durationsFlag, ","))

	fmt.Printf("Load testing %s with %d scenarios\n", *baseURL, len(list))
	fmt.Printf("Concurrency: %d, requests: %d, delay: %d ms\n", *concurrency, *total, *delayMs)

	stats := &Stats{
		Total:         *total,
		ResponseTimes: make([]time.Duration, 0, *total),
		Errors:        make(map[string]int),
		PerScenario:   make(map[string]int),
	}

	jobs := make(chan struct{}, *total)
	for range *total {
		jobs <- struct{}{}
	}
	close(jobs)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			fmt.Printf("Progress: %d/%d\n", stats.completed(), *total)
		}
	}()

	start := time.Now()
	var wg sync.WaitGroup
	for range *concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(*baseURL, time.Duration(*delayMs)*time.Millisecond, list, jobs, stats)
		}()
	}
	wg.Wait()
	stats.Elapsed = time.Since(start)

	printResults(stats)
}

func worker(baseURL string, delay time.Duration, list []Scenario, jobs <-chan struct{}, stats *Stats) {
	client := &http.Client{Timeout: 10 * time.Second}

	for range jobs {
		if delay > 0 {
			time.Sleep(delay)
		}
		stats.add(send(client, baseURL, list[rand.IntN(len(list))]))
	}
}

func send(client *http.Client, baseURL string, s Scenario) Result {
	req, err := http.NewRequest(s.Method, baseURL+s.Path, bytes.NewReader([]byte(s.Body)))
	if err != nil {
		return Result{Scenario: s.Name, Err: err}
	}
	if s.Body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := client.Do(req)
	result := Result{Scenario: s.Name, ResponseTime: time.Since(started)}
	if err != nil {
		result.Err = err
		return result
	}
	resp.Body.Close()

	result.Success = resp.StatusCode >= 200 && resp.StatusCode < 300
	if !result.Success {
		result.Err = fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}
	return result
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[min(len(sorted)*p/100, len(sorted)-1)]
}

func printResults(stats *Stats) {
	sorted := slices.Clone(stats.ResponseTimes)
	slices.Sort(sorted)

	var sum time.Duration
	for _, d := range sorted {
		sum += d
	}
	var avg time.Duration
	if len(sorted) > 0 {
		avg = sum / time.Duration(len(sorted))
	}

	fmt.Println("\n================= RESULTS =================")
	fmt.Printf("Requests:   %d\n", stats.Total)
	fmt.Printf("Succeeded:  %d (%.1f%%)\n", stats.Succeeded, float64(stats.Succeeded)/float64(stats.Total)*100)
	fmt.Printf("Failed:     %d\n", stats.Failed)
	fmt.Printf("Elapsed:    %.2fs\n", stats.Elapsed.Seconds())
	fmt.Printf("Throughput: %.2f req/s\n", float64(stats.Total)/stats.Elapsed.Seconds())

	fmt.Println("\n----------------- LATENCY -----------------")
	fmt.Printf("Average: %v\n", avg)
	if len(sorted) > 0 {
		fmt.Printf("Min:     %v\n", sorted[0])
		fmt.Printf("Max:     %v\n", sorted[len(sorted)-1])
	}
	fmt.Printf("P50:     %v\n", percentile(sorted, 50))
	fmt.Printf("P90:     %v\n", percentile(sorted, 90))
	fmt.Printf("P99:     %v\n", percentile(sorted, 99))

	fmt.Println("\n----------------- SCENARIOS -----------------")
	names := make([]string, 0, len(stats.PerScenario))
	for name := range stats.PerScenario {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Printf("%-16s %d\n", name, stats.PerScenario[name])
	}

	if stats.Failed > 0 {
		fmt.Println("\n----------------- ERRORS -----------------")
		for msg, count := range stats.Errors {
			fmt.Printf("%-40s %d\n", msg, count)
		}
	}
}
