package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 20
	testDuration = 10 * time.Second
	numStudents  = 50
)

var departments = []string{"Computer Science", "Information Technology", "Electronics", "Mechanical", "Civil"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// postingIDs collects ids created in the seed phase for later applications.
var postingIDs struct {
	sync.RWMutex
	ids []string
}

func main() {
	fmt.Println("=== Elevate Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Students: %d\n\n", numWorkers, testDuration, numStudents)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Seeding postings and profiles ---")
	runPhase(testDuration/2, func(rng *rand.Rand) result {
		if rng.Float64() < 0.5 {
			return submitPosting(rng)
		}
		return upsertProfile(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (40% writes, 60% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.15:
			return apply(rng)
		case r < 0.30:
			return addLogbook(rng)
		case r < 0.40:
			return recordProgress(rng)
		case r < 0.65:
			return get("/postings")
		case r < 0.80:
			return get("/applications?student=" + student(rng))
		default:
			return get("/credits?user=" + student(rng))
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (5% writes, 95% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.05:
			return addLogbook(rng)
		case r < 0.40:
			return get("/postings?verified=false")
		case r < 0.60:
			return get("/readiness?user=" + student(rng))
		case r < 0.80:
			return get("/eligibility?user=" + student(rng))
		default:
			return get("/modules")
		}
	})
}

func student(rng *rand.Rand) string {
	return fmt.Sprintf("student_%d", rng.Intn(numStudents))
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps, totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-26s %8s %6s %10s %10s %10s\n", "Endpoint", "Reqs", "Errs", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 76))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool { return s.latencies[i] < s.latencies[j] })
		fmt.Printf("  %-26s %8d %6d %10s %10s %10s\n", ep, s.count, s.errors,
			fmtDur(percentile(s.latencies, 0.50)), fmtDur(percentile(s.latencies, 0.95)), fmtDur(percentile(s.latencies, 0.99)))
	}

	fmt.Println("  " + strings.Repeat("-", 76))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(max(totalOps, 1))*100, float64(totalOps)/duration.Seconds())
}

// send issues one request; label groups results by route. Any 2xx or an
// expected conflict counts as success.
func send(method, path string, body any, decode any) result {
	label := method + " " + strings.SplitN(path, "?", 2)[0]

	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return result{label, 0, true}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{label, lat, true}
	}
	defer resp.Body.Close()
	if decode != nil && resp.StatusCode < 300 {
		_ = json.NewDecoder(resp.Body).Decode(decode)
	}
	io.Copy(io.Discard, resp.Body)
	ok := resp.StatusCode < 300 || resp.StatusCode == http.StatusConflict
	return result{label, lat, !ok}
}

func get(path string) result {
	return send(http.MethodGet, path, nil, nil)
}

func submitPosting(rng *rand.Rand) result {
	var created struct {
		ID string `json:"id"`
	}
	r := send(http.MethodPost, "/postings", map[string]any{
		"title":    fmt.Sprintf("Intern #%d", rng.Intn(1000)),
		"company":  fmt.Sprintf("Company %d", rng.Intn(20)),
		"location": "Remote",
		"skills":   []string{"go", "sql"},
	}, &created)
	if created.ID != "" {
		postingIDs.Lock()
		postingIDs.ids = append(postingIDs.ids, created.ID)
		postingIDs.Unlock()
	}
	return r
}

func upsertProfile(rng *rand.Rand) result {
	return send(http.MethodPut, "/profiles", map[string]any{
		"userName":       student(rng),
		"department":     departments[rng.Intn(len(departments))],
		"projects":       []string{"capstone"},
		"certifications": []string{},
		"internships":    rng.Intn(2),
		"academicDetails": map[string]any{
			"cgpa": 5 + rng.Float64()*5,
		},
	}, nil)
}

func apply(rng *rand.Rand) result {
	postingIDs.RLock()
	n := len(postingIDs.ids)
	var id string
	if n > 0 {
		id = postingIDs.ids[rng.Intn(n)]
	}
	postingIDs.RUnlock()
	if id == "" {
		return get("/postings")
	}
	return send(http.MethodPost, "/applications", map[string]any{
		"studentName":  student(rng),
		"internshipId": id,
	}, nil)
}

func addLogbook(rng *rand.Rand) result {
	return send(http.MethodPost, "/logbook", map[string]any{
		"studentName": student(rng),
		"date":        time.Now().Format("2006-01-02"),
		"hours":       float64(rng.Intn(8) + 1),
		"summary":     "load test entry",
	}, nil)
}

func recordProgress(rng *rand.Rand) result {
	modules := []string{"mod_resume", "mod_interview", "mod_communication", "mod_git", "mod_agile", "mod_ethics"}
	return send(http.MethodPost, "/progress", map[string]any{
		"userName": student(rng),
		"moduleId": modules[rng.Intn(len(modules))],
		"progress": rng.Intn(101),
	}, nil)
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
