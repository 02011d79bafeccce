// Command gen-records fabricates plausible responsibility records and
// posts them to a running instance, for demos and manual testing.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

// Default configuration constants.
const (
	defaultNumRecords = 50
	defaultTimeout    = 10 * time.Second
	defaultSeed       = 42
)

// recordPayload mirrors the POST /records request shape.
type recordPayload struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	ScheduledDate  string `json:"scheduledDate"`
	Recurrence     string `json:"recurrence"`
	CustomWeekdays []int  `json:"customWeekdays,omitempty"`
	AssigneeRef    string `json:"assigneeRef"`
	Action         string `json:"action"`
	Progress       string `json:"progress"`
	UnitKey        string `json:"unitKey"`
	ResponsibleRaw string `json:"responsibleRaw"`
	ActualRaw      string `json:"actualRaw"`
}

var (
	titles      = []string{"Daily standup", "Maintenance sync", "Vendor coordination", "Production review", "Safety walkthrough", "Stock reconciliation"}
	recurrences = []string{"does_not_repeat", "weekdays", "daily", "weekly", "monthly", "annually"}
	actions     = []string{"planned", "done", "delegated", "deferred", "discussed"}
	unitKeys    = []string{"completion_pct", "qty", "hours", "amount_lkr", "time", "orders"}
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9090", "Base URL of the service")
		count   = flag.Int("count", defaultNumRecords, "Number of records to generate and submit")
		seed    = flag.Int64("seed", defaultSeed, "Random seed, fixed by default for reproducible runs")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed)) //nolint:gosec // demo data, not crypto
	client := &http.Client{Timeout: *timeout}
	ctx := context.Background()

	created, duplicates := 0, 0
	for i := 0; i < *count; i++ {
		payload := generateRecord(rng, i)
		status, err := submit(ctx, client, *baseURL, payload)
		switch {
		case err != nil:
			os.Stderr.WriteString("submit failed: " + err.Error() + "\n")
			return
		case status == http.StatusOK:
			duplicates++
		case status == http.StatusCreated:
			created++
		default:
			fmt.Fprintf(os.Stderr, "unexpected status %d for record %s\n", status, payload.ID)
			return
		}
	}
	fmt.Printf("submitted %d records (%d created, %d duplicates)\n", *count, created, duplicates)
}

func generateRecord(rng *rand.Rand, i int) recordPayload {
	scheduled := time.Now().UTC().AddDate(0, 0, rng.Intn(28))
	responsible, actual := rawValues(rng, unitKeys[i%len(unitKeys)])
	return recordPayload{
		ID:             uuid.NewString(),
		Title:          fmt.Sprintf("%s #%d", titles[rng.Intn(len(titles))], i+1),
		ScheduledDate:  scheduled.Format("2006-01-02"),
		Recurrence:     recurrences[rng.Intn(len(recurrences))],
		AssigneeRef:    uuid.NewString(),
		Action:         actions[rng.Intn(len(actions))],
		Progress:       fmt.Sprintf("%d", rng.Intn(101)),
		UnitKey:        unitKeys[i%len(unitKeys)],
		ResponsibleRaw: responsible,
		ActualRaw:      actual,
	}
}

// rawValues returns a target/actual pair shaped for the unit kind.
func rawValues(rng *rand.Rand, unitKey string) (string, string) {
	switch unitKey {
	case "time":
		return fmt.Sprintf("%02d:%02d", rng.Intn(24), rng.Intn(60)),
			fmt.Sprintf("%02d:%02d", rng.Intn(24), rng.Intn(60))
	case "completion_pct":
		return "100", fmt.Sprintf("%d", rng.Intn(120))
	default:
		return fmt.Sprintf("%d", 10+rng.Intn(90)), fmt.Sprintf("%d", rng.Intn(120))
	}
}

func submit(ctx context.Context, client *http.Client, baseURL string, payload recordPayload) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal record: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/records", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post record: %w", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
