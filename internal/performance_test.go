package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/atlasiq/atlasiq-gateway/internal/application/service"
	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/atlasiq/atlasiq-gateway/internal/domain/series"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/api"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/db"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/logger"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/session"
)

// rotatingBackend expires its access token every rotateEvery requests
type rotatingBackend struct {
	mu           sync.Mutex
	token        string
	generation   int
	served       int
	rotateEvery  int
	refreshCalls atomic.Int32
}

func (b *rotatingBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.URL.Path == "/api/v1/auth/refresh" {
		b.refreshCalls.Add(1)
		b.mu.Lock()
		b.generation++
		b.token = fmt.Sprintf("token-%d", b.generation)
		token := b.token
		b.mu.Unlock()
		json.NewEncoder(w).Encode(entity.RefreshResponse{AccessToken: token})
		return
	}

	b.mu.Lock()
	valid := r.Header.Get("Authorization") == "Bearer "+b.token
	if valid {
		b.served++
		if b.served%b.rotateEvery == 0 {
			// next request with this token is rejected
			b.token = "expired"
		}
	}
	b.mu.Unlock()

	if !valid {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Token expired"}`))
		return
	}

	countries := r.URL.Query()["countries"]
	points := make([]entity.MacroDataPoint, 0, len(countries)*9)
	for _, c := range countries {
		for year := 2015; year <= 2023; year++ {
			points = append(points, entity.MacroDataPoint{Country: c, Year: year, Value: rand.Float64() * 5})
		}
	}
	json.NewEncoder(w).Encode(entity.MacroResponse{Data: points})
}

func TestPerformance(t *testing.T) {
	// Skip in short mode or CI
	if testing.Short() {
		t.Skip("Skipping performance test in short mode")
	}

	backend := &rotatingBackend{token: "token-0", rotateEvery: 25}
	server := httptest.NewServer(backend)
	defer server.Close()

	// Badger-backed session so every rotation is persisted
	badgerDB, err := db.OpenBadger(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer badgerDB.Close()

	store := db.NewBadgerTokenRepository(badgerDB)
	if err := store.Save(context.Background(), entity.Credentials{AccessToken: "token-0", RefreshToken: "refresh"}); err != nil {
		t.Fatalf("Failed to seed credentials: %v", err)
	}

	log := logger.NewNopLogger()
	sess := session.New(store, log)
	if err := sess.Load(context.Background()); err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}

	client := api.NewClient(server.URL, sess, nil, log)
	macroService := service.NewMacroService(client, nil, log)

	numRequests := 200
	concurrency := 10
	countries := []string{"NLD", "BEL", "LUX", "DEU", "FRA", "AUT"}

	t.Run("Series Under Token Rotation", func(t *testing.T) {
		startTime := time.Now()

		var failures atomic.Int32
		wg := sync.WaitGroup{}
		wg.Add(concurrency)

		perWorker := numRequests / concurrency

		for i := 0; i < concurrency; i++ {
			go func(workerID int) {
				defer wg.Done()

				ctx := context.Background()
				for j := 0; j < perWorker; j++ {
					n := 1 + (workerID+j)%len(countries)
					q := entity.MacroQuery{Countries: countries[:n], StartYear: 2015, EndYear: 2023}

					result, err := macroService.Series(ctx, entity.IndicatorGDP, q)
					if err != nil {
						failures.Add(1)
						t.Logf("Error fetching series: %v", err)
						continue
					}
					if len(result.Entities) != n {
						failures.Add(1)
						t.Logf("Expected %d entities, got %d", n, len(result.Entities))
					}
				}
			}(i)
		}

		wg.Wait()
		duration := time.Since(startTime)

		if failures.Load() > 0 {
			t.Errorf("%d requests failed", failures.Load())
		}
		if !sess.IsAuthenticated() {
			t.Error("session was cleared during token rotation")
		}

		// at most one refresh per rotation
		maxRefreshes := int32(numRequests/backend.rotateEvery + 1)
		if got := backend.refreshCalls.Load(); got > maxRefreshes {
			t.Errorf("Expected at most %d refreshes, got %d", maxRefreshes, got)
		}

		throughput := float64(numRequests) / duration.Seconds()
		t.Logf("Series fetch: %d requests in %v (%.2f req/sec, %d refreshes)",
			numRequests, duration, throughput, backend.refreshCalls.Load())
	})

	t.Run("Reshape", func(t *testing.T) {
		observations := make([]entity.Observation, 0, 200000)
		for i := 0; i < cap(observations); i++ {
			observations = append(observations, entity.Observation{
				Entity: countries[i%len(countries)] + strings.Repeat("X", i%3),
				Year:   1900 + rand.Intn(124),
				Value:  rand.Float64(),
			})
		}

		startTime := time.Now()
		rows := series.Reshape(observations)
		duration := time.Since(startTime)

		for i := 1; i < len(rows); i++ {
			if rows[i-1].Year >= rows[i].Year {
				t.Fatalf("rows out of order at %d: %d >= %d", i, rows[i-1].Year, rows[i].Year)
			}
		}

		throughput := float64(len(observations)) / duration.Seconds()
		t.Logf("Reshape: %d observations into %d rows in %v (%.0f obs/sec)",
			len(observations), len(rows), duration, throughput)
	})
}
