//go:build integration
// +build integration

package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

var (
	catalogURL = getenv("E2E_CATALOG_URL", "http://localhost:5000")
	viewerURL  = getenv("E2E_VIEWER_URL", "http://localhost:3000")
)

type product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestSystem_E2E(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, catalogURL+"/readyz")
	waitReady(t, ctx, viewerURL+"/readyz")

	start := time.Now()
	var products []product
	getJSON(t, catalogURL+"/api/products", &products)
	if time.Since(start) < 500*time.Millisecond {
		t.Logf("catalog answered in %s; CATALOG_DELAY_MS is probably lowered", time.Since(start))
	}

	want := []product{
		{ID: 1, Name: "Laptop", Price: 1200},
		{ID: 2, Name: "Mouse", Price: 25},
		{ID: 3, Name: "Keyboard", Price: 45},
	}
	if len(products) != len(want) {
		t.Fatalf("products=%d want=%d", len(products), len(want))
	}
	for i := range want {
		if products[i] != want[i] {
			t.Fatalf("product[%d]=%+v want=%+v", i, products[i], want[i])
		}
	}

	page := waitPage(t, ctx, viewerURL+"/")
	if n := strings.Count(page, `class="product-card"`); n != len(want) {
		t.Fatalf("cards=%d want=%d", n, len(want))
	}

	if os.Getenv("E2E_RESTART_CATALOG") == "1" {
		restartContainer(t, ctx, "catalog")
		waitReady(t, ctx, catalogURL+"/readyz")
		getJSON(t, catalogURL+"/api/products", &products)
		if len(products) != len(want) {
			t.Fatalf("after restart products=%d want=%d", len(products), len(want))
		}
	}
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

// waitPage polls the viewer until its single fetch has settled.
func waitPage(t *testing.T, ctx context.Context, url string) string {
	t.Helper()
	client := &http.Client{Timeout: 5 * time.Second}

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("get page: %v", err)
		}
		raw, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		body := string(raw)
		if strings.Contains(body, "Error:") {
			t.Fatalf("viewer failed: %s", body)
		}
		if !strings.Contains(body, "Loading products") {
			return body
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("viewer still loading: %s", url)
	return ""
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status=%d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
