//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "pizzeria-api"
	ConsumerName = "pizzeria-storefront-web"

	// WhatsAppProviderName is the external gateway the API consumes.
	WhatsAppProviderName = "whatsapp-gateway"

	StateCatalogSeeded = "default menu seeded"
	StateStoreOpen     = "store is open"
	StateOrderMissing  = "no order with id missing-order"
	StateGatewayReady  = "gateway accepts messages"
)

const (
	MissingOrderID  = "missing-order"
	ExampleItemID   = "sq-calabresa"
	ExamplePhone    = "5511987654321"
	ExampleOrderRef = "3f2c9a71-5d1e-4c7b-9a0e-2b8f6c4d1e77"
	GatewayToken    = "pact-token"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront web consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleItemPayload mirrors one entry of the seeded menu.
func ExampleItemPayload() map[string]any {
	return map[string]any{
		"id":       ExampleItemID,
		"name":     "Calabresa",
		"category": "square",
		"sizePrices": map[string]string{
			"small":  "28.00",
			"medium": "35.00",
			"large":  "45.00",
			"family": "62.00",
		},
		"ingredients": []string{"molho de tomate", "mussarela", "calabresa", "cebola"},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
