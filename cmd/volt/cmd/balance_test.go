package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/Jabsama/VOLTAGEGPU-CLI/pkg/api"
)

func TestBalanceCommand(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/balance" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(api.BalanceResponse{Balance: 41.5, Currency: "USD"})
	}))
	defer server.Close()

	viper.Set("base_url", server.URL)
	viper.Set("api_key", "test-key")

	output := execute(t, "balance")
	if !strings.Contains(output, "Balance: 41.50 USD") {
		t.Errorf("expected balance line, got: %s", output)
	}
}

func TestBalanceCommand_DefaultsCurrency(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.BalanceResponse{Balance: 3})
	}))
	defer server.Close()

	viper.Set("base_url", server.URL)
	viper.Set("api_key", "test-key")

	output := execute(t, "balance")
	if !strings.Contains(output, "3.00 USD") {
		t.Errorf("expected USD fallback, got: %s", output)
	}
}
