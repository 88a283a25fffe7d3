// mockgateway is a local stand-in for Paystack's initialize/verify endpoints
// so the service can be exercised without real credentials. References it
// issues are kept in memory; -outcome controls what verify reports.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

type initializeRequest struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	CallbackURL string `json:"callback_url"`
}

type transaction struct {
	Email    string
	Amount   int64
	Currency string
}

func main() {
	addr := flag.String("addr", ":9090", "Listen address")
	outcome := flag.String("outcome", "success", "Verify outcome (success, failed, abandoned)")
	flag.Parse()

	var mu sync.Mutex
	txs := map[string]transaction{}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /transaction/initialize", func(w http.ResponseWriter, r *http.Request) {
		var in initializeRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Email == "" || in.Amount <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"status":  false,
				"message": "Invalid request",
			})
			return
		}

		ref := "mock_" + randomHex(8)
		mu.Lock()
		txs[ref] = transaction{Email: in.Email, Amount: in.Amount, Currency: in.Currency}
		mu.Unlock()

		writeJSON(w, http.StatusOK, map[string]any{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]any{
				"authorization_url": "http://localhost" + *addr + "/pay/" + ref,
				"access_code":       randomHex(8),
				"reference":         ref,
			},
		})
	})

	mux.HandleFunc("GET /transaction/verify/", func(w http.ResponseWriter, r *http.Request) {
		ref := strings.TrimPrefix(r.URL.Path, "/transaction/verify/")

		mu.Lock()
		tx, ok := txs[ref]
		mu.Unlock()

		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"status":  false,
				"message": "Transaction reference not found",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]any{
				"status":   *outcome,
				"channel":  "card",
				"currency": tx.Currency,
				"amount":   tx.Amount,
				"paid_at":  time.Now().UTC().Format(time.RFC3339),
			},
		})
	})

	fmt.Printf("mock gateway listening on %s (verify outcome: %s)\n", *addr, *outcome)
	log.Fatal(http.ListenAndServe(*addr, mux))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func randomHex(nBytes int) string {
	b := make([]byte, nBytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
