package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMayanClient_FetchQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("fromChain") != "ethereum" || q.Get("toChain") != "solana" {
			t.Errorf("chain params = %q → %q", q.Get("fromChain"), q.Get("toChain"))
		}
		if q.Get("amountIn") != "1" {
			t.Errorf("amountIn = %q, want 1", q.Get("amountIn"))
		}
		if q.Get("slippageBps") != "auto" {
			t.Errorf("slippageBps = %q, want auto", q.Get("slippageBps"))
		}
		if q.Get("wormhole") != "true" || q.Get("shuttle") != "false" {
			t.Errorf("route flags = wormhole=%q shuttle=%q", q.Get("wormhole"), q.Get("shuttle"))
		}
		if q.Get("sdkVersion") == "" || q.Get("solanaProgram") == "" {
			t.Error("missing fixed protocol params")
		}
		fmt.Fprint(w, `{
			"amountOut": 142.5,
			"effectivePrice": 142.5,
			"priceImpact": 0.12,
			"gasFee": 0.002,
			"totalFeeInUsd": 3.4,
			"routeType": "SWIFT",
			"type": "SWIFT",
			"executionTimeSeconds": 12,
			"routes": [{"leg": 1}, {"leg": 2}],
			"warnings": [],
			"fromTokenMetadata": {"symbol": "ETH", "decimals": 18, "name": "Ether"},
			"toTokenMetadata": {"symbol": "SOL", "decimals": 9, "name": "Solana", "logoURI": "https://example.com/sol.png"}
		}`)
	}))
	defer server.Close()

	client := NewMayanClient(server.Client(), server.URL)
	rec, err := client.FetchQuote(context.Background(), QuoteParams{
		FromChain: "ethereum",
		ToChain:   "solana",
		FromToken: "0x0000000000000000000000000000000000000000",
		ToToken:   "So11111111111111111111111111111111111111112",
	})
	if err != nil {
		t.Fatalf("FetchQuote() error = %v", err)
	}

	if v, _ := rec.Float("amount_out"); v != 142.5 {
		t.Errorf("amount_out = %v, want 142.5", v)
	}
	if v, _ := rec.Float("amount_in"); v != 1.0 {
		t.Errorf("amount_in default = %v, want 1.0", v)
	}
	if rec.String("route_type") != "SWIFT" || rec.String("quote_type") != "SWIFT" {
		t.Errorf("route_type/quote_type = %q/%q", rec.String("route_type"), rec.String("quote_type"))
	}
	if v, _ := rec.Float("execution_time_seconds"); v != 12 {
		t.Errorf("execution_time_seconds = %v", v)
	}

	if v, _ := rec.Float("routes_count"); v != 2 {
		t.Errorf("routes_count = %v, want 2", v)
	}
	if rec.String("routes_json") != `[{"leg":1},{"leg":2}]` {
		t.Errorf("routes_json = %q", rec.String("routes_json"))
	}
	if v, _ := rec.Float("warnings_count"); v != 0 {
		t.Errorf("warnings_count = %v, want 0", v)
	}
	if _, ok := rec["route_steps_json"]; ok {
		t.Error("absent list field should attach nothing")
	}

	if rec.String("from_token_symbol") != "ETH" {
		t.Errorf("from_token_symbol = %q", rec.String("from_token_symbol"))
	}
	if v, _ := rec.Float("to_token_decimals"); v != 9 {
		t.Errorf("to_token_decimals = %v", v)
	}
	if rec.String("to_token_logo_uri") != "https://example.com/sol.png" {
		t.Errorf("to_token_logo_uri = %q", rec.String("to_token_logo_uri"))
	}
	if rec.String("from_token_logo_uri") != "" {
		t.Errorf("missing logoURI should default empty, got %q", rec.String("from_token_logo_uri"))
	}

	if _, ok := rec.Time("timestamp"); !ok {
		t.Error("quote record missing timestamp")
	}
}

func TestMayanClient_FetchQuote_MissingFieldsDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := NewMayanClient(server.Client(), server.URL)
	rec, err := client.FetchQuote(context.Background(), QuoteParams{
		FromChain: "ethereum", ToChain: "solana",
		FromToken: "0x0", ToToken: "So1",
		AmountIn: 100,
	})
	if err != nil {
		t.Fatalf("FetchQuote() error = %v", err)
	}

	if v, _ := rec.Float("amount_out"); v != 0.0 {
		t.Errorf("amount_out default = %v, want 0.0", v)
	}
	if rec.String("route_type") != "" {
		t.Errorf("route_type default = %q, want empty", rec.String("route_type"))
	}
	if v, _ := rec.Float("amount_in"); v != 100.0 {
		t.Errorf("amount_in = %v, want 100.0", v)
	}
	if _, ok := rec["from_token_symbol"]; ok {
		t.Error("absent token metadata should attach nothing")
	}
}

func TestMayanClient_FetchBatch_ErrorIsolation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fromChain") == "base" {
			http.Error(w, `{"message":"unsupported route"}`, http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `{"amountOut": 1.0}`)
	}))
	defer server.Close()

	targets := []QuoteParams{
		{FromChain: "ethereum", ToChain: "solana", FromToken: "a", ToToken: "b"},
		{FromChain: "base", ToChain: "solana", FromToken: "c", ToToken: "d"},
	}

	client := NewMayanClient(server.Client(), server.URL)
	records := client.FetchBatch(context.Background(), targets)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].IsError() {
		t.Error("first quote should have succeeded")
	}
	errRec := records[1]
	if !errRec.IsError() {
		t.Fatal("second quote should have produced an error record")
	}
	if errRec.String("error_type") != "http_error" {
		t.Errorf("error_type = %q", errRec.String("error_type"))
	}
	if errRec.String("error") != `HTTP 400: {"message":"unsupported route"}` {
		t.Errorf("error = %q", errRec.String("error"))
	}
	// Identity columns survive on the error row.
	if errRec.String("from_chain") != "base" || errRec.String("to_token") != "d" {
		t.Errorf("error identity = %q / %q", errRec.String("from_chain"), errRec.String("to_token"))
	}
	if v, _ := errRec.Float("amount_in"); v != 1.0 {
		t.Errorf("error identity amount_in = %v, want defaulted 1.0", v)
	}
}
