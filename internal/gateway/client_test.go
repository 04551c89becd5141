package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sarthakvk/tradedeck/models"
)

func TestPendingCardsDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/trade-cards/pending" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "symbol": "RELIANCE", "trade_type": "BUY", "entry_price": 2500.0,
			 "stop_loss": 2450.0, "take_profit": 2600.0, "quantity": 10, "confidence": 0.82,
			 "liquidity_check": true, "regime_check": false, "risk_warnings": ["thin book"]},
			{"id": 2, "symbol": "TCS", "trade_type": "SELL", "entry_price": 3900.0,
			 "stop_loss": 3950.0, "take_profit": 3800.0, "quantity": 5, "confidence": 0.6}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "default_user")
	cards, err := client.PendingCards(context.Background())
	if err != nil {
		t.Fatalf("PendingCards: %v", err)
	}

	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].Symbol != "RELIANCE" || cards[0].TradeType != models.TradeTypeBuy {
		t.Errorf("unexpected first card: %+v", cards[0])
	}
	if !cards[0].LiquidityCheck || cards[0].RegimeCheck {
		t.Errorf("guardrail flags not decoded: %+v", cards[0])
	}
	if len(cards[0].RiskWarnings) != 1 || cards[0].RiskWarnings[0] != "thin book" {
		t.Errorf("risk warnings not decoded: %v", cards[0].RiskWarnings)
	}
}

func TestServerDetailSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail": "Trade card status is approved, cannot approve"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "default_user")
	err := client.ApproveCard(context.Background(), 7, "")
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
	if err.Error() != "Trade card status is approved, cannot approve" {
		t.Errorf("expected server detail message, got %q", err.Error())
	}
	if StatusCode(err) != http.StatusConflict {
		t.Errorf("expected status 409, got %d", StatusCode(err))
	}
}

func TestUnparseableBodyFallsBackToStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "default_user")
	_, err := client.Positions(context.Background())
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
	if err.Error() != "HTTP 502" {
		t.Errorf("expected generic status message, got %q", err.Error())
	}
}

func TestTransportErrorIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "default_user")
	_, err := client.Orders(context.Background())
	if err == nil {
		t.Fatal("expected transport error against closed server")
	}
	if !IsTransport(err) {
		t.Errorf("expected transport classification, got %v", err)
	}
	if StatusCode(err) != 0 {
		t.Errorf("transport errors carry no status, got %d", StatusCode(err))
	}
}

func TestApproveBodyShape(t *testing.T) {
	var got models.TradeCardApproval
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/trade-cards/42/approve" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"id": 1, "status": "placed"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "operator1")
	if err := client.ApproveCard(context.Background(), 42, "looks good"); err != nil {
		t.Fatalf("ApproveCard: %v", err)
	}

	if got.TradeCardID != 42 {
		t.Errorf("expected trade_card_id 42, got %d", got.TradeCardID)
	}
	if got.UserID != "operator1" {
		t.Errorf("expected user_id operator1, got %q", got.UserID)
	}
	if got.Notes != "looks good" {
		t.Errorf("expected notes, got %q", got.Notes)
	}
}

func TestRejectBodyShape(t *testing.T) {
	var got models.TradeCardRejection
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/trade-cards/9/reject" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "default_user")
	if err := client.RejectCard(context.Background(), 9, "stale catalyst"); err != nil {
		t.Fatalf("RejectCard: %v", err)
	}

	if got.TradeCardID != 9 || got.Reason != "stale catalyst" || got.UserID != "default_user" {
		t.Errorf("unexpected rejection body: %+v", got)
	}
}

func TestOptionChainQueryEncoding(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"symbol": "M&M", "data": {"strikes": []}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "default_user")

	// Symbol needs URL encoding; expiry present.
	if _, err := client.OptionChain(context.Background(), "M&M", "2026-09-30"); err != nil {
		t.Fatalf("OptionChain: %v", err)
	}
	if got := gotQuery["symbol"]; len(got) != 1 || got[0] != "M&M" {
		t.Errorf("symbol not round-tripped through encoding: %v", gotQuery)
	}
	if got := gotQuery["expiry"]; len(got) != 1 || got[0] != "2026-09-30" {
		t.Errorf("expiry missing: %v", gotQuery)
	}

	// Absent expiry is omitted entirely, not sent empty.
	if _, err := client.OptionChain(context.Background(), "NIFTY", ""); err != nil {
		t.Fatalf("OptionChain: %v", err)
	}
	if _, present := gotQuery["expiry"]; present {
		t.Errorf("empty expiry should be omitted, got %v", gotQuery)
	}
}

func TestReportQueryParamsOptional(t *testing.T) {
	var lastURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastURL = r.URL.String()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "default_user")

	if _, err := client.EODReport(context.Background(), ""); err != nil {
		t.Fatalf("EODReport: %v", err)
	}
	if lastURL != "/api/reports/eod" {
		t.Errorf("expected bare path, got %s", lastURL)
	}

	if _, err := client.EODReport(context.Background(), "2026-08-28"); err != nil {
		t.Fatalf("EODReport: %v", err)
	}
	if lastURL != "/api/reports/eod?date=2026-08-28" {
		t.Errorf("expected date param, got %s", lastURL)
	}

	if _, err := client.MonthlyReport(context.Background(), "2026-08"); err != nil {
		t.Fatalf("MonthlyReport: %v", err)
	}
	if lastURL != "/api/reports/monthly?month=2026-08" {
		t.Errorf("expected month param, got %s", lastURL)
	}
}

func TestSignalRunRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/signals/run" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"candidates_found": 12, "trade_cards_created": 3}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "default_user")
	result, err := client.RunSignals(context.Background(), models.SignalRunRequest{ForceRefresh: true})
	if err != nil {
		t.Fatalf("RunSignals: %v", err)
	}
	if result.CandidatesFound != 12 || result.TradeCardsCreated != 3 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestLoginURL(t *testing.T) {
	client := NewClient("http://localhost:8000", "default_user")
	if got := client.LoginURL(); got != "http://localhost:8000/api/auth/upstox/login" {
		t.Errorf("unexpected login URL %s", got)
	}
}
