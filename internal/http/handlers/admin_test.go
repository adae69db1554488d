package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/nba-player-analytics/internal/metrics"
	"github.com/preston-bernstein/nba-player-analytics/internal/testutil"
)

func adminRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/admin/roster/reload", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAdminReloadRequiresAuth(t *testing.T) {
	svc := testutil.NewServiceWithPlayers(testutil.SamplePool(2))
	h := NewAdminHandler(svc, testutil.StaticProvider{Records: testutil.SamplePool(4)}, "secret", nil, nil)

	for _, token := range []string{"", "wrong"} {
		rr := testutil.ServeRequest(http.HandlerFunc(h.ReloadRoster), adminRequest(token))
		testutil.AssertError(t, rr, http.StatusUnauthorized)
	}
	if len(svc.Players()) != 2 {
		t.Fatalf("unauthorized reload must not touch the pool")
	}
}

func TestAdminDisabledWithoutToken(t *testing.T) {
	h := NewAdminHandler(testutil.NewServiceWithPlayers(nil), testutil.StaticProvider{}, "", nil, nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.ReloadRoster), adminRequest(""))
	testutil.AssertError(t, rr, http.StatusUnauthorized)
}

func TestAdminReloadSwapsPool(t *testing.T) {
	svc := testutil.NewServiceWithPlayers(testutil.SamplePool(2))
	rec := metrics.NewRecorder()
	h := NewAdminHandler(svc, testutil.StaticProvider{Records: testutil.SamplePool(4)}, "secret", nil, rec)

	rr := testutil.ServeRequest(http.HandlerFunc(h.ReloadRoster), adminRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]any
	testutil.DecodeJSON(t, rr, &resp)
	if resp["source"] != "static" || resp["players"].(float64) != 4 {
		t.Fatalf("unexpected reload body %v", resp)
	}
	if len(svc.Players()) != 4 {
		t.Fatalf("expected pool swapped, got %d players", len(svc.Players()))
	}
	if rec.RosterSize() != 4 {
		t.Fatalf("expected roster load recorded, got %d", rec.RosterSize())
	}
}

func TestAdminReloadFailures(t *testing.T) {
	svc := testutil.NewServiceWithPlayers(testutil.SamplePool(2))

	h := NewAdminHandler(svc, testutil.ErrProvider{Err: errors.New("boom")}, "secret", nil, nil)
	testutil.AssertError(t, testutil.ServeRequest(http.HandlerFunc(h.ReloadRoster), adminRequest("secret")), http.StatusBadGateway)

	h = NewAdminHandler(svc, testutil.StaticProvider{}, "secret", nil, nil)
	testutil.AssertError(t, testutil.ServeRequest(http.HandlerFunc(h.ReloadRoster), adminRequest("secret")), http.StatusUnprocessableEntity)

	h = NewAdminHandler(svc, nil, "secret", nil, nil)
	testutil.AssertError(t, testutil.ServeRequest(http.HandlerFunc(h.ReloadRoster), adminRequest("secret")), http.StatusServiceUnavailable)

	if len(svc.Players()) != 2 {
		t.Fatalf("failed reloads must keep the previous pool")
	}
}
