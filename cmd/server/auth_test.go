package main

import (
	"net/http"
	"testing"
)

func TestLoginRejectsWrongPassword(t *testing.T) {
	_, h := newTestServer(t)

	rr := do(t, h, http.MethodPost, "/api/login", `{"email":"`+testAdminEmail+`","password":"wrong"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatalf("rejected login must not set a cookie")
	}

	rr = do(t, h, http.MethodPost, "/api/login", `{"email":"nobody@example.com","password":"`+testAdminPassword+`"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", rr.Code)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	_, h := newTestServer(t)

	for _, path := range []string{"/api/calculations", "/api/calculations/abc", "/api/wage-rates"} {
		rr := do(t, h, http.MethodGet, path, "")
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without session, got %d", path, rr.Code)
		}
	}

	forged := &http.Cookie{Name: sessionCookieName, Value: "YWRtaW4.deadbeef"}
	if rr := do(t, h, http.MethodGet, "/api/wage-rates", "", forged); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with forged session, got %d", rr.Code)
	}

	if rr := do(t, h, http.MethodGet, "/api/wage-rates", "", login(t, h)); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with session, got %d", rr.Code)
	}
}

func TestSessionValueRoundTrip(t *testing.T) {
	a := newAuthService(nil, "secret")

	value := a.createSessionValue(testAdminEmail)
	email, ok := a.verifySessionValue(value)
	if !ok || email != testAdminEmail {
		t.Fatalf("expected %q to verify, got %q ok=%v", value, email, ok)
	}

	other := newAuthService(nil, "other-secret")
	if _, ok := other.verifySessionValue(value); ok {
		t.Fatalf("session signed with another secret must not verify")
	}
	for _, bad := range []string{"", "no-dot", value + "00", "." + value} {
		if _, ok := a.verifySessionValue(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	_, h := newTestServer(t)

	rr := do(t, h, http.MethodPost, "/api/logout", "", login(t, h))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != sessionCookieName || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected expired session cookie, got %+v", cookies)
	}
}
