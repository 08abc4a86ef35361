package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tb7stream/services/identity"
	"tb7stream/store"
)

func TestConfigureRoundTrip(t *testing.T) {
	ids := identity.NewService(store.NewMemory())
	handler := Configure(ids)

	// Save credentials in IP mode.
	body := "login=foo&password=bar&mode=ip"
	post := httptest.NewRequest(http.MethodPost, "/configure", strings.NewReader(body))
	post.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	post.AddCookie(&http.Cookie{Name: identity.TokenCookie, Value: "uid1"})
	w := httptest.NewRecorder()
	handler(w, post)
	if w.Code != http.StatusOK {
		t.Fatalf("POST status = %d", w.Code)
	}

	// Read the form back.
	get := httptest.NewRequest(http.MethodGet, "/configure", nil)
	get.AddCookie(&http.Cookie{Name: identity.TokenCookie, Value: "uid1"})
	w = httptest.NewRecorder()
	handler(w, get)

	page := w.Body.String()
	if !strings.Contains(page, `value="foo"`) {
		t.Fatalf("login not rendered back:\n%s", page)
	}
	if !strings.Contains(page, `<option value="ip" selected>`) {
		t.Fatalf("ip mode not selected:\n%s", page)
	}
	if strings.Contains(page, `<option value="cookie" selected>`) {
		t.Fatal("cookie mode must not be selected")
	}
}

func TestConfigureEscapesCredentials(t *testing.T) {
	ids := identity.NewService(store.NewMemory())
	handler := Configure(ids)

	body := "login=" + "%3Cb%3E%26%22evil%27" + "&password=p&mode=cookie" // <b>&"evil'
	post := httptest.NewRequest(http.MethodPost, "/configure", strings.NewReader(body))
	post.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	post.AddCookie(&http.Cookie{Name: identity.TokenCookie, Value: "uid2"})
	handler(httptest.NewRecorder(), post)

	get := httptest.NewRequest(http.MethodGet, "/configure", nil)
	get.AddCookie(&http.Cookie{Name: identity.TokenCookie, Value: "uid2"})
	w := httptest.NewRecorder()
	handler(w, get)

	page := w.Body.String()
	if strings.Contains(page, "<b>") {
		t.Fatalf("raw markup leaked into the form:\n%s", page)
	}
	for _, want := range []string{"&lt;b&gt;", "&amp;", "&#34;"} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected escaped sequence %q in:\n%s", want, page)
		}
	}
}

func TestConfigureDefaultsToEmptyForm(t *testing.T) {
	ids := identity.NewService(store.NewMemory())
	handler := Configure(ids)

	get := httptest.NewRequest(http.MethodGet, "/configure", nil)
	w := httptest.NewRecorder()
	handler(w, get)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	page := w.Body.String()
	if !strings.Contains(page, `<option value="cookie" selected>`) {
		t.Fatalf("cookie mode should be the default:\n%s", page)
	}
}
