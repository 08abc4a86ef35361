package tb7

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tb7stream/store"
)

func searchListing(names ...string) string {
	page := "<html><body><div class='results'>"
	for i, name := range names {
		page += fmt.Sprintf("<a href='/mojekonto/pobierz/%d'>%s</a>", i+1, name)
	}
	return page + "</div></body></html>"
}

func TestSearchYearFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, searchListing("Movie.Title.2020.1080p"))
	}))
	defer srv.Close()
	client := NewClient(srv.URL, srv.Client(), store.NewMemory())

	results, err := client.Search(context.Background(), "sid=1", []string{"Movie Title"}, "2020")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Movie.Title.2020.1080p" {
		t.Fatalf("results = %+v, want the 2020 row retained", results)
	}
	if results[0].Token != "/mojekonto/pobierz/1" {
		t.Fatalf("token = %q", results[0].Token)
	}

	results, err = client.Search(context.Background(), "sid=1", []string{"Movie Title"}, "1999")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("results = %+v, want the row discarded for year 1999", results)
	}
}

func TestSearchStopsAtFirstMatchingVariant(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		queries = append(queries, q)
		if q == "B" {
			fmt.Fprint(w, searchListing("B.2019.720p"))
			return
		}
		fmt.Fprint(w, searchListing())
	}))
	defer srv.Close()
	client := NewClient(srv.URL, srv.Client(), store.NewMemory())

	results, err := client.Search(context.Background(), "sid=1", []string{"A", "B", "C"}, "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].Name != "B.2019.720p" {
		t.Fatalf("results = %+v", results)
	}
	if len(queries) != 2 || queries[0] != "A" || queries[1] != "B" {
		t.Fatalf("queries = %v, want [A B] and no request for C", queries)
	}
}

func TestSearchNoMatchIsEmptySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, searchListing("Unrelated.File.2001"))
	}))
	defer srv.Close()
	client := NewClient(srv.URL, srv.Client(), store.NewMemory())

	results, err := client.Search(context.Background(), "sid=1", []string{"Something Else"}, "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("results = %+v, want empty", results)
	}
}

func TestSearchMultipleRowsOfMatchingVariant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, searchListing(
			"Kler.2018.1080p.mkv",
			"Kler.2018.720p.mkv",
			"Other.Movie.2018.mkv",
		))
	}))
	defer srv.Close()
	client := NewClient(srv.URL, srv.Client(), store.NewMemory())

	results, err := client.Search(context.Background(), "sid=1", []string{"Kler"}, "2018")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v, want both Kler rows in document order", results)
	}
	if results[0].Name != "Kler.2018.1080p.mkv" || results[1].Name != "Kler.2018.720p.mkv" {
		t.Fatalf("unexpected order: %+v", results)
	}
}

func TestResolveLinks(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/mojekonto/pobierz/42":
			fmt.Fprint(w, `<html><form action="/mojekonto/sciagaj" method="post">
				<input type="submit" name="wgraj" value="Wgraj linki"></form></html>`)
		case "/mojekonto/sciagaj":
			if r.Method != http.MethodPost {
				t.Fatalf("sciagaj must be POSTed")
			}
			r.ParseForm()
			if r.PostForm.Get("wgraj") == "" {
				t.Fatalf("missing wgraj field: %v", r.PostForm)
			}
			fmt.Fprint(w, `<html><textarea>
https://tb7.pl/sciagaj/aaa111/Movie.Title.2020.mkv
x

https://tb7.pl/sciagaj/bbb222/Movie.Title.2020.srt
</textarea></html>`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()
	client := NewClient(srv.URL, srv.Client(), store.NewMemory())

	links, err := client.ResolveLinks(context.Background(), "sid=1", "/mojekonto/pobierz/42")
	if err != nil {
		t.Fatalf("resolve links: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("links = %v, want 2 (short lines filtered)", links)
	}
	if links[0] != "https://tb7.pl/sciagaj/aaa111/Movie.Title.2020.mkv" {
		t.Fatalf("links[0] = %q", links[0])
	}
	if len(paths) != 2 {
		t.Fatalf("request sequence = %v", paths)
	}
}

func TestResolveLinksAnchorFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/mojekonto/pobierz/1":
			fmt.Fprint(w, `<html><form action=""></form></html>`)
		case "/mojekonto/sciagaj":
			fmt.Fprint(w, `<html><a href="/sciagaj/ccc333/File.2020.mkv">download</a></html>`)
		}
	}))
	defer srv.Close()
	client := NewClient(srv.URL, srv.Client(), store.NewMemory())

	links, err := client.ResolveLinks(context.Background(), "sid=1", "/mojekonto/pobierz/1")
	if err != nil {
		t.Fatalf("resolve links: %v", err)
	}
	if len(links) != 1 || links[0] != srv.URL+"/sciagaj/ccc333/File.2020.mkv" {
		t.Fatalf("links = %v", links)
	}
}

func TestNameContains(t *testing.T) {
	tests := []struct {
		name, query string
		want        bool
	}{
		{"Movie.Title.2020.1080p", "Movie Title", true},
		{"MOVIE-TITLE-2020", "movie title", true},
		{"Movie.Title.2020", "Other Film", false},
		{"Zażółć.Gęślą.2019", "Zażółć Gęślą", true},
		{"tt0133093", "tt0133093", true},
	}
	for _, tt := range tests {
		if got := nameContains(tt.name, tt.query); got != tt.want {
			t.Fatalf("nameContains(%q, %q) = %v, want %v", tt.name, tt.query, got, tt.want)
		}
	}
}
