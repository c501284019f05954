package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

//go:embed ktcdata
var ktcdata embed.FS

type FakeKTCServer struct {
	s *httptest.Server
}

func NewFakeKTCServer() *FakeKTCServer {
	r := chi.NewRouter()
	r.Get("/dynasty-rankings", rankingsPageHandler)
	r.Get("/dynasty-rankings/players/{slug}", playerPageHandler)

	return &FakeKTCServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeKTCServer) Close() {
	f.s.Close()
}

func (f *FakeKTCServer) URL() string {
	return f.s.URL
}

func rankingsPageHandler(w http.ResponseWriter, r *http.Request) {
	serveKTCFile(w, "rankings.html")
}

func playerPageHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "justin-jefferson" {
		serveKTCFile(w, "player_justin_jefferson.html")
	} else {
		w.WriteHeader(http.StatusNotFound)
	}
}

func serveKTCFile(w http.ResponseWriter, name string) {
	b, err := ktcdata.ReadFile(fmt.Sprintf("ktcdata/%s", name))
	if err != nil {
		log.Printf("error reading ktcdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
