package audd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SliskoGG/Tune-Spotter/pkg/tunespotter"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New("test-token", WithBaseURL(server.URL))
}

func TestIdentifyMatch(t *testing.T) {
	var gotToken, gotReturn, gotFilename string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parsing multipart form: %v", err)
		}
		gotToken = r.FormValue("api_token")
		gotReturn = r.FormValue("return")
		if _, header, err := r.FormFile("file"); err != nil {
			t.Errorf("reading file part: %v", err)
		} else {
			gotFilename = header.Filename
		}
		w.Write([]byte(`{
			"status": "success",
			"result": {
				"title": "Bohemian Rhapsody",
				"artist": "Queen",
				"album": "A Night at the Opera",
				"release_date": "1975-10-31"
			}
		}`))
	})

	id, err := client.Identify(context.Background(), []byte("audio bytes"), "clip.mp3")
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}

	if !id.Matched {
		t.Fatal("expected a match")
	}
	if id.Title != "Bohemian Rhapsody" || id.Artist != "Queen" {
		t.Errorf("identification = %q/%q, want Bohemian Rhapsody/Queen", id.Title, id.Artist)
	}
	if id.Album != "A Night at the Opera" || id.ReleaseDate != "1975-10-31" {
		t.Errorf("album/date = %q/%q", id.Album, id.ReleaseDate)
	}
	if gotToken != "test-token" {
		t.Errorf("api_token = %q, want test-token", gotToken)
	}
	if gotReturn != returnFields {
		t.Errorf("return = %q, want %q", gotReturn, returnFields)
	}
	if gotFilename != "clip.mp3" {
		t.Errorf("filename = %q, want clip.mp3", gotFilename)
	}
}

func TestIdentifyNoMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "success", "result": null}`))
	})

	id, err := client.Identify(context.Background(), []byte("audio"), "clip.mp3")
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}
	if id.Matched {
		t.Error("null result must report no match, not an error")
	}
}

func TestIdentifyFillsUnknownFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "success", "result": {"title": "Song"}}`))
	})

	id, err := client.Identify(context.Background(), []byte("audio"), "clip.mp3")
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}
	if id.Artist != "Unknown" || id.Album != "Unknown" || id.ReleaseDate != "Unknown" {
		t.Errorf("missing fields = %q/%q/%q, want Unknown fallbacks", id.Artist, id.Album, id.ReleaseDate)
	}
}

func TestIdentifyAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error", "error": {"error_code": 901, "error_message": "Recognition failed"}}`))
	})

	if _, err := client.Identify(context.Background(), []byte("audio"), "clip.mp3"); err == nil {
		t.Error("expected an error for an error status reply")
	}
}

func TestIdentifyHTTPFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if _, err := client.Identify(context.Background(), []byte("audio"), "clip.mp3"); err == nil {
		t.Error("expected an error for a non-200 response")
	}
}

func TestIdentifyMissingToken(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := New("", WithBaseURL(server.URL))
	if client.Configured() {
		t.Error("Configured() = true for an empty token")
	}

	_, err := client.Identify(context.Background(), []byte("audio"), "clip.mp3")
	if !errors.Is(err, tunespotter.ErrMissingCredential) {
		t.Errorf("got %v, want ErrMissingCredential", err)
	}
	if called {
		t.Error("Identify must not hit the API without a token")
	}
}
