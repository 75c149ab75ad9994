package tui

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/avashist/hilite/internal/store"
)

func TestGenerateJobPersistsAroundDraft(t *testing.T) {
	var mu sync.Mutex
	var methods []string
	var patchBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		methods = append(methods, r.Method)
		if r.Method == http.MethodPatch {
			patchBody = string(body)
		}
		mu.Unlock()
		if r.Method == http.MethodPost {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `[{"id":"entry-1","content":"doc"}]`)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	st := store.New(srv.URL, "anon", srv.Client())
	client := &scriptedLLM{post: "# Draft"}
	msg := generatePostCmd(3, client, st, log.New(io.Discard), "doc", "excerpt")()

	res, ok := msg.(postResultMsg)
	if !ok {
		t.Fatalf("unexpected message %T", msg)
	}
	if res.seq != 3 || res.err != nil || res.post != "# Draft" {
		t.Fatalf("unexpected result %+v", res)
	}
	if client.calls != 1 {
		t.Fatalf("expected one generation call, got %d", client.calls)
	}
	if client.lastContent != "doc" || client.lastExcerpt != "excerpt" {
		t.Fatalf("generation saw %q / %q", client.lastContent, client.lastExcerpt)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(methods) != 2 || methods[0] != http.MethodPost || methods[1] != http.MethodPatch {
		t.Fatalf("expected create then update, got %v", methods)
	}
	if !strings.Contains(patchBody, "# Draft") {
		t.Fatalf("update should carry the post, got %q", patchBody)
	}
}

func TestGenerateJobSkipsAttachWhenCreateFails(t *testing.T) {
	var mu sync.Mutex
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		methods = append(methods, r.Method)
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	st := store.New(srv.URL, "anon", srv.Client())
	client := &scriptedLLM{post: "# Draft"}
	msg := generatePostCmd(1, client, st, log.New(io.Discard), "doc", "")()

	res := msg.(postResultMsg)
	if res.err != nil || res.post != "# Draft" {
		t.Fatalf("store failure must not break generation: %+v", res)
	}

	mu.Lock()
	defer mu.Unlock()
	for _, method := range methods {
		if method == http.MethodPatch {
			t.Fatalf("no update may run without a created id")
		}
	}
}

func TestGenerateJobWithoutStore(t *testing.T) {
	client := &scriptedLLM{post: "# Draft"}
	msg := generatePostCmd(1, client, nil, log.New(io.Discard), "doc", "")()

	res := msg.(postResultMsg)
	if res.err != nil || res.post != "# Draft" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestGenerateJobReportsDraftFailure(t *testing.T) {
	client := &scriptedLLM{err: errors.New("boom")}
	msg := generatePostCmd(1, client, nil, log.New(io.Discard), "doc", "")()

	res := msg.(postResultMsg)
	if res.err == nil || res.post != "" {
		t.Fatalf("draft failure should surface an error only, got %+v", res)
	}
}
