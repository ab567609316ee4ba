// Package testutil provides an in-memory stand-in for the backing
// store's REST dialect, covering the filter subset this service uses:
// eq, like (trailing * wildcard), in lists, order, plus insert and patch
// with return=representation semantics.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
)

type FakeStore struct {
	mu     sync.Mutex
	tables map[string][]map[string]any
	nextID int64
	failed map[string]bool

	server *httptest.Server
}

func NewFakeStore() *FakeStore {
	f := &FakeStore{
		tables: map[string][]map[string]any{},
		failed: map[string]bool{},
		nextID: 1,
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *FakeStore) URL() string { return f.server.URL }

func (f *FakeStore) Close() { f.server.Close() }

// Fail makes every request against the table answer HTTP 500.
func (f *FakeStore) Fail(table string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed[table] = true
}

// Seed inserts rows directly, assigning ids when absent.
func (f *FakeStore) Seed(table string, rows ...map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range rows {
		if _, ok := row["id"]; !ok {
			row["id"] = float64(f.nextID)
			f.nextID++
		}
		f.tables[table] = append(f.tables[table], row)
	}
}

// Rows returns a snapshot of a table.
func (f *FakeStore) Rows(table string) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]any, len(f.tables[table]))
	copy(out, f.tables[table])
	return out
}

func (f *FakeStore) handle(w http.ResponseWriter, r *http.Request) {
	table := strings.Trim(r.URL.Path, "/")

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failed[table] {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, `{"message":"table %s unavailable"}`, table)
		return
	}

	switch r.Method {
	case http.MethodGet:
		f.handleSelect(w, table, r.URL.Query())
	case http.MethodPost:
		f.handleInsert(w, table, r)
	case http.MethodPatch:
		f.handlePatch(w, table, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *FakeStore) handleSelect(w http.ResponseWriter, table string, q url.Values) {
	rows := filterRows(f.tables[table], q)
	if order := q.Get("order"); order != "" {
		field := strings.SplitN(strings.SplitN(order, ",", 2)[0], ".", 2)[0]
		sort.SliceStable(rows, func(i, j int) bool {
			return fmt.Sprintf("%v", rows[i][field]) < fmt.Sprintf("%v", rows[j][field])
		})
	}
	writeJSON(w, rows)
}

func (f *FakeStore) handleInsert(w http.ResponseWriter, table string, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"message":"invalid body"}`)
		return
	}
	if _, ok := body["id"]; !ok {
		body["id"] = float64(f.nextID)
		f.nextID++
	}
	f.tables[table] = append(f.tables[table], body)
	writeJSON(w, []map[string]any{body})
}

func (f *FakeStore) handlePatch(w http.ResponseWriter, table string, r *http.Request) {
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"message":"invalid body"}`)
		return
	}
	var updated []map[string]any
	for _, row := range f.tables[table] {
		if !matches(row, r.URL.Query()) {
			continue
		}
		for k, v := range patch {
			row[k] = v
		}
		updated = append(updated, row)
	}
	if updated == nil {
		updated = []map[string]any{}
	}
	writeJSON(w, updated)
}

func filterRows(rows []map[string]any, q url.Values) []map[string]any {
	out := []map[string]any{}
	for _, row := range rows {
		if matches(row, q) {
			out = append(out, row)
		}
	}
	return out
}

// matches applies the eq/like/in filters; select, order, limit and or
// params are ignored (callers of the real store post-filter those).
func matches(row map[string]any, q url.Values) bool {
	for key, vals := range q {
		switch key {
		case "select", "order", "limit", "or":
			continue
		}
		want := vals[0]
		have := fmt.Sprintf("%v", row[key])
		switch {
		case strings.HasPrefix(want, "eq."):
			if have != strings.TrimPrefix(want, "eq.") {
				return false
			}
		case strings.HasPrefix(want, "like."):
			pattern := strings.TrimPrefix(want, "like.")
			if strings.HasSuffix(pattern, "*") {
				if !strings.HasPrefix(have, strings.TrimSuffix(pattern, "*")) {
					return false
				}
			} else if have != pattern {
				return false
			}
		case strings.HasPrefix(want, "in.("):
			list := strings.TrimSuffix(strings.TrimPrefix(want, "in.("), ")")
			found := false
			for _, item := range strings.Split(list, ",") {
				if strings.Trim(item, `"`) == have {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
