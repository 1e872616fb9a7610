package mirror

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rafaelq/fieldlog/internal/models"
)

func TestPushDispatchesSnapshot(t *testing.T) {
	var gotBody []byte
	var gotMethod, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Push(Snapshot{
		Logs:     []models.WorkLog{{ID: "1", TotalHours: 2.5}},
		Tractors: []models.Tractor{{ID: "t1", Name: "Trator 01"}},
	})
	if err != nil {
		t.Fatalf("Push: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %s, want application/json", gotContentType)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(gotBody, &body); err != nil {
		t.Fatalf("push body is not JSON: %v", err)
	}
	if _, ok := body["logs"]; !ok {
		t.Error("push body missing logs key")
	}
	if _, ok := body["tractors"]; !ok {
		t.Error("push body missing tractors key")
	}
	if _, ok := body["users"]; ok {
		t.Error("nil users collection must be omitted from the push body")
	}
}

// The endpoint's status is not read: a server-side failure still counts as a
// dispatched push.
func TestPushIgnoresServerStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "document store on fire", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := New(srv.URL).Push(Snapshot{}); err != nil {
		t.Errorf("Push with 500 response = %v, want nil", err)
	}
}

func TestPushTransportErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	if err := New(srv.URL).Push(Snapshot{}); err == nil {
		t.Error("Push to closed server = nil, want transport error")
	}
}

func TestPushWithoutEndpoint(t *testing.T) {
	if err := New("").Push(Snapshot{}); !errors.Is(err, ErrNoEndpoint) {
		t.Errorf("Push error = %v, want ErrNoEndpoint", err)
	}
}

func TestPullDecodesAndCoerces(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		io.WriteString(w, `{
			"logs": [
				{"id":"1","tractorId":"t1","serviceName":"Aragem",
				 "startHorimeter":"10.5","endHorimeter":18.7,
				 "fuelLiters":"not a number","totalHours":"8.2"}
			],
			"tractors": [
				{"id":"t1","name":"Trator 01","currentHorimeter":"18.7","expectedConsumption":12}
			]
		}`)
	}))
	defer srv.Close()

	res, err := New(srv.URL).Pull()
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}

	if !strings.Contains(gotQuery, "t=") {
		t.Errorf("pull request query = %q, want cache-defeat t param", gotQuery)
	}

	if !res.HasLogs || !res.HasTractors || res.HasUsers {
		t.Fatalf("key presence = logs:%v tractors:%v users:%v, want true true false",
			res.HasLogs, res.HasTractors, res.HasUsers)
	}

	log := res.Logs[0]
	if log.StartHorimeter != 10.5 || log.EndHorimeter != 18.7 || log.TotalHours != 8.2 {
		t.Errorf("coerced log numerics = %v %v %v, want 10.5 18.7 8.2",
			log.StartHorimeter, log.EndHorimeter, log.TotalHours)
	}
	if log.FuelLiters != 0 {
		t.Errorf("unparseable fuel = %v, want zero fallback", log.FuelLiters)
	}
	if tr := res.Tractors[0]; tr.CurrentHorimeter != 18.7 || tr.ExpectedConsumption != 12 {
		t.Errorf("coerced tractor numerics = %v %v, want 18.7 12", tr.CurrentHorimeter, tr.ExpectedConsumption)
	}
}

func TestPullFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-2xx", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadGateway)
		}},
		{"malformed JSON", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"logs": [`)
		}},
		{"remote error field", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"error":"sheet unavailable"}`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			if _, err := New(srv.URL).Pull(); err == nil {
				t.Error("Pull = nil error, want failure")
			}
		})
	}
}

func TestPullEmptyDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	res, err := New(srv.URL).Pull()
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	if res.HasLogs || res.HasTractors || res.HasUsers {
		t.Errorf("empty document reported keys present: %+v", res)
	}
}
