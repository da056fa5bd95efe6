package pagerduty_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/infra/pagerduty"
	"github.com/secmon-lab/surch/pkg/utils/logging"
)

type eventServer struct {
	mutex  sync.Mutex
	events []map[string]any
	status int
}

func newEventServer(t *testing.T, status int) (*eventServer, *httptest.Server) {
	es := &eventServer{status: status}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v2/enqueue" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var ev map[string]any
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		es.mutex.Lock()
		es.events = append(es.events, ev)
		es.mutex.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(es.status)
		_, _ = w.Write([]byte(`{"status":"success","message":"Event processed","dedup_key":"run-1"}`))
	}))
	t.Cleanup(srv.Close)
	return es, srv
}

func writeArtifact(t *testing.T, lines ...string) string {
	path := filepath.Join(t.TempDir(), "acme.jsonl")
	var body []byte
	for _, line := range lines {
		body = append(body, []byte(line+"\n")...)
	}
	gt.NoError(t, os.WriteFile(path, body, 0o600))
	return path
}

func TestNotify(t *testing.T) {
	_, ctx := logging.CtxRunID(context.Background())
	ctx = logging.CtxWithTime(ctx, func() time.Time {
		return time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	})

	t.Run("trigger event when matches exist", func(t *testing.T) {
		es, srv := newEventServer(t, http.StatusAccepted)
		client := gt.R1(pagerduty.New(&pagerduty.Config{
			RoutingKey: "R0UT1NGK3Y",
			Endpoint:   srv.URL,
		})).NoError(t)

		path := writeArtifact(t,
			`{"repository":"api","search_term":"AKIA","line":1}`,
			`{"repository":"web","search_term":"hunter2","line":3}`,
		)
		gt.NoError(t, client.Notify(ctx, path))

		gt.A(t, es.events).Length(1)
		ev := es.events[0]
		gt.V(t, ev["routing_key"]).Equal("R0UT1NGK3Y")
		gt.V(t, ev["event_action"]).Equal("trigger")

		payload := ev["payload"].(map[string]any)
		gt.V(t, payload["severity"]).Equal("critical")
		gt.V(t, payload["source"]).Equal("surch")
		gt.V(t, payload["timestamp"]).Equal("2024-04-01T12:00:00Z")
		gt.S(t, payload["summary"].(string)).Contains("2 matches in 2 repositories")

		raw := gt.R1(json.Marshal(ev)).NoError(t)
		gt.S(t, string(raw)).NotContains("hunter2")
	})

	t.Run("no event for empty artifact", func(t *testing.T) {
		es, srv := newEventServer(t, http.StatusAccepted)
		client := gt.R1(pagerduty.New(&pagerduty.Config{
			RoutingKey: "R0UT1NGK3Y",
			Endpoint:   srv.URL,
		})).NoError(t)

		gt.NoError(t, client.Notify(ctx, writeArtifact(t)))
		gt.A(t, es.events).Length(0)
	})

	t.Run("rejected event", func(t *testing.T) {
		_, srv := newEventServer(t, http.StatusBadRequest)
		client := gt.R1(pagerduty.New(&pagerduty.Config{
			RoutingKey: "R0UT1NGK3Y",
			Endpoint:   srv.URL,
			Severity:   "warning",
		})).NoError(t)

		gt.Error(t, client.Notify(ctx, writeArtifact(t, `{"repository":"api"}`)))
	})

	t.Run("missing artifact", func(t *testing.T) {
		client := gt.R1(pagerduty.New(&pagerduty.Config{RoutingKey: "R0UT1NGK3Y"})).NoError(t)
		gt.Error(t, client.Notify(ctx, filepath.Join(t.TempDir(), "none.jsonl")))
	})
}

func TestConfigValidate(t *testing.T) {
	_, err := pagerduty.New(&pagerduty.Config{})
	gt.True(t, errors.Is(err, types.ErrConfig))

	_, err = pagerduty.New(&pagerduty.Config{RoutingKey: "x", Severity: "panic"})
	gt.True(t, errors.Is(err, types.ErrConfig))
}
