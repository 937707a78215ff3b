package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BigSlikTobi/NightLedger/service/approval"
	"github.com/stretchr/testify/assert"
)

func TestService_JournalEvents(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected int
	}{
		{name: "events envelope", body: `{"events":[{"id":"a"},{"id":"b"}]}`, expected: 2},
		{name: "journal envelope", body: `{"journal":[{"id":"a"}]}`, expected: 1},
		{name: "entries envelope", body: `{"entries":[{"id":"a"}]}`, expected: 1},
		{name: "no recognised envelope", body: `{"other":[{"id":"a"}]}`, expected: 0},
		{name: "not json", body: `garbage`, expected: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/runs/run-1/journal", r.URL.Path)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			events, err := New(server.URL).JournalEvents(context.Background(), "run-1")
			assert.NoError(t, err)
			assert.Len(t, events, tc.expected)
		})
	}
}

func TestService_JournalEvents_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := New(server.URL).JournalEvents(context.Background(), "run-1")
	assert.EqualError(t, err, "request failed (500)")
}

func TestService_PendingApprovals(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/approvals/pending", r.URL.Path)
		_, _ = w.Write([]byte(`{"approvals":[{"event_id":"evt-1"}]}`))
	}))
	defer server.Close()

	items, err := New(server.URL).PendingApprovals(context.Background())
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "evt-1", items[0]["event_id"])
}

func TestService_ResolveApproval_EventPath(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	err := New(server.URL).ResolveApproval(context.Background(), "evt-1", approval.Approved,
		approval.DecisionContext{Reason: "looks fine"})
	assert.NoError(t, err)
	assert.Equal(t, "/v1/approvals/evt-1", gotPath)
	assert.Equal(t, "approved", gotBody["decision"])
	assert.Equal(t, DefaultApproverID, gotBody["approver_id"])
	assert.Equal(t, "looks fine", gotBody["reason"])
}

func TestService_ResolveApproval_DecisionPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	err := New(server.URL).ResolveApproval(context.Background(), "evt-1", approval.Rejected,
		approval.DecisionContext{DecisionID: "dec-7", EventID: "evt-1", ApproverID: "reviewer"})
	assert.NoError(t, err)
	assert.Equal(t, "/v1/approvals/decisions/dec-7", gotPath)
}

func TestService_ResolveApproval_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	err := New(server.URL).ResolveApproval(context.Background(), "evt-1", approval.Approved,
		approval.DecisionContext{})
	assert.EqualError(t, err, "request failed (409)")
}
