// Package client implements the HTTP surface the timeline consumes:
// journal events per run, the pending-approval list and decision submission.
// Response envelopes are handled tolerantly - the backend has shipped
// several field-name variants over time.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/BigSlikTobi/NightLedger/model"
	"github.com/BigSlikTobi/NightLedger/service/approval"
)

// DefaultApproverID is used when a decision context carries no approver.
const DefaultApproverID = "human_approver"

// Service is the NightLedger API client.
type Service struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(s *Service)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) { s.httpClient = client }
}

// New creates a client rooted at baseURL. An empty baseURL issues
// relative requests, which only makes sense behind a proxy.
func New(baseURL string, options ...Option) *Service {
	ret := &Service{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// JournalEvents fetches the raw journal of one run.
func (s *Service) JournalEvents(ctx context.Context, runID string) ([]model.Record, error) {
	body, err := s.request(ctx, http.MethodGet, "/v1/runs/"+url.PathEscape(runID)+"/journal", nil)
	if err != nil {
		return nil, err
	}
	return firstList(body, "events", "journal", "entries"), nil
}

// PendingApprovals fetches the raw pending-approval list across runs.
func (s *Service) PendingApprovals(ctx context.Context) ([]model.Record, error) {
	body, err := s.request(ctx, http.MethodGet, "/v1/approvals/pending", nil)
	if err != nil {
		return nil, err
	}
	return firstList(body, "items", "approvals", "pending"), nil
}

// ResolveApproval submits one decision. Requests carrying a decision id post
// to the decisions resource, all others to the per-event resource.
func (s *Service) ResolveApproval(ctx context.Context, targetID, decision string, dc approval.DecisionContext) error {
	approverID := dc.ApproverID
	if approverID == "" {
		approverID = DefaultApproverID
	}
	eventID := dc.EventID
	if eventID == "" {
		eventID = targetID
	}
	path := "/v1/approvals/" + url.PathEscape(eventID)
	if dc.DecisionID != "" {
		path = "/v1/approvals/decisions/" + url.PathEscape(dc.DecisionID)
	}
	payload, err := json.Marshal(map[string]interface{}{
		"decision":    decision,
		"approver_id": approverID,
		"reason":      dc.Reason,
	})
	if err != nil {
		return err
	}
	_, err = s.request(ctx, http.MethodPost, path, payload)
	return err
}

// request issues one call and decodes the JSON body best-effort; a body that
// fails to decode yields an empty envelope, matching the lenient contract.
// Non-2xx responses fail with a descriptive error.
func (s *Service) request(ctx context.Context, method, path string, payload []byte) (map[string]interface{}, error) {
	var reader *bytes.Reader
	if payload == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("request failed (%d)", resp.StatusCode)
	}
	body := map[string]interface{}{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return map[string]interface{}{}, nil
	}
	return body, nil
}

// firstList returns the first present, non-nil envelope key as raw records.
func firstList(body map[string]interface{}, keys ...string) []model.Record {
	for _, key := range keys {
		v, ok := body[key]
		if !ok || v == nil {
			continue
		}
		return toRecords(v)
	}
	return []model.Record{}
}

func toRecords(v interface{}) []model.Record {
	entries, ok := v.([]interface{})
	if !ok {
		return []model.Record{}
	}
	out := make([]model.Record, 0, len(entries))
	for _, entry := range entries {
		if record, ok := entry.(map[string]interface{}); ok {
			out = append(out, record)
		}
	}
	return out
}
