package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/BigSlikTobi/NightLedger/model"
	"github.com/BigSlikTobi/NightLedger/service/approval"
	"github.com/BigSlikTobi/NightLedger/service/audit"
	"github.com/BigSlikTobi/NightLedger/tracing"
)

const (
	staleApprovalText = "Approval is no longer pending."
	unknownErrorText  = "Unknown error"
	resolveErrorText  = "Could not resolve approval."
)

// EventsSource fetches the journal of one run.
type EventsSource func(ctx context.Context, runID string) ([]model.Record, error)

// DemoSource fetches fixture events without a run argument.
type DemoSource func(ctx context.Context) ([]model.Record, error)

// ApprovalsSource fetches raw pending-approval items.
type ApprovalsSource func(ctx context.Context) ([]model.Record, error)

// Resolver performs the side-effecting approval submission.
type Resolver func(ctx context.Context, targetID, decision string, dc approval.DecisionContext) error

// Service is the timeline controller. All operations convert collaborator
// failures into state fields; nothing escapes to the caller as an error.
type Service struct {
	runID       string
	events      EventsSource
	demoEvents  DemoSource
	pending     ApprovalsSource
	demoPending ApprovalsSource
	resolve     Resolver
	audit       audit.Service
	listener    Listener

	// notifyMu serializes snapshot delivery so listeners observe mutations
	// in the order they happened. Always acquired before mu.
	notifyMu sync.Mutex

	mu         sync.Mutex
	state      State
	loadSeq    uint64
	pendingSeq uint64
}

// New creates a controller for one run. The run id is immutable for the
// controller's lifetime.
func New(runID string, options ...Option) *Service {
	ret := &Service{
		runID: runID,
		state: State{
			RunID:             runID,
			Status:            StatusIdle,
			PendingStatus:     StatusIdle,
			Events:            []model.Record{},
			PendingApprovals:  []model.Record{},
			PendingSubmission: map[string]bool{},
		},
	}
	for _, option := range options {
		option(ret)
	}
	if ret.audit == nil {
		ret.audit = audit.Nop()
	}
	return ret
}

// RunID returns the run this controller serves.
func (s *Service) RunID() string { return s.runID }

// State returns a snapshot of the current session state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// apply mutates the state under lock, then notifies the listener with a
// snapshot taken inside the critical section. Delivery is serialized under
// notifyMu so concurrent operations never hand the listener a stale snapshot
// after a newer one. When stillCurrent is supplied and reports false the
// mutation is dropped entirely (stale async result).
func (s *Service) apply(stillCurrent func() bool, mutate func(*State)) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.mu.Lock()
	if stillCurrent != nil && !stillCurrent() {
		s.mu.Unlock()
		return false
	}
	mutate(&s.state)
	snapshot := s.state.clone()
	listener := s.listener
	s.mu.Unlock()
	if listener != nil {
		listener(snapshot)
	}
	return true
}

// Load fetches the journal feed. It always emits a loading snapshot followed
// by a terminal one; when a newer Load supersedes this call the stale result
// is discarded without emission.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	s.mu.Unlock()
	current := func() bool { return seq == s.loadSeq }

	s.apply(nil, func(st *State) {
		st.Status = StatusLoading
		st.Error = ""
	})

	ctx, span := tracing.StartSpan(ctx, "timeline.load", "CLIENT")
	events, err := s.fetchEvents(ctx)
	tracing.EndSpan(span, err)

	if err != nil {
		s.apply(current, func(st *State) {
			st.Status = StatusError
			st.Error = errorText(err, unknownErrorText)
		})
		return
	}
	s.apply(current, func(st *State) {
		st.Status = StatusSuccess
		st.Events = events
	})
}

func (s *Service) fetchEvents(ctx context.Context) ([]model.Record, error) {
	if s.runID == approval.DemoRunID {
		if s.demoEvents == nil {
			return nil, errors.New("demo events source not configured")
		}
		return s.demoEvents(ctx)
	}
	if s.events == nil {
		return nil, errors.New("journal events source not configured")
	}
	return s.events(ctx, s.runID)
}

// LoadPendingApprovals fetches the pending-approval feed, passing the result
// through the per-run filter before it is stored.
func (s *Service) LoadPendingApprovals(ctx context.Context) {
	s.mu.Lock()
	s.pendingSeq++
	seq := s.pendingSeq
	s.mu.Unlock()
	current := func() bool { return seq == s.pendingSeq }

	s.apply(nil, func(st *State) {
		st.PendingStatus = StatusLoading
		st.PendingError = ""
	})

	ctx, span := tracing.StartSpan(ctx, "timeline.loadPendingApprovals", "CLIENT")
	approvals, err := s.fetchPending(ctx)
	tracing.EndSpan(span, err)

	if err != nil {
		s.apply(current, func(st *State) {
			st.PendingStatus = StatusError
			st.PendingError = errorText(err, unknownErrorText)
		})
		return
	}
	filtered := approval.FilterForRun(approvals, s.runID)
	s.apply(current, func(st *State) {
		st.PendingStatus = StatusSuccess
		st.PendingApprovals = filtered
	})
}

func (s *Service) fetchPending(ctx context.Context) ([]model.Record, error) {
	if s.runID == approval.DemoRunID && s.demoPending != nil {
		return s.demoPending(ctx)
	}
	if s.pending == nil {
		return nil, errors.New("pending approvals source not configured")
	}
	return s.pending(ctx)
}

// SubmitDecision drives one approval decision through the resolver.
// Duplicate submissions for the same effective key collapse into a single
// call; a stale target only surfaces a pending error. On success in live
// mode both feeds are re-fetched; demo mode removes the item locally.
func (s *Service) SubmitDecision(ctx context.Context, targetID, decision string, dc approval.DecisionContext) {
	s.notifyMu.Lock()
	s.mu.Lock()
	item := findPending(s.state.PendingApprovals, targetID)
	if item == nil {
		s.state.PendingError = staleApprovalText
		snapshot := s.state.clone()
		listener := s.listener
		s.mu.Unlock()
		if listener != nil {
			listener(snapshot)
		}
		s.notifyMu.Unlock()
		return
	}
	submissionID := approval.EffectiveKey(item)
	if s.state.PendingSubmission[submissionID] {
		s.mu.Unlock()
		s.notifyMu.Unlock()
		return
	}
	s.state.PendingSubmission[submissionID] = true
	s.state.PendingError = ""
	snapshot := s.state.clone()
	listener := s.listener
	s.mu.Unlock()
	if listener != nil {
		listener(snapshot)
	}
	s.notifyMu.Unlock()

	eventID := approval.EventID(item)
	decisionID := approval.DecisionID(item)
	s.audit.Log(ctx, &audit.Entry{
		Event:      audit.DecisionRequested,
		RunID:      s.runID,
		EventID:    eventID,
		DecisionID: decisionID,
		Decision:   decision,
		ApproverID: dc.ApproverID,
	})

	dc.DecisionID = decisionID
	dc.EventID = eventID
	spanCtx, span := tracing.StartSpan(ctx, "timeline.resolveApproval", "CLIENT")
	err := s.invokeResolver(spanCtx, submissionID, decision, dc)
	tracing.EndSpan(span, err)

	if err != nil {
		s.audit.Log(ctx, &audit.Entry{
			Event:      audit.DecisionFailed,
			RunID:      s.runID,
			EventID:    eventID,
			DecisionID: decisionID,
			Decision:   decision,
			ApproverID: dc.ApproverID,
			Error:      errorText(err, unknownErrorText),
		})
		s.apply(nil, func(st *State) {
			st.PendingError = errorText(err, resolveErrorText)
		})
	} else {
		s.audit.Log(ctx, &audit.Entry{
			Event:      audit.DecisionCompleted,
			RunID:      s.runID,
			EventID:    eventID,
			DecisionID: decisionID,
			Decision:   decision,
			ApproverID: dc.ApproverID,
		})
		if s.runID == approval.DemoRunID {
			s.apply(nil, func(st *State) {
				st.PendingApprovals = removeByKey(st.PendingApprovals, submissionID)
			})
		} else {
			s.Load(ctx)
			s.LoadPendingApprovals(ctx)
		}
	}

	// The in-flight flag clears regardless of outcome so the UI never leaves
	// a control permanently disabled.
	s.apply(nil, func(st *State) {
		st.PendingSubmission[submissionID] = false
	})
}

func (s *Service) invokeResolver(ctx context.Context, targetID, decision string, dc approval.DecisionContext) error {
	if s.resolve == nil {
		return errors.New("resolve approval collaborator not configured")
	}
	return s.resolve(ctx, targetID, decision, dc)
}

func findPending(items []model.Record, targetID string) model.Record {
	for _, item := range items {
		if approval.Matches(item, targetID) {
			return item
		}
	}
	return nil
}

func removeByKey(items []model.Record, submissionID string) []model.Record {
	out := make([]model.Record, 0, len(items))
	for _, item := range items {
		if approval.EffectiveKey(item) == submissionID {
			continue
		}
		out = append(out, item)
	}
	return out
}

func errorText(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
