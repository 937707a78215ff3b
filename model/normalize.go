package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/viant/toolbox"
)

// extractor reads one candidate value from a raw record. Normalization rules
// are expressed as ordered extractor chains so that the field precedence
// stays auditable.
type extractor func(Record) (interface{}, bool)

func field(name string) extractor {
	return func(r Record) (interface{}, bool) {
		v, ok := r[name]
		return v, ok && v != nil
	}
}

func nested(names ...string) extractor {
	return func(r Record) (interface{}, bool) {
		var current interface{} = map[string]interface{}(r)
		for _, name := range names {
			owner, ok := current.(map[string]interface{})
			if !ok {
				return nil, false
			}
			current, ok = owner[name]
			if !ok || current == nil {
				return nil, false
			}
		}
		return current, true
	}
}

func first(r Record, extractors ...extractor) (interface{}, bool) {
	for _, extract := range extractors {
		if v, ok := extract(r); ok {
			return v, true
		}
	}
	return nil, false
}

// truthy mirrors the loose boolean semantics of JSON-decoded values: nil,
// false, zero and the empty string do not count.
func truthy(v interface{}) bool {
	switch actual := v.(type) {
	case nil:
		return false
	case bool:
		return actual
	case string:
		return actual != ""
	case float64:
		return actual != 0
	case int:
		return actual != 0
	default:
		return true
	}
}

func stringOr(v interface{}, fallback string) string {
	if v == nil {
		return fallback
	}
	return toolbox.AsString(v)
}

var (
	riskExtractors = []extractor{
		field("risk_level"),
		field("riskLevel"),
		nested("metadata", "risk_level"),
	}
	summaryExtractors = []extractor{
		field("summary"),
		field("details"),
		field("message"),
	}
	timestampExtractors = []extractor{
		field("timestamp"),
		field("at"),
	}
	identityExtractors = []extractor{
		field("entry_id"),
		field("event_id"),
		field("id"),
	}
	eventTypeExtractors = []extractor{
		field("event_type"),
		field("type"),
		field("kind"),
	}
	titleExtractors = []extractor{
		field("title"),
		field("kind"),
	}
	actorExtractors = []extractor{
		nested("metadata", "actor"),
		field("actor"),
	}
	approvalStatusExtractors = []extractor{
		field("approval_status"),
		field("approvalStatus"),
		nested("approval_context", "status"),
	}
)

// approvalValue resolves the approval status in priority order: the direct
// status field variants, then the approval_context status, then the
// approval_indicator object. A missing status yields ("", false) and the
// caller defaults the label to "none".
func approvalValue(r Record) (string, bool) {
	if v, ok := first(r, approvalStatusExtractors...); ok {
		s := toolbox.AsString(v)
		if s == "not_required" {
			return "none", true
		}
		if truthy(v) {
			return s, true
		}
	}
	indicator, _ := first(r, field("approval_indicator"))
	if owner, ok := indicator.(map[string]interface{}); ok {
		if truthy(owner["is_approval_resolved"]) {
			if decision, ok := owner["decision"]; ok && decision != nil {
				return toolbox.AsString(decision), true
			}
			return "approved", true
		}
		if truthy(owner["is_approval_required"]) {
			return "required", true
		}
	}
	return "", false
}

// evidenceItems resolves evidence in canonical-first order. When
// evidence_refs is present as an array it wins outright, even when empty -
// the legacy links are consulted only when no canonical array exists at all.
// This reproduces the source system's behavior verbatim; see DESIGN.md for
// why the empty-array case is kept.
func evidenceItems(r Record) []EvidenceItem {
	if canonical, ok := r["evidence_refs"]; ok {
		if entries, isList := canonical.([]interface{}); isList {
			out := make([]EvidenceItem, 0, len(entries))
			for _, candidate := range entries {
				entry, isMap := candidate.(map[string]interface{})
				if !isMap || !truthy(entry["ref"]) {
					continue
				}
				out = append(out, EvidenceItem{
					Kind:  stringOr(entry["kind"], "evidence"),
					Label: stringOr(entry["label"], "evidence"),
					Ref:   toolbox.AsString(entry["ref"]),
				})
			}
			return out
		}
	}
	legacy, ok := first(r, field("evidence_links"), field("evidenceLinks"))
	if !ok {
		return []EvidenceItem{}
	}
	entries, isList := legacy.([]interface{})
	if !isList {
		return []EvidenceItem{}
	}
	out := make([]EvidenceItem, 0, len(entries))
	for _, candidate := range entries {
		if !truthy(candidate) {
			continue
		}
		out = append(out, EvidenceItem{
			Kind:  "evidence",
			Label: "evidence",
			Ref:   toolbox.AsString(candidate),
		})
	}
	return out
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTime accepts RFC-3339 variants, a few permissive layouts and numeric
// epoch milliseconds.
func parseTime(v interface{}) (time.Time, bool) {
	switch actual := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return actual, true
	case float64:
		return time.UnixMilli(int64(actual)).UTC(), true
	case int:
		return time.UnixMilli(int64(actual)).UTC(), true
	case int64:
		return time.UnixMilli(actual).UTC(), true
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, actual); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// FormatTime renders a raw timestamp value for display. Unparseable input
// renders as "unknown time". Presentation only - sorting never uses it.
func FormatTime(v interface{}) string {
	parsed, ok := parseTime(v)
	if !ok {
		return "unknown time"
	}
	return parsed.Format("1/2/2006, 3:04:05 PM")
}

// sortValue returns the effective timestamp in epoch milliseconds;
// unparseable or missing timestamps sort at epoch 0.
func sortValue(r Record) int64 {
	v, ok := first(r, timestampExtractors...)
	if !ok {
		return 0
	}
	parsed, ok := parseTime(v)
	if !ok {
		return 0
	}
	return parsed.UnixMilli()
}

func normalizeLabel(value, fallback string) string {
	if value == "" {
		value = fallback
	}
	return strings.ToUpper(value)
}

// Normalize maps an arbitrary raw event record into a Card. It tolerates
// missing or malformed fields and never fails - every field falls back to a
// best-effort default.
func Normalize(r Record) *Card {
	riskValue, hasRisk := first(r, riskExtractors...)
	risk := ""
	if hasRisk {
		risk = toolbox.AsString(riskValue)
	}
	riskLabel := normalizeLabel(risk, "low")

	approvalStatus, _ := approvalValue(r)
	approvalLabel := normalizeLabel(approvalStatus, "none")

	items := evidenceItems(r)
	links := make([]string, 0, len(items))
	for _, item := range items {
		links = append(links, item.Ref)
	}

	rawTimestamp, _ := first(r, timestampExtractors...)

	card := &Card{
		ID:            identity(r),
		EventID:       stringValue(r, field("event_id"), field("id")),
		EventType:     stringValue(r, eventTypeExtractors...),
		Actor:         stringValue(r, actorExtractors...),
		PayloadPath:   stringValue(r, nested("payload_ref", "path")),
		Title:         fallbackValue(r, "Event", titleExtractors...),
		Summary:       fallbackValue(r, "No summary provided.", summaryExtractors...),
		Timestamp:     stringValue(r, timestampExtractors...),
		TimeText:      FormatTime(rawTimestamp),
		RiskLabel:     riskLabel,
		ApprovalLabel: approvalLabel,
		EvidenceItems: items,
		EvidenceLinks: links,
	}
	card.Flags = Flags{
		IsRisky:       riskLabel == "HIGH" || riskLabel == "CRITICAL",
		NeedsApproval: approvalLabel == "REQUIRED" || approvalLabel == "PENDING",
		IsApproved:    approvalLabel == "APPROVED",
		IsRejected:    approvalLabel == "REJECTED",
	}
	return card
}

// identity prefers explicit identifiers and falls back to a synthetic
// composite so that every event carries a non-empty id.
func identity(r Record) string {
	if v, ok := first(r, identityExtractors...); ok {
		return toolbox.AsString(v)
	}
	title := fallbackValue(r, "event", titleExtractors...)
	timestamp := stringValue(r, timestampExtractors...)
	return fmt.Sprintf("%s-%s", title, timestamp)
}

func stringValue(r Record, extractors ...extractor) string {
	v, ok := first(r, extractors...)
	if !ok {
		return ""
	}
	return toolbox.AsString(v)
}

func fallbackValue(r Record, fallback string, extractors ...extractor) string {
	v, ok := first(r, extractors...)
	if !ok {
		return fallback
	}
	return toolbox.AsString(v)
}
