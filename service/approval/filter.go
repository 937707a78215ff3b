package approval

import (
	"strings"

	"github.com/BigSlikTobi/NightLedger/model"
)

// FilterForRun restricts a pending-approval list to items relevant to the
// active run, preserving order. Demo mode shows everything. Items without a
// run_id field are legacy/global and always match, as do items whose run_id
// is not a string or is blank.
func FilterForRun(approvals []model.Record, runID string) []model.Record {
	if approvals == nil {
		return []model.Record{}
	}
	if runID == DemoRunID {
		return approvals
	}
	out := make([]model.Record, 0, len(approvals))
	for _, item := range approvals {
		if item == nil {
			continue
		}
		raw, present := item["run_id"]
		if !present {
			out = append(out, item)
			continue
		}
		run, isString := raw.(string)
		if !isString {
			out = append(out, item)
			continue
		}
		if strings.TrimSpace(run) == "" || run == runID {
			out = append(out, item)
		}
	}
	return out
}
