package audit

import "github.com/cleared-dev/auditsim/internal/model"

// IssueMatch pairs a planted issue with the findings that touched it.
type IssueMatch struct {
	Issue      model.InjectedIssue `json:"issue"`
	FindingIDs []string            `json:"finding_ids"`
}

// Evaluation scores findings against the issues that were actually planted.
type Evaluation struct {
	Detected          []IssueMatch          `json:"detected"`
	Missed            []model.InjectedIssue `json:"missed"`
	Recall            float64               `json:"recall"`
	UnmatchedFindings []string              `json:"unmatched_findings"`
}

// Evaluate matches findings to issues by shared entry IDs. An issue counts as
// detected when any finding lists one of its affected entries. With no planted
// issues recall is 1.
func Evaluate(issues []model.InjectedIssue, findings []model.AuditFinding) Evaluation {
	byEntry := make(map[string][]int)
	for i, f := range findings {
		for _, id := range f.AffectedTransactions {
			byEntry[id] = append(byEntry[id], i)
		}
	}

	used := make([]bool, len(findings))
	ev := Evaluation{Recall: 1}
	for _, iss := range issues {
		hit := make(map[int]bool)
		var ids []string
		for _, entryID := range iss.AffectedEntries {
			for _, fi := range byEntry[entryID] {
				if hit[fi] {
					continue
				}
				hit[fi] = true
				used[fi] = true
				ids = append(ids, findings[fi].FindingID)
			}
		}
		if len(ids) == 0 {
			ev.Missed = append(ev.Missed, iss)
			continue
		}
		ev.Detected = append(ev.Detected, IssueMatch{Issue: iss, FindingIDs: ids})
	}
	for i, f := range findings {
		if !used[i] {
			ev.UnmatchedFindings = append(ev.UnmatchedFindings, f.FindingID)
		}
	}
	if len(issues) > 0 {
		ev.Recall = float64(len(ev.Detected)) / float64(len(issues))
	}
	return ev
}
