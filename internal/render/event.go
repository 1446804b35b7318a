package render

import "gougewatch/internal/sections"

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line), including:
// - run.started
// - dataset.fetched
// - section.rendered
// - run.finished
//
// JSON mode remains an aggregate of sections.Fragment values.
type Event struct {
	Type  string `json:"type"`
	RunID string `json:"run_id,omitempty"`
	*sections.Fragment
	Dataset  string `json:"dataset,omitempty"`
	Error    string `json:"error,omitempty"`
	Sections int    `json:"sections,omitempty"`
	Datasets int    `json:"datasets,omitempty"`
	ExitCode int    `json:"exit_code,omitempty"`
}

func eventFromFragment(f sections.Fragment) Event {
	return Event{Type: "section.rendered", Fragment: &f}
}
