package workflow

import "log/slog"

// Runtime bundles the collaborators a run needs. It is assembled by the API
// layer from infrastructure and domain systems, or from in-memory fakes in
// tests.
type Runtime struct {
	Store      Store
	Researcher Researcher
	Classifier Classifier
	Drafter    Drafter
	Gate       ApprovalGate
	Logger     *slog.Logger
}
