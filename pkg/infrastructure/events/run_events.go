package events

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/yintu/pmc/pkg/application/dto"
)

const (
	StageCompletedEvent  = "stage.completed"
	SourceDegradedEvent  = "source.degraded"
	ReportAssembledEvent = "report.assembled"
)

type StageCompleted struct {
	Stage   string        `json:"stage"`
	Elapsed time.Duration `json:"elapsed"`
}

type SourceDegraded struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

type ReportAssembled struct {
	Orders      int         `json:"orders"`
	Rows        int         `json:"rows"`
	Diagnostics int         `json:"diagnostics"`
	Report      *dto.Report `json:"-"`
}

// Observer receives stage timings and the finished report
type Observer interface {
	ObserveStage(stage string, elapsed time.Duration)
	ObserveReport(report *dto.Report)
}

// Journal turns pipeline callbacks into events on the run's stream
type Journal struct {
	store  EventStore
	runID  string
	now    func() time.Time
	logger *slog.Logger
}

// NewJournal creates a journal writing to the stream named runID
func NewJournal(store EventStore, runID string, logger *slog.Logger) *Journal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Journal{store: store, runID: runID, now: time.Now, logger: logger}
}

func (j *Journal) ObserveStage(stage string, elapsed time.Duration) {
	j.append(StageCompletedEvent, StageCompleted{Stage: stage, Elapsed: elapsed})
}

// ObserveReport records one degraded-source event per load warning, then the report itself
func (j *Journal) ObserveReport(report *dto.Report) {
	for _, d := range report.Diagnostics {
		if d.Severity == dto.SeverityWarning && d.Stage == "load" {
			j.append(SourceDegradedEvent, SourceDegraded{Source: d.Source, Message: d.Message})
		}
	}
	j.append(ReportAssembledEvent, ReportAssembled{
		Orders:      report.Summary.TotalOrders,
		Rows:        report.Summary.TotalRows,
		Diagnostics: len(report.Diagnostics),
		Report:      report,
	})
}

// Events returns the run's stream in order
func (j *Journal) Events() ([]Event, error) {
	events, err := j.store.ReadEvents(j.runID, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to read run %s events: %w", j.runID, err)
	}
	return events, nil
}

func (j *Journal) append(eventType string, data interface{}) {
	if err := j.store.AppendEvent(j.runID, NewEvent(eventType, j.runID, data, j.now())); err != nil {
		j.logger.Warn("event handler failed", slog.String("event", eventType), slog.String("error", err.Error()))
	}
}

// ObserverHandler replays stage and report events onto an Observer
type ObserverHandler struct {
	target Observer
}

func NewObserverHandler(target Observer) *ObserverHandler {
	return &ObserverHandler{target: target}
}

func (h *ObserverHandler) CanHandle(eventType string) bool {
	return eventType == StageCompletedEvent || eventType == ReportAssembledEvent
}

func (h *ObserverHandler) Handle(event Event) error {
	switch data := event.Data().(type) {
	case StageCompleted:
		h.target.ObserveStage(data.Stage, data.Elapsed)
	case ReportAssembled:
		if data.Report != nil {
			h.target.ObserveReport(data.Report)
		}
	}
	return nil
}
