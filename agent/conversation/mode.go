// Package conversation drives turn-taking between persona agents.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/BaSui01/roundtable/agent/persistence"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scenario names the turn-taking pattern of a run.
type Scenario string

const (
	ScenarioSequential   Scenario = "sequential"   // Comedians one after another
	ScenarioConcurrent   Scenario = "concurrent"   // Comedians fanned out per round
	ScenarioJury         Scenario = "jury"         // Comedians plus a judge
	ScenarioConversation Scenario = "conversation" // Shared-history table talk
	ScenarioDebate       Scenario = "debate"       // Moderated debate with audience
)

// Driver errors.
var (
	ErrNoAgents      = errors.New("conversation: no agents")
	ErrInvalidRounds = errors.New("conversation: rounds must not be negative")
	ErrNoJudge       = errors.New("conversation: no judge")
)

// DefaultPrompt is the fixed prompt of the comedian scenarios.
const DefaultPrompt = "Tell a one-liner joke."

// Speaker roles recorded with every turn.
const (
	RoleComedian    = "comedian"
	RoleJudge       = "judge"
	RoleParticipant = "participant"
	RoleModerator   = "moderator"
	RoleCandidate   = "candidate"
	RoleAudience    = "audience"
)

// Reporter renders a run for humans.
type Reporter interface {
	// Round announces the start of round n (1-based).
	Round(n int)
	// Say prints one speaker line.
	Say(speaker, text string)
	// Note prints free text such as a judge verdict.
	Note(text string)
	// Heading prints a section header such as "Jury Decision:".
	Heading(text string)
}

// TurnObserver is told about every turn, e.g. to count it.
type TurnObserver interface {
	ObserveTurn(scenario, role string)
}

// Turn is one spoken line.
type Turn struct {
	Round   int    `json:"round"`
	Speaker string `json:"speaker"`
	Role    string `json:"role"`
	Prompt  string `json:"prompt,omitempty"`
	Text    string `json:"text"`
}

// RoundResult collects the turns of one round in speaking order.
type RoundResult struct {
	Round int    `json:"round"`
	Turns []Turn `json:"turns"`
}

// Session carries what every driver needs besides its agents: where output
// goes, where turns are recorded, and the run identity.
type Session struct {
	RunID    string
	Scenario Scenario

	reporter Reporter
	recorder persistence.Recorder
	observer TurnObserver
	logger   *zap.Logger

	mu      sync.Mutex
	seq     int
	started time.Time
}

// NewSession creates a session. reporter may be nil (output discarded).
func NewSession(scenario Scenario, reporter Reporter, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reporter == nil {
		reporter = discardReporter{}
	}
	runID := uuid.NewString()
	return &Session{
		RunID:    runID,
		Scenario: scenario,
		reporter: reporter,
		recorder: persistence.NopRecorder{},
		logger: logger.With(
			zap.String("component", "conversation"),
			zap.String("scenario", string(scenario)),
			zap.String("run_id", runID),
		),
		started: time.Now(),
	}
}

// WithRecorder sets the turn recorder. nil keeps the no-op recorder.
func (s *Session) WithRecorder(rec persistence.Recorder) *Session {
	if rec != nil {
		s.recorder = rec
	}
	return s
}

// WithObserver sets the turn observer.
func (s *Session) WithObserver(o TurnObserver) *Session {
	s.observer = o
	return s
}

// Reporter returns the session reporter.
func (s *Session) Reporter() Reporter { return s.reporter }

// Logger returns the session logger.
func (s *Session) Logger() *zap.Logger { return s.logger }

// Turns reports how many turns have been emitted so far.
func (s *Session) Turns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Elapsed returns the wall time since the session was created.
func (s *Session) Elapsed() time.Duration { return time.Since(s.started) }

// Emit prints a turn as a speaker line, records it and notifies the observer.
func (s *Session) Emit(ctx context.Context, t Turn) {
	s.reporter.Say(t.Speaker, t.Text)
	s.record(ctx, t)
}

// record stores a turn that was already rendered some other way.
// A recorder failure is logged; the console stays the primary output.
func (s *Session) record(ctx context.Context, t Turn) {
	s.mu.Lock()
	seq := s.seq
	s.seq++
	s.mu.Unlock()

	err := s.recorder.Record(ctx, &persistence.TurnRecord{
		RunID:    s.RunID,
		Scenario: string(s.Scenario),
		Seq:      seq,
		Round:    t.Round,
		Speaker:  t.Speaker,
		Role:     t.Role,
		Prompt:   t.Prompt,
		Text:     t.Text,
	})
	if err != nil {
		s.logger.Warn("failed to record turn", zap.Int("seq", seq), zap.Error(err))
	}
	if s.observer != nil {
		s.observer.ObserveTurn(string(s.Scenario), t.Role)
	}
}

// StartRound announces round n.
func (s *Session) StartRound(n int) {
	s.reporter.Round(n)
	s.logRound(n)
}

func (s *Session) logRound(n int) {
	s.logger.Debug("round started", zap.Int("round", n))
}

// Fail logs a round failure and wraps err with the round number.
func (s *Session) Fail(round int, err error) error {
	s.logger.Error("round aborted", zap.Int("round", round), zap.Error(err))
	return fmt.Errorf("round %d: %w", round, err)
}

type discardReporter struct{}

func (discardReporter) Round(int)          {}
func (discardReporter) Say(string, string) {}
func (discardReporter) Note(string)        {}
func (discardReporter) Heading(string)     {}
