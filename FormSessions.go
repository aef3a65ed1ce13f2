package main

import (
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"formSheet/cellname"
	"formSheet/contracts"
	"formSheet/engine"
	"formSheet/surface"
)

type NotifierFactory func(formId string) contracts.HostNotifier

type formSession struct {
	mu     sync.Mutex
	grid   *surface.GridSurface
	engine *engine.Engine
}

// FormSessions keeps the live engine of each form and rebuilds it from the repository
// on first use
type FormSessions struct {
	mu         sync.Mutex
	sessions   map[string]*formSession
	repository contracts.FormRepository
	translator contracts.Translator
	notifiers  NotifierFactory
	logger     *zap.SugaredLogger
}

func NewFormSessions(repository contracts.FormRepository, translator contracts.Translator, notifiers NotifierFactory, logger *zap.SugaredLogger) *FormSessions {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &FormSessions{
		sessions:   make(map[string]*formSession),
		repository: repository,
		translator: translator,
		notifiers:  notifiers,
		logger:     logger,
	}
}

func (s *FormSessions) session(formId string) (*formSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[formId]; ok {
		return session, nil
	}

	definition, err := s.repository.GetForm(formId)
	if err != nil {
		return nil, err
	}
	texts, err := s.repository.GetCellTexts(formId)
	if err != nil {
		return nil, err
	}

	session, err := s.build(formId, withTexts(*definition, texts))
	if err != nil {
		return nil, err
	}
	s.sessions[formId] = session
	return session, nil
}

func withTexts(definition contracts.FormDefinition, texts map[string]string) contracts.FormDefinition {
	cells := make(map[string]contracts.CellSpec, len(definition.Cells)+len(texts))
	for name, spec := range definition.Cells {
		cells[name] = spec
	}
	for name, text := range texts {
		spec := cells[name]
		spec.Text = text
		cells[name] = spec
	}
	definition.Cells = cells
	return definition
}

func (s *FormSessions) build(formId string, definition contracts.FormDefinition) (*formSession, error) {
	var notifier contracts.HostNotifier = NotifierChain{}
	if s.notifiers != nil {
		notifier = s.notifiers(formId)
	}

	logger := s.logger.With("form", formId)
	grid := surface.NewGridSurface(definition)
	cellsEngine := engine.NewEngine(
		s.translator, grid, notifier,
		engine.WithLogger(logger),
		engine.WithValidation(definition.Validation),
		engine.WithAttributes(definition.Columns, definition.Rows),
	)
	grid.OnTransaction(func(tr contracts.Transaction) {
		if err := cellsEngine.Dispatch(tr); err != nil {
			logger.Warnw("transaction rejected", "selection", tr.Selection, "error", err)
		}
	})

	if err := cellsEngine.Init(); err != nil {
		return nil, errors.Wrapf(err, "init form `%s`", formId)
	}
	if err := cellsEngine.Flush(); err != nil {
		logger.Warnw("initial flush incomplete", "error", err)
	}
	logger.Infow("form session started")

	return &formSession{grid: grid, engine: cellsEngine}, nil
}

// SetCell focuses the cell, types text into it and moves the cursor out of the table, so
// that dependents are recomputed before it returns
func (s *FormSessions) SetCell(formId string, name string, text string) (*contracts.Cell, error) {
	if !cellname.IsCellName(name) {
		return nil, errors.Wrapf(contracts.InvalidCellNameError, "cell `%s`", name)
	}

	session, err := s.session(formId)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if err = session.grid.Select(name); err != nil {
		return nil, err
	}
	if err = session.grid.Type(name, text); err != nil {
		_ = session.grid.Select("")
		return nil, err
	}
	if err = session.grid.Select(""); err != nil {
		return nil, err
	}
	if err = session.engine.Flush(); err != nil {
		s.logger.Warnw("flush incomplete", "form", formId, "error", err)
	}

	if err = s.repository.SaveCellTexts(formId, map[string]string{name: text}); err != nil {
		return nil, err
	}

	cell, _ := session.engine.Cell(name)
	return &cell, nil
}

// Focus moves the cursor into name; an empty name leaves the table
func (s *FormSessions) Focus(formId string, name string) (*contracts.Cell, error) {
	if name != "" && !cellname.IsCellName(name) {
		return nil, errors.Wrapf(contracts.InvalidCellNameError, "cell `%s`", name)
	}

	session, err := s.session(formId)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if err = session.grid.Select(name); err != nil {
		return nil, err
	}
	if err = session.engine.Flush(); err != nil {
		s.logger.Warnw("flush incomplete", "form", formId, "error", err)
	}

	if name == "" {
		return nil, nil
	}
	cell, ok := session.engine.Cell(name)
	if !ok {
		return nil, errors.Wrapf(contracts.CellNotFoundError, "cell `%s`", name)
	}
	return &cell, nil
}

func (s *FormSessions) Cells(formId string) (map[string]contracts.Cell, error) {
	session, err := s.session(formId)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	return session.engine.Snapshot().Cells.Cells, nil
}

func (s *FormSessions) Score(formId string) (*contracts.ScoreSummary, error) {
	session, err := s.session(formId)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	summary := session.engine.Summary()
	return &summary, nil
}

func (s *FormSessions) Forget(formId string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, formId)
}

// EvaluateDefinition builds a detached session over definition, with nothing persisted
func EvaluateDefinition(definition contracts.FormDefinition, translator contracts.Translator, logger *zap.SugaredLogger) (*engine.Engine, error) {
	session, err := NewFormSessions(nil, translator, nil, logger).build("local", definition)
	if err != nil {
		return nil, err
	}
	return session.engine, nil
}
