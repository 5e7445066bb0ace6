package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"gocmmi/domain/assessment"
	"gocmmi/internal/errors"
)

// Catalog file names inside the data directory
const (
	questionsFile = "questions.json"
	rulesFile     = "rules.json"
	kpasFile      = "kpas.json"
)

// FSRepository loads the question catalog, rule set and KPA descriptors from
// JSON files in a data directory. The files are parsed once and cached for
// the lifetime of the repository; catalogs are versioned by directory, so a
// reload means constructing a new repository.
type FSRepository struct {
	dataDir string

	mu        sync.RWMutex
	loaded    bool
	questions []assessment.Question
	rules     []assessment.Rule
	kpas      []assessment.KPAInfo
}

// NewFSRepository creates a repository over the given data directory
func NewFSRepository(dataDir string) *FSRepository {
	return &FSRepository{dataDir: dataDir}
}

// questionRecord mirrors the questions.json schema. Weight is a pointer so
// an absent field can default to 1 while an explicit 0 stays 0.
type questionRecord struct {
	ID     string   `json:"id"`
	KPA    string   `json:"kpa"`
	SP     string   `json:"sp"`
	Text   string   `json:"text"`
	Weight *float64 `json:"weight"`
}

// ruleRecord mirrors the rules.json schema
type ruleRecord struct {
	KPA          string   `json:"kpa"`
	SP           string   `json:"sp"`
	WhenAnswerIn []string `json:"whenAnswerIn"`
	Actions      []string `json:"actions"`
}

// Load parses all catalog files, fetching them concurrently. Safe to call
// more than once; subsequent calls are no-ops.
func (r *FSRepository) Load(ctx context.Context) error {
	r.mu.RLock()
	if r.loaded {
		r.mu.RUnlock()
		return nil
	}
	r.mu.RUnlock()

	var (
		questionRecords []questionRecord
		ruleRecords     []ruleRecord
		kpas            []assessment.KPAInfo
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return r.readJSON(questionsFile, &questionRecords) })
	g.Go(func() error { return r.readJSON(rulesFile, &ruleRecords) })
	g.Go(func() error { return r.readJSON(kpasFile, &kpas) })
	if err := g.Wait(); err != nil {
		return err
	}

	questions := make([]assessment.Question, 0, len(questionRecords))
	for _, rec := range questionRecords {
		weight := 1.0
		if rec.Weight != nil {
			weight = *rec.Weight
		}
		sp := rec.SP
		if sp == "" {
			sp = assessment.DefaultSP
		}
		questions = append(questions, assessment.Question{
			ID:     rec.ID,
			KPA:    rec.KPA,
			SP:     sp,
			Text:   rec.Text,
			Weight: weight,
		})
	}

	rules := make([]assessment.Rule, 0, len(ruleRecords))
	for _, rec := range ruleRecords {
		sp := rec.SP
		if sp == "" {
			sp = assessment.DefaultSP
		}
		rules = append(rules, assessment.Rule{
			KPA:          rec.KPA,
			SP:           sp,
			WhenAnswerIn: rec.WhenAnswerIn,
			Actions:      rec.Actions,
		})
	}

	r.mu.Lock()
	r.questions = questions
	r.rules = rules
	r.kpas = kpas
	r.loaded = true
	r.mu.Unlock()

	return nil
}

func (r *FSRepository) readJSON(name string, out interface{}) error {
	full := filepath.Join(r.dataDir, name)
	raw, err := os.ReadFile(full)
	if err != nil {
		return errors.CatalogError("failed to read catalog file "+name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.CatalogError("failed to parse catalog file "+name, err)
	}
	return nil
}

// Questions returns the full question catalog in file order
func (r *FSRepository) Questions(ctx context.Context) ([]assessment.Question, error) {
	if err := r.Load(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.questions, nil
}

// Rules returns the recommendation rule set in file order
func (r *FSRepository) Rules(ctx context.Context) ([]assessment.Rule, error) {
	if err := r.Load(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rules, nil
}

// KPAs returns the key process area descriptors
func (r *FSRepository) KPAs(ctx context.Context) ([]assessment.KPAInfo, error) {
	if err := r.Load(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.kpas, nil
}
