// Package pricing evaluates marketplace pricing rules and manages the rule
// collections and pricing sheets they are evaluated against.
package pricing

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Govind-619/PriceSphere/models"
	"github.com/Govind-619/PriceSphere/utils"
)

// Store persists whole engine snapshots
type Store interface {
	Load(ctx context.Context) (*models.PricingSnapshot, error)
	Save(ctx context.Context, snapshot *models.PricingSnapshot) error
}

// Option configures an Engine
type Option func(*Engine)

// WithClock replaces the wall clock used for rule validity and timestamps
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator replaces the uuid generator used for new rules and sheets
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// Engine owns the five rule collections, the pricing sheets and the last bulk
// calculator results. Every mutation writes the whole snapshot to the store;
// store failures are logged and never surface to the caller.
type Engine struct {
	mu    sync.RWMutex
	store Store
	now   func() time.Time
	newID func() string

	tieredRules        []models.TieredRule
	volumeRules        []models.VolumeRule
	promotionalRules   []models.PromotionalRule
	customerGroupRules []models.CustomerGroupRule
	productRules       []models.ProductSpecificRule
	pricingSheets      []models.PricingSheet

	calculatorResults []models.PriceCalculation
}

// NewEngine creates an empty engine. A nil store disables persistence.
func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load replaces the engine state with the persisted snapshot
func (e *Engine) Load(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	snapshot, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pricing state: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.restoreLocked(snapshot)
	utils.LogInfo("Pricing state loaded: %d tiered, %d volume, %d promotional, %d customer group, %d product rules, %d sheets",
		len(e.tieredRules), len(e.volumeRules), len(e.promotionalRules),
		len(e.customerGroupRules), len(e.productRules), len(e.pricingSheets))
	return nil
}

// Snapshot returns a copy of the persisted part of the engine state
func (e *Engine) Snapshot() models.PricingSnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshotLocked()
}

// CalculatorResults returns the results of the last bulk calculation
func (e *Engine) CalculatorResults() []models.PriceCalculation {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneCalculations(e.calculatorResults)
}

func (e *Engine) snapshotLocked() models.PricingSnapshot {
	sheets := make([]models.PricingSheet, len(e.pricingSheets))
	for i := range e.pricingSheets {
		sheets[i] = e.pricingSheets[i].Clone()
	}
	return models.PricingSnapshot{
		TieredRules:        cloneAll(e.tieredRules),
		VolumeRules:        cloneAll(e.volumeRules),
		PromotionalRules:   cloneAll(e.promotionalRules),
		CustomerGroupRules: cloneAll(e.customerGroupRules),
		ProductRules:       cloneAll(e.productRules),
		PricingSheets:      sheets,
	}
}

func (e *Engine) restoreLocked(snapshot *models.PricingSnapshot) {
	if snapshot == nil {
		snapshot = &models.PricingSnapshot{}
	}
	e.tieredRules = cloneAll(snapshot.TieredRules)
	e.volumeRules = cloneAll(snapshot.VolumeRules)
	e.promotionalRules = cloneAll(snapshot.PromotionalRules)
	e.customerGroupRules = cloneAll(snapshot.CustomerGroupRules)
	e.productRules = cloneAll(snapshot.ProductRules)
	e.pricingSheets = make([]models.PricingSheet, len(snapshot.PricingSheets))
	for i := range snapshot.PricingSheets {
		e.pricingSheets[i] = snapshot.PricingSheets[i].Clone()
	}
	e.calculatorResults = nil
}

// persistLocked writes the current state. Must be called with mu held.
func (e *Engine) persistLocked() {
	if e.store == nil {
		return
	}
	snapshot := e.snapshotLocked()
	if err := e.store.Save(context.Background(), &snapshot); err != nil {
		utils.LogError("Failed to persist pricing state: %v", err)
	}
}

func cloneCalculations(in []models.PriceCalculation) []models.PriceCalculation {
	out := slices.Clone(in)
	for i := range out {
		out[i].AppliedRules = slices.Clone(out[i].AppliedRules)
	}
	return out
}
