// Package repository holds the persistence backends for the pricing engine
// state. Every backend stores the whole snapshot under a single key.
package repository

import (
	"encoding/json"

	"github.com/Govind-619/PriceSphere/models"
)

// emptySnapshot is what a backend returns before anything was saved
func emptySnapshot() *models.PricingSnapshot {
	return &models.PricingSnapshot{}
}

// copySnapshot deep-copies a snapshot through its persisted JSON form
func copySnapshot(snapshot *models.PricingSnapshot) (*models.PricingSnapshot, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}
	var out models.PricingSnapshot
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
