// Package modelbank persists fitted model snapshots as a single JSON
// document, the handover format between offline training and the serving
// process.
package modelbank

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/de-tools/dealer-planner/pkg/adapters"
	"github.com/de-tools/dealer-planner/pkg/models/domain"
	"github.com/de-tools/dealer-planner/pkg/models/store"
)

func Save(path string, bank *domain.ModelBank) error {
	doc := store.ModelBankDocument{GeneratedAt: time.Now().UTC()}
	for _, kpi := range bank.KPIs() {
		m, _ := bank.Model(kpi)
		doc.Models = append(doc.Models, adapters.MapModelDomainToStore(m))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding model bank: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing model bank: %w", err)
	}
	return nil
}

func Load(path string) (*domain.ModelBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model bank: %w", err)
	}

	var doc store.ModelBankDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding model bank %s: %w", path, err)
	}

	models := make([]domain.Model, 0, len(doc.Models))
	for _, record := range doc.Models {
		m, err := adapters.MapModelStoreToDomain(record)
		if err != nil {
			return nil, fmt.Errorf("model bank %s: %w", path, err)
		}
		models = append(models, m)
	}

	bank, err := domain.NewModelBank(models)
	if err != nil {
		return nil, fmt.Errorf("model bank %s: %w", path, err)
	}
	return bank, nil
}
