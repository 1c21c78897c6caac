package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"metadata-backoffice/internal/backoffice/domain/model"
	"metadata-backoffice/internal/backoffice/domain/repository"
	"metadata-backoffice/internal/shared/errors"
	"metadata-backoffice/internal/shared/eventbus"
	"metadata-backoffice/internal/shared/logger"
)

const (
	msgMockDataRequired = "Se requiere proporcionar datos JSON"
	msgMockInvalidJSON  = "El JSON proporcionado no es válido"
	msgMockNotFound     = "Mock no encontrado"
)

// MockUsecase implements the mock endpoint operations
type MockUsecase struct {
	repo    repository.MockRepository
	legacy  repository.LegacyMockSource
	events  eventPublisher
	logger  logger.Logger
	now     func() model.Timestamp
	newID   func() string
	migrate sync.Once
}

// NewMockUsecase creates a new MockUsecase. legacy may be nil when there is no
// deprecated mock layout to import.
func NewMockUsecase(repo repository.MockRepository, legacy repository.LegacyMockSource, bus eventbus.EventBusInterface, log logger.Logger) *MockUsecase {
	return &MockUsecase{
		repo:   repo,
		legacy: legacy,
		events: eventPublisher{bus: bus, source: "mock"},
		logger: log.WithComponent("mock_usecase"),
		now:    model.Now,
		newID:  newMockID,
	}
}

// EnsureMigrated imports legacy mocks the first time it is called and returns the
// imported count. Later calls do nothing and return 0.
func (uc *MockUsecase) EnsureMigrated(ctx context.Context) (int, error) {
	imported := 0
	var err error
	uc.migrate.Do(func() {
		imported, err = uc.MigrateLegacy(ctx)
		if err != nil {
			uc.logger.Error("Legacy mock migration failed", "error", err)
		}
	})
	return imported, err
}

func (uc *MockUsecase) ensureMigrated(ctx context.Context) {
	_, _ = uc.EnsureMigrated(ctx)
}

// MigrateLegacy imports every legacy mock whose id is not in the store yet and
// returns how many were imported. Unreadable files are logged and skipped.
func (uc *MockUsecase) MigrateLegacy(ctx context.Context) (int, error) {
	if uc.legacy == nil {
		return 0, nil
	}

	files, err := uc.legacy.Scan(ctx)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, nil
	}

	imported := 0
	_, err = uc.repo.Update(ctx, func(mocks *[]model.Mock) (bool, error) {
		existing := make(map[string]bool, len(*mocks))
		for _, m := range *mocks {
			existing[m.ID] = true
		}

		for _, file := range files {
			if existing[file.ID] {
				continue
			}
			if file.Err != nil {
				uc.logger.Error("Failed to migrate legacy mock", "mockId", file.ID, "error", file.Err)
				continue
			}

			mock, err := uc.normalizeLegacy(file)
			if err != nil {
				uc.logger.Error("Failed to migrate legacy mock", "mockId", file.ID, "error", err)
				continue
			}
			*mocks = append(*mocks, mock)
			existing[mock.ID] = true
			imported++
		}
		return imported > 0, nil
	})
	if err != nil {
		return 0, err
	}

	if imported > 0 {
		uc.logger.Infof("Migrated %d legacy mocks", imported)
		uc.events.publish(ctx, eventbus.EventTypeMocksMigrated, model.MockMigration{Imported: imported})
	}
	return imported, nil
}

// normalizeLegacy accepts the three historical shapes: {data, name, createdAt},
// {data} and a bare JSON value.
func (uc *MockUsecase) normalizeLegacy(file repository.LegacyMockFile) (model.Mock, error) {
	content := bytes.TrimSpace(file.Content)
	if bytes.Equal(content, []byte("null")) {
		return model.Mock{}, fmt.Errorf("legacy mock %s is null", file.ID)
	}

	mock := model.Mock{
		ID:        file.ID,
		Name:      model.DefaultMockName(file.ID),
		Data:      content,
		URL:       model.MockURL(file.ID),
		CreatedAt: uc.now(),
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(content, &wrapper); err != nil || !model.IsTruthyJSON(wrapper["data"]) {
		return mock, nil
	}

	mock.Data = wrapper["data"]
	if name := wrapper["name"]; model.IsTruthyJSON(name) {
		mock.Name = jsonText(name)
		if created := wrapper["createdAt"]; model.IsTruthyJSON(created) {
			if ts, err := model.ParseTimestamp(jsonText(created)); err == nil {
				mock.CreatedAt = ts
			} else {
				uc.logger.Warn("Legacy mock has an unparseable createdAt, using the import time", "mockId", file.ID, "createdAt", jsonText(created))
			}
		}
	}
	return mock, nil
}

// Create stores a new mock. A string payload is parsed as JSON text.
func (uc *MockUsecase) Create(ctx context.Context, req CreateMockRequest) (*model.MockSummary, error) {
	uc.ensureMigrated(ctx)

	if !model.IsTruthyJSON(req.JSONData) {
		return nil, errors.NewValidationError(msgMockDataRequired)
	}
	data, err := decodeMockPayload(req.JSONData)
	if err != nil {
		return nil, errors.NewInvalidJSONError(msgMockInvalidJSON).WithCause(err)
	}

	var created model.Mock
	_, err = uc.repo.Update(ctx, func(mocks *[]model.Mock) (bool, error) {
		id, err := uniqueID(uc.newID, func(id string) bool { return indexOfMock(*mocks, id) != -1 })
		if err != nil {
			return false, err
		}

		name := req.Name
		if name == "" {
			name = model.DefaultMockName(id)
		}
		created = model.Mock{
			ID:        id,
			Name:      name,
			Data:      data,
			URL:       model.MockURL(id),
			CreatedAt: uc.now(),
		}
		*mocks = append(*mocks, created)
		return true, nil
	})
	if err != nil {
		uc.logger.Error("Failed to create mock", "error", err)
		return nil, err
	}

	summary := created.Summary()
	uc.logger.Info("Mock created", "mockId", created.ID, "name", created.Name)
	uc.events.publish(ctx, eventbus.EventTypeMockCreated, summary)
	return &summary, nil
}

// Get returns the payload of mock id.
func (uc *MockUsecase) Get(ctx context.Context, id string) (json.RawMessage, error) {
	uc.ensureMigrated(ctx)

	mocks, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to read mocks", "error", err)
		return nil, err
	}
	index := indexOfMock(mocks, id)
	if index == -1 {
		return nil, errors.NewNotFoundMessage(msgMockNotFound)
	}
	return mocks[index].Data, nil
}

func (uc *MockUsecase) List(ctx context.Context) ([]model.MockSummary, error) {
	uc.ensureMigrated(ctx)

	mocks, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to read mocks", "error", err)
		return nil, err
	}

	summaries := make([]model.MockSummary, 0, len(mocks))
	for _, m := range mocks {
		summaries = append(summaries, m.Summary())
	}
	return summaries, nil
}

func (uc *MockUsecase) Delete(ctx context.Context, id string) error {
	uc.ensureMigrated(ctx)

	_, err := uc.repo.Update(ctx, func(mocks *[]model.Mock) (bool, error) {
		kept := make([]model.Mock, 0, len(*mocks))
		for _, m := range *mocks {
			if m.ID != id {
				kept = append(kept, m)
			}
		}
		if len(kept) == len(*mocks) {
			return false, errors.NewNotFoundMessage(msgMockNotFound)
		}
		*mocks = kept
		return true, nil
	})
	if err != nil {
		if !errors.IsClientError(err) {
			uc.logger.Error("Failed to delete mock", "mockId", id, "error", err)
		}
		return err
	}

	uc.logger.Info("Mock deleted", "mockId", id)
	uc.events.publish(ctx, eventbus.EventTypeMockDeleted, MockDeleted{MockID: id})
	return nil
}

// decodeMockPayload returns raw as compact JSON, first unwrapping a JSON string
// that holds JSON text.
func decodeMockPayload(raw json.RawMessage) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, err
		}
		raw = json.RawMessage(text)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// jsonText returns the string held by a JSON string, or the raw JSON text otherwise.
func jsonText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func indexOfMock(mocks []model.Mock, id string) int {
	for i, m := range mocks {
		if m.ID == id {
			return i
		}
	}
	return -1
}
