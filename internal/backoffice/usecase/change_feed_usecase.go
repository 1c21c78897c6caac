package usecase

import (
	"context"
	"encoding/json"

	"metadata-backoffice/internal/backoffice/domain/model"
	"metadata-backoffice/internal/backoffice/domain/repository"
	"metadata-backoffice/internal/shared/errors"
	"metadata-backoffice/internal/shared/eventbus"
	"metadata-backoffice/internal/shared/logger"
)

const (
	defaultChangeLimit = 50
	maxChangeLimit     = 500
)

// ChangeFeedUsecaseInterface serves the recorded history of mutations.
type ChangeFeedUsecaseInterface interface {
	Enabled() bool
	Recent(ctx context.Context, limit int) ([]model.ChangeEvent, error)
}

// ChangeFeedUsecase records bus events into the change log and reads them back.
type ChangeFeedUsecase struct {
	changeLog repository.ChangeLog
	logger    logger.Logger
}

var _ ChangeFeedUsecaseInterface = (*ChangeFeedUsecase)(nil)

// NewChangeFeedUsecase creates a change feed. changeLog may be nil, which disables history.
func NewChangeFeedUsecase(changeLog repository.ChangeLog, log logger.Logger) *ChangeFeedUsecase {
	return &ChangeFeedUsecase{
		changeLog: changeLog,
		logger:    log.WithComponent("change_feed"),
	}
}

// Enabled reports whether a change log is configured.
func (uc *ChangeFeedUsecase) Enabled() bool {
	return uc.changeLog != nil
}

// Record is an event bus handler that appends event to the change log.
func (uc *ChangeFeedUsecase) Record(ctx context.Context, event eventbus.Event) error {
	if uc.changeLog == nil {
		return nil
	}
	change, err := ToChangeEvent(event)
	if err != nil {
		uc.logger.Error("Failed to encode change event", "eventType", event.Type(), "error", err)
		return nil
	}
	_, err = uc.changeLog.Append(ctx, change)
	return err
}

// Recent returns up to limit events, newest first. limit is clamped to [1, 500]
// and defaults to 50.
func (uc *ChangeFeedUsecase) Recent(ctx context.Context, limit int) ([]model.ChangeEvent, error) {
	if uc.changeLog == nil {
		return nil, errors.NewNotFoundMessage("El registro de cambios no está habilitado").WithCause(errors.ErrChangeLogOffline)
	}

	switch {
	case limit <= 0:
		limit = defaultChangeLimit
	case limit > maxChangeLimit:
		limit = maxChangeLimit
	}

	events, err := uc.changeLog.Recent(ctx, limit)
	if err != nil {
		uc.logger.Error("Failed to read change log", "error", err)
		return nil, errors.NewStorageError("Failed to read change log").WithCause(err)
	}
	return events, nil
}

// ToChangeEvent converts a bus event into its stored and broadcast form.
func ToChangeEvent(event eventbus.Event) (model.ChangeEvent, error) {
	data, err := json.Marshal(event.Data())
	if err != nil {
		return model.ChangeEvent{}, err
	}
	return model.ChangeEvent{
		Type:      event.Type(),
		Source:    event.Source(),
		Data:      data,
		Timestamp: model.NewTimestamp(event.Timestamp()),
	}, nil
}
