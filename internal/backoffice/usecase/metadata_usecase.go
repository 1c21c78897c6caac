package usecase

import (
	"context"
	"strings"

	"metadata-backoffice/internal/backoffice/domain/model"
	"metadata-backoffice/internal/backoffice/domain/repository"
	"metadata-backoffice/internal/shared/errors"
	"metadata-backoffice/internal/shared/eventbus"
	"metadata-backoffice/internal/shared/logger"
)

const (
	msgMissingFields     = "Faltan campos requeridos"
	msgInvalidValueJSON  = "El valor JSON no es válido"
	msgDuplicateMetadata = "Ya existe una llave con ese nombre para el país y dispositivo especificados"
	msgMetadataNotFound  = "Llave de configuración no encontrada"
)

// MetadataUsecase implements the metadata entry operations
type MetadataUsecase struct {
	repo   repository.MetadataRepository
	events eventPublisher
	logger logger.Logger
	now    func() model.Timestamp
	newID  func() string
}

// NewMetadataUsecase creates a new MetadataUsecase
func NewMetadataUsecase(repo repository.MetadataRepository, bus eventbus.EventBusInterface, log logger.Logger) *MetadataUsecase {
	return &MetadataUsecase{
		repo:   repo,
		events: eventPublisher{bus: bus, source: "metadata"},
		logger: log.WithComponent("metadata_usecase"),
		now:    model.Now,
		newID:  newMetadataID,
	}
}

func (uc *MetadataUsecase) GetAll(ctx context.Context, format string) (MetadataListing, error) {
	return uc.list(ctx, format, func(model.MetadataEntry) bool { return true })
}

// GetByCountry lists entries whose country matches case-insensitively.
func (uc *MetadataUsecase) GetByCountry(ctx context.Context, country, format string) (MetadataListing, error) {
	return uc.list(ctx, format, func(e model.MetadataEntry) bool {
		return strings.EqualFold(e.Country, country)
	})
}

// GetByCountryAndDevice lists entries whose country and device match case-insensitively.
func (uc *MetadataUsecase) GetByCountryAndDevice(ctx context.Context, country, device, format string) (MetadataListing, error) {
	return uc.list(ctx, format, func(e model.MetadataEntry) bool {
		return strings.EqualFold(e.Country, country) && strings.EqualFold(e.Device, device)
	})
}

func (uc *MetadataUsecase) list(ctx context.Context, format string, keep func(model.MetadataEntry) bool) (MetadataListing, error) {
	entries, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to read metadata", "error", err)
		return MetadataListing{}, err
	}

	filtered := make([]model.MetadataEntry, 0, len(entries))
	for _, e := range entries {
		if keep(e) {
			filtered = append(filtered, e)
		}
	}

	if format == model.FormatFull {
		return MetadataListing{Full: true, Entries: filtered}, nil
	}
	return MetadataListing{Projection: model.Project(filtered)}, nil
}

// Create validates req and appends a new entry.
func (uc *MetadataUsecase) Create(ctx context.Context, req MetadataRequest) (*model.MetadataEntry, error) {
	value, err := uc.validate(req)
	if err != nil {
		return nil, err
	}

	var created model.MetadataEntry
	_, err = uc.repo.Update(ctx, func(entries *[]model.MetadataEntry) (bool, error) {
		for _, e := range *entries {
			if e.SameSlot(req.Key, req.Country, req.Device) {
				return false, errors.NewDuplicateError(msgDuplicateMetadata)
			}
		}

		id, err := uniqueID(uc.newID, func(id string) bool { return indexOfEntry(*entries, id) != -1 })
		if err != nil {
			return false, err
		}

		now := uc.now()
		created = model.MetadataEntry{
			ID:          id,
			Key:         req.Key,
			Value:       value,
			Country:     req.Country,
			Device:      req.Device,
			Description: req.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		*entries = append(*entries, created)
		return true, nil
	})
	if err != nil {
		return nil, uc.fail("create", req.Key, err)
	}

	uc.logger.Info("Metadata entry created", "id", created.ID, "key", created.Key, "country", created.Country, "device", created.Device)
	uc.events.publish(ctx, eventbus.EventTypeMetadataCreated, created)
	return &created, nil
}

// Update replaces key, value, country and device of entry id. The description is
// kept when req carries an empty one.
func (uc *MetadataUsecase) Update(ctx context.Context, id string, req MetadataRequest) (*model.MetadataEntry, error) {
	value, err := uc.validate(req)
	if err != nil {
		return nil, err
	}

	var updated model.MetadataEntry
	_, err = uc.repo.Update(ctx, func(entries *[]model.MetadataEntry) (bool, error) {
		index := indexOfEntry(*entries, id)
		if index == -1 {
			return false, errors.NewNotFoundMessage(msgMetadataNotFound)
		}
		for i, e := range *entries {
			if i != index && e.SameSlot(req.Key, req.Country, req.Device) {
				return false, errors.NewDuplicateError(msgDuplicateMetadata)
			}
		}

		entry := &(*entries)[index]
		entry.Key = req.Key
		entry.Value = value
		entry.Country = req.Country
		entry.Device = req.Device
		if req.Description != "" {
			entry.Description = req.Description
		}
		entry.UpdatedAt = uc.now()
		updated = *entry
		return true, nil
	})
	if err != nil {
		return nil, uc.fail("update", id, err)
	}

	uc.logger.Info("Metadata entry updated", "id", id, "key", updated.Key)
	uc.events.publish(ctx, eventbus.EventTypeMetadataUpdated, updated)
	return &updated, nil
}

// Delete removes entry id and returns it.
func (uc *MetadataUsecase) Delete(ctx context.Context, id string) (*model.MetadataEntry, error) {
	var deleted model.MetadataEntry
	_, err := uc.repo.Update(ctx, func(entries *[]model.MetadataEntry) (bool, error) {
		index := indexOfEntry(*entries, id)
		if index == -1 {
			return false, errors.NewNotFoundMessage(msgMetadataNotFound)
		}
		deleted = (*entries)[index]
		*entries = append((*entries)[:index], (*entries)[index+1:]...)
		return true, nil
	})
	if err != nil {
		return nil, uc.fail("delete", id, err)
	}

	uc.logger.Info("Metadata entry deleted", "id", id, "key", deleted.Key)
	uc.events.publish(ctx, eventbus.EventTypeMetadataDeleted, MetadataDeleted{Deleted: deleted})
	return &deleted, nil
}

// validate checks the required fields and resolves JSON embedded in a text value.
func (uc *MetadataUsecase) validate(req MetadataRequest) (model.MetadataValue, error) {
	if req.Key == "" || !req.Value.IsTruthy() || req.Country == "" || req.Device == "" {
		return model.MetadataValue{}, errors.NewValidationError(msgMissingFields)
	}

	value, err := req.Value.ParseEmbeddedJSON()
	if err != nil {
		return model.MetadataValue{}, errors.NewInvalidJSONError(msgInvalidValueJSON).WithCause(err)
	}
	return value, nil
}

func (uc *MetadataUsecase) fail(op, ref string, err error) error {
	if !errors.IsClientError(err) {
		uc.logger.Error("Metadata operation failed", "operation", op, "error", err, "ref", ref)
	}
	return err
}

func indexOfEntry(entries []model.MetadataEntry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
