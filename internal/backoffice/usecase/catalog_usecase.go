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

// catalogText holds the user-facing messages for one catalog list.
type catalogText struct {
	nameRequired  string
	namesRequired string
	exists        string
	newExists     string
	notFound      string
	inUse         string
}

var catalogMessages = map[model.CatalogKind]catalogText{
	model.CatalogCountries: {
		nameRequired:  "El nombre del país es requerido",
		namesRequired: "Los nombres de país son requeridos",
		exists:        "El país ya existe",
		newExists:     "El nuevo nombre de país ya existe",
		notFound:      "País no encontrado",
		inUse:         "No se puede eliminar el país porque está siendo utilizado por una o más llaves de configuración",
	},
	model.CatalogDevices: {
		nameRequired:  "El nombre del dispositivo es requerido",
		namesRequired: "Los nombres de dispositivo son requeridos",
		exists:        "El dispositivo ya existe",
		newExists:     "El nuevo nombre de dispositivo ya existe",
		notFound:      "Dispositivo no encontrado",
		inUse:         "No se puede eliminar el dispositivo porque está siendo utilizado por una o más llaves de configuración",
	},
}

type catalogEventTypes struct {
	added, renamed, deleted string
}

var catalogEvents = map[model.CatalogKind]catalogEventTypes{
	model.CatalogCountries: {eventbus.EventTypeCatalogCountryAdded, eventbus.EventTypeCatalogCountryRenamed, eventbus.EventTypeCatalogCountryDeleted},
	model.CatalogDevices:   {eventbus.EventTypeCatalogDeviceAdded, eventbus.EventTypeCatalogDeviceRenamed, eventbus.EventTypeCatalogDeviceDeleted},
}

// CatalogUsecase implements the catalog operations
type CatalogUsecase struct {
	catalogRepo  repository.CatalogRepository
	metadataRepo repository.MetadataRepository
	events       eventPublisher
	logger       logger.Logger
	now          func() model.Timestamp
}

// NewCatalogUsecase creates a new CatalogUsecase
func NewCatalogUsecase(catalogRepo repository.CatalogRepository, metadataRepo repository.MetadataRepository, bus eventbus.EventBusInterface, log logger.Logger) *CatalogUsecase {
	return &CatalogUsecase{
		catalogRepo:  catalogRepo,
		metadataRepo: metadataRepo,
		events:       eventPublisher{bus: bus, source: "catalog"},
		logger:       log.WithComponent("catalog_usecase"),
		now:          model.Now,
	}
}

func (uc *CatalogUsecase) List(ctx context.Context, kind model.CatalogKind) ([]string, error) {
	catalog, err := uc.catalogRepo.Get(ctx)
	if err != nil {
		uc.logger.Error("Failed to read catalog", "error", err, "kind", kind)
		return nil, err
	}
	return cloneList(*catalog.List(kind)), nil
}

// Add appends name to the list for kind.
func (uc *CatalogUsecase) Add(ctx context.Context, kind model.CatalogKind, name string) ([]string, error) {
	text := catalogMessages[kind]
	if isBlank(name) {
		return nil, errors.NewValidationError(text.nameRequired)
	}

	catalog, err := uc.catalogRepo.Update(ctx, func(c *model.Catalog) (bool, error) {
		if c.IndexOf(kind, name) != -1 {
			return false, errors.NewDuplicateError(text.exists)
		}
		list := c.List(kind)
		*list = append(*list, name)
		return true, nil
	})
	if err != nil {
		return nil, uc.fail("add", kind, name, err)
	}

	uc.logger.Info("Catalog entry added", "kind", kind, "name", name)
	uc.events.publish(ctx, catalogEvents[kind].added, model.CatalogChange{Kind: kind, Name: name})
	return cloneList(*catalog.List(kind)), nil
}

// Rename replaces oldName with newName in place and renames every metadata
// reference that matches oldName exactly.
func (uc *CatalogUsecase) Rename(ctx context.Context, kind model.CatalogKind, oldName, newName string) ([]string, error) {
	text := catalogMessages[kind]
	if isBlank(oldName) || isBlank(newName) {
		return nil, errors.NewValidationError(text.namesRequired)
	}

	catalog, err := uc.catalogRepo.Update(ctx, func(c *model.Catalog) (bool, error) {
		index := c.IndexOf(kind, oldName)
		if index == -1 {
			return false, errors.NewNotFoundMessage(text.notFound)
		}
		if oldName != newName && c.IndexOf(kind, newName) != -1 {
			return false, errors.NewDuplicateError(text.newExists)
		}
		(*c.List(kind))[index] = newName
		return true, nil
	})
	if err != nil {
		return nil, uc.fail("rename", kind, oldName, err)
	}

	updated, err := uc.renameReferences(ctx, kind, oldName, newName)
	if err != nil {
		uc.logger.Error("Failed to rename metadata references", "error", err, "kind", kind, "oldName", oldName, "newName", newName)
		return nil, err
	}

	uc.logger.Info("Catalog entry renamed", "kind", kind, "oldName", oldName, "newName", newName, "metadataUpdated", updated)
	uc.events.publish(ctx, catalogEvents[kind].renamed, model.CatalogRename{
		Kind:            kind,
		OldName:         oldName,
		NewName:         newName,
		MetadataUpdated: updated,
	})
	return cloneList(*catalog.List(kind)), nil
}

// renameReferences rewrites the kind field of matching entries and refreshes their updatedAt.
// The metadata document is written only when an entry changed.
func (uc *CatalogUsecase) renameReferences(ctx context.Context, kind model.CatalogKind, oldName, newName string) (int, error) {
	updated := 0
	_, err := uc.metadataRepo.Update(ctx, func(entries *[]model.MetadataEntry) (bool, error) {
		now := uc.now()
		for i := range *entries {
			entry := &(*entries)[i]
			if field := entry.Field(kind); *field == oldName {
				*field = newName
				entry.UpdatedAt = now
				updated++
			}
		}
		return updated > 0, nil
	})
	return updated, err
}

// Delete removes name from the list for kind unless a metadata entry references it.
// The reference check is an exact, case-sensitive match.
func (uc *CatalogUsecase) Delete(ctx context.Context, kind model.CatalogKind, name string) ([]string, error) {
	text := catalogMessages[kind]

	catalog, err := uc.catalogRepo.Update(ctx, func(c *model.Catalog) (bool, error) {
		index := c.IndexOf(kind, name)
		if index == -1 {
			return false, errors.NewNotFoundMessage(text.notFound)
		}

		entries, err := uc.metadataRepo.List(ctx)
		if err != nil {
			return false, err
		}
		for i := range entries {
			if *entries[i].Field(kind) == name {
				return false, errors.NewInUseError(text.inUse)
			}
		}

		list := c.List(kind)
		*list = append((*list)[:index], (*list)[index+1:]...)
		return true, nil
	})
	if err != nil {
		return nil, uc.fail("delete", kind, name, err)
	}

	uc.logger.Info("Catalog entry deleted", "kind", kind, "name", name)
	uc.events.publish(ctx, catalogEvents[kind].deleted, model.CatalogChange{Kind: kind, Name: name})
	return cloneList(*catalog.List(kind)), nil
}

// fail logs storage failures; client errors are returned unlogged.
func (uc *CatalogUsecase) fail(op string, kind model.CatalogKind, name string, err error) error {
	if !errors.IsClientError(err) {
		uc.logger.Error("Catalog operation failed", "operation", op, "error", err, "kind", kind, "name", name)
	}
	return err
}

func cloneList(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
