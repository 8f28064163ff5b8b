package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fresco-api/internal/application/dto"
	"github.com/jhoicas/fresco-api/internal/domain"
	"github.com/jhoicas/fresco-api/internal/domain/entity"
	"github.com/jhoicas/fresco-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para artículos del catálogo.
// El alta es upsert por SKU: recibir el mismo SKU actualiza el artículo.
type ItemUseCase struct {
	itemRepo  repository.ItemRepository
	batchRepo repository.BatchRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.ItemRepository, batchRepo repository.BatchRepository) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, batchRepo: batchRepo}
}

// Upsert crea el artículo o, si el SKU ya existe, actualiza nombre, categoría,
// precio base y unidad.
func (uc *ItemUseCase) Upsert(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.BasePrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.Item{
		ID:        uuid.New().String(),
		SKU:       in.SKU,
		Name:      in.Name,
		Category:  in.Category,
		BasePrice: in.BasePrice,
		Unit:      in.Unit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.itemRepo.Upsert(item); err != nil {
		return nil, err
	}
	// El upsert puede haber conservado el ID original; releer por SKU.
	saved, err := uc.itemRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	return toItemResponse(saved), nil
}

// GetByID obtiene un artículo por ID.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// Update actualiza un artículo existente (el SKU no cambia).
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.BasePrice != nil {
		if in.BasePrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item.BasePrice = *in.BasePrice
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista artículos con paginación.
func (uc *ItemUseCase) List(limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.itemRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un artículo. Un artículo con lotes asociados no se puede
// borrar (ErrItemReferenced): primero hay que agotar o eliminar sus lotes.
func (uc *ItemUseCase) Delete(id string) error {
	n, err := uc.batchRepo.CountByItem(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrItemReferenced
	}
	return uc.itemRepo.Delete(id)
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:        i.ID,
		SKU:       i.SKU,
		Name:      i.Name,
		Category:  i.Category,
		BasePrice: i.BasePrice,
		Unit:      i.Unit,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
