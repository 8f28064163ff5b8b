package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fresco-api/internal/application/dto"
	"github.com/jhoicas/fresco-api/internal/domain"
	"github.com/jhoicas/fresco-api/internal/domain/entity"
	"github.com/jhoicas/fresco-api/internal/domain/expiry"
	"github.com/jhoicas/fresco-api/internal/domain/repository"
)

// BatchUseCase casos de uso CRUD para lotes. El estado inicial se calcula con
// el clasificador al momento de la recepción; después lo mantiene el monitor.
type BatchUseCase struct {
	batchRepo repository.BatchRepository
	itemRepo  repository.ItemRepository
	nowFn     func() time.Time
}

// NewBatchUseCase construye el caso de uso. nowFn nil usa time.Now.
func NewBatchUseCase(batchRepo repository.BatchRepository, itemRepo repository.ItemRepository, nowFn func() time.Time) *BatchUseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &BatchUseCase{batchRepo: batchRepo, itemRepo: itemRepo, nowFn: nowFn}
}

// Create registra la recepción de un lote. Valida que el artículo exista,
// que la cantidad no sea negativa y que ExpiryDate > DeliveryDate.
func (uc *BatchUseCase) Create(in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if in.ItemID == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	delivery, err := time.Parse("2006-01-02", in.DeliveryDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	expiryDate, err := time.Parse("2006-01-02", in.ExpiryDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	// Invariante del lote: vence estrictamente después de la entrega.
	if !expiryDate.After(delivery) {
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.nowFn()
	batch := &entity.Batch{
		ID:              uuid.New().String(),
		ItemID:          in.ItemID,
		Quantity:        in.Quantity,
		DeliveryDate:    delivery,
		ExpiryDate:      expiryDate,
		Status:          expiry.Status(expiry.DaysUntil(now, expiryDate)),
		DiscountPct:     0,
		SupplierBatchNo: in.SupplierBatchNo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.batchRepo.Create(batch); err != nil {
		return nil, err
	}
	return uc.toBatchResponse(batch), nil
}

// GetByID obtiene un lote por ID.
func (uc *BatchUseCase) GetByID(id string) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	return uc.toBatchResponse(batch), nil
}

// List lista lotes, opcionalmente filtrados por estado.
func (uc *BatchUseCase) List(status string, limit, offset int) (*dto.BatchListResponse, error) {
	switch status {
	case "", entity.BatchStatusActive, entity.BatchStatusExpiringSoon, entity.BatchStatusExpired:
	default:
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.batchRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *uc.toBatchResponse(b))
	}
	return &dto.BatchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update corrige cantidad o número de lote del proveedor. Las fechas y el
// descuento no se tocan por aquí (descuento = aprobación de sugerencia).
func (uc *BatchUseCase) Update(id string, in dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		batch.Quantity = *in.Quantity
	}
	if in.SupplierBatchNo != nil {
		batch.SupplierBatchNo = *in.SupplierBatchNo
	}
	batch.UpdatedAt = uc.nowFn()
	if err := uc.batchRepo.Update(batch); err != nil {
		return nil, err
	}
	return uc.toBatchResponse(batch), nil
}

// Delete elimina un lote (baja manual de personal).
func (uc *BatchUseCase) Delete(id string) error {
	return uc.batchRepo.Delete(id)
}

func (uc *BatchUseCase) toBatchResponse(b *entity.Batch) *dto.BatchResponse {
	if b == nil {
		return nil
	}
	return &dto.BatchResponse{
		ID:              b.ID,
		ItemID:          b.ItemID,
		Quantity:        b.Quantity,
		DeliveryDate:    b.DeliveryDate,
		ExpiryDate:      b.ExpiryDate,
		Status:          b.Status,
		DiscountPct:     b.DiscountPct,
		SupplierBatchNo: b.SupplierBatchNo,
		DaysUntilExpiry: expiry.DaysUntil(uc.nowFn(), b.ExpiryDate),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
