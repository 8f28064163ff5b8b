package dto

import "time"

// CreateBatchRequest entrada para registrar la recepción de un lote.
// Las fechas llegan en formato YYYY-MM-DD.
type CreateBatchRequest struct {
	ItemID          string `json:"item_id" validate:"required"`
	Quantity        int    `json:"quantity" validate:"min=0"`
	DeliveryDate    string `json:"delivery_date" validate:"required"`
	ExpiryDate      string `json:"expiry_date" validate:"required"`
	SupplierBatchNo string `json:"supplier_batch_no"`
}

// UpdateBatchRequest entrada para corregir un lote (cantidad o número de proveedor).
type UpdateBatchRequest struct {
	Quantity        *int    `json:"quantity" validate:"omitempty,min=0"`
	SupplierBatchNo *string `json:"supplier_batch_no"`
}

// BatchResponse salida de un lote, con los días restantes ya calculados.
type BatchResponse struct {
	ID              string    `json:"id"`
	ItemID          string    `json:"item_id"`
	Quantity        int       `json:"quantity"`
	DeliveryDate    time.Time `json:"delivery_date"`
	ExpiryDate      time.Time `json:"expiry_date"`
	Status          string    `json:"status"`
	DiscountPct     int       `json:"discount_pct"`
	SupplierBatchNo string    `json:"supplier_batch_no,omitempty"`
	DaysUntilExpiry int       `json:"days_until_expiry"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BatchListResponse lista paginada de lotes.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
