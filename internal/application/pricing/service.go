package pricing

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fresco-api/internal/application/dto"
	"github.com/jhoicas/fresco-api/internal/domain"
	"github.com/jhoicas/fresco-api/internal/domain/entity"
	"github.com/jhoicas/fresco-api/internal/domain/expiry"
	"github.com/jhoicas/fresco-api/internal/domain/repository"
	"github.com/jhoicas/fresco-api/pkg/logger"
)

// SuggestionService genera sugerencias de descuento para lotes próximos a
// vencer. Una corrida recorre los lotes elegibles, clasifica cada uno con el
// motor de vencimientos y persiste una sugerencia PENDING por lote con el
// ingreso estimado al precio rebajado.
//
// Idempotencia: correr dos veces sin aprobaciones intermedias no duplica
// sugerencias (se consulta la PENDING existente por lote). Corridas
// concurrentes (cron + disparo manual) se excluyen con un mutex por proceso.
type SuggestionService struct {
	batchRepo      repository.BatchRepository
	suggestionRepo repository.SuggestionRepository
	txRunner       TxRunner
	log            *logger.Logger

	running sync.Mutex
	nowFn   func() time.Time
}

// NewSuggestionService construye el servicio. nowFn nil usa time.Now
// (inyectable en tests para fijar el instante de referencia de la corrida).
func NewSuggestionService(
	batchRepo repository.BatchRepository,
	suggestionRepo repository.SuggestionRepository,
	txRunner TxRunner,
	log *logger.Logger,
	nowFn func() time.Time,
) *SuggestionService {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &SuggestionService{
		batchRepo:      batchRepo,
		suggestionRepo: suggestionRepo,
		txRunner:       txRunner,
		log:            log,
		nowFn:          nowFn,
	}
}

// EstimatedRevenue calcula cantidad × precio base × (1 − descuento/100).
func EstimatedRevenue(quantity int, basePrice decimal.Decimal, discountPct int) decimal.Decimal {
	factor := decimal.NewFromInt(100 - int64(discountPct)).Div(decimal.NewFromInt(100))
	return basePrice.Mul(decimal.NewFromInt(int64(quantity))).Mul(factor)
}

// Run ejecuta una corrida completa del servicio de precios.
//
// Política de fallos parciales: un error en un lote se registra y se cuenta,
// pero no aborta la corrida (un lote con datos malos no bloquea el análisis
// del resto). Solo el fallo del query inicial devuelve Success=false.
func (s *SuggestionService) Run(ctx context.Context) (*dto.PricingRunResponse, error) {
	if !s.running.TryLock() {
		return nil, domain.ErrRunInProgress
	}
	defer s.running.Unlock()

	today := s.nowFn()

	batches, err := s.batchRepo.ListEligible()
	if err != nil {
		s.log.Error().Err(err).Msg("precios: fallo el query de lotes elegibles")
		return &dto.PricingRunResponse{Success: false, Error: err.Error()}, nil
	}

	stats := dto.PricingRunStats{TotalEstimatedRevenue: decimal.Zero}
	var created []dto.SuggestionResponse

	for _, b := range batches {
		stats.Analyzed++

		// Lotes con descuento ya aplicado no se vuelven a sugerir.
		if b.Quantity <= 0 || b.DiscountPct > 0 {
			stats.Skipped++
			continue
		}

		days := expiry.DaysUntil(today, b.ExpiryDate)
		tier := expiry.DiscountTier(days)
		if days < 0 || tier == 0 {
			stats.Skipped++
			continue
		}

		pending, err := s.suggestionRepo.GetPendingByBatch(b.BatchID)
		if err != nil {
			s.log.Warn().Err(err).Str("batch_id", b.BatchID).Msg("precios: fallo consultar sugerencia pendiente, lote omitido")
			stats.Errors++
			continue
		}
		if pending != nil {
			stats.Skipped++
			continue
		}

		revenue := EstimatedRevenue(b.Quantity, b.BasePrice, tier)
		sug := &entity.DiscountSuggestion{
			ID:               uuid.New().String(),
			BatchID:          b.BatchID,
			DiscountPct:      tier,
			EstimatedRevenue: revenue,
			Status:           entity.SuggestionStatusPending,
			CreatedAt:        today,
			UpdatedAt:        today,
		}
		if err := s.suggestionRepo.Create(sug); err != nil {
			s.log.Warn().Err(err).Str("batch_id", b.BatchID).Msg("precios: fallo crear sugerencia")
			stats.Errors++
			continue
		}

		stats.Created++
		stats.TotalEstimatedRevenue = stats.TotalEstimatedRevenue.Add(revenue)
		created = append(created, toSuggestionResponse(sug))
	}

	// Presentación: mayor ingreso estimado primero.
	sort.SliceStable(created, func(i, j int) bool {
		return created[i].EstimatedRevenue.GreaterThan(created[j].EstimatedRevenue)
	})

	s.log.Info().
		Int("analyzed", stats.Analyzed).
		Int("created", stats.Created).
		Int("skipped", stats.Skipped).
		Int("errors", stats.Errors).
		Str("total_estimated_revenue", stats.TotalEstimatedRevenue.String()).
		Msg("precios: corrida finalizada")

	return &dto.PricingRunResponse{Success: true, Stats: stats, Suggestions: created}, nil
}

func toSuggestionResponse(s *entity.DiscountSuggestion) dto.SuggestionResponse {
	return dto.SuggestionResponse{
		ID:               s.ID,
		BatchID:          s.BatchID,
		DiscountPct:      s.DiscountPct,
		EstimatedRevenue: s.EstimatedRevenue,
		Status:           s.Status,
		ApprovedBy:       s.ApprovedBy,
		RejectionReason:  s.RejectionReason,
		ResolvedAt:       s.ResolvedAt,
		CreatedAt:        s.CreatedAt,
	}
}
