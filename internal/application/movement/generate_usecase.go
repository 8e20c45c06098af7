package movement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/depo-terminal/internal/application/ports"
	"github.com/jhoicas/depo-terminal/internal/domain"
	"github.com/jhoicas/depo-terminal/internal/domain/entity"
	"github.com/jhoicas/depo-terminal/internal/domain/movement"
	"github.com/jhoicas/depo-terminal/internal/domain/repository"
)

// GenerateUseCase arma el GenerateRequest desde la selección del operario y lo envía al ERP.
// Un fallo (validación, remoto o de transporte) deja la selección intacta; solo un envío
// aceptado la vacía.
type GenerateUseCase struct {
	gateway   ports.ERPGateway
	selection *SelectionUseCase
	builder   *movement.RequestBuilder
	txRunner  TxRunner
	generated repository.GeneratedDocumentRepository
	cache     CatalogInvalidator
	metrics   Recorder
	log       zerolog.Logger
	now       func() time.Time
}

// GenerateDeps dependencias opcionales de GenerateUseCase. Los campos nil se desactivan.
type GenerateDeps struct {
	TxRunner  TxRunner
	Generated repository.GeneratedDocumentRepository
	Cache     CatalogInvalidator
	Metrics   Recorder
	Logger    zerolog.Logger
}

// NewGenerateUseCase construye el caso de uso.
func NewGenerateUseCase(
	gateway ports.ERPGateway,
	selection *SelectionUseCase,
	builder *movement.RequestBuilder,
	deps GenerateDeps,
) *GenerateUseCase {
	if deps.Metrics == nil {
		deps.Metrics = NopRecorder{}
	}
	return &GenerateUseCase{
		gateway:   gateway,
		selection: selection,
		builder:   builder,
		txRunner:  deps.TxRunner,
		generated: deps.Generated,
		cache:     deps.Cache,
		metrics:   deps.Metrics,
		log:       deps.Logger,
		now:       time.Now,
	}
}

// Preview construye la petición sin enviarla. La cabecera se valida igual que al generar,
// pero una selección vacía no es error.
func (uc *GenerateUseCase) Preview(ctx context.Context, operatorID, docType string, form movement.HeaderForm) (entity.GenerateRequest, error) {
	rule, items, err := uc.prepare(operatorID, docType, form)
	if err != nil {
		return entity.GenerateRequest{}, err
	}
	return uc.builder.Build(rule, form, items), nil
}

// Generate valida, construye y envía el documento. Tras la aceptación guarda las claves de
// correlación en el registro local, vacía la selección e invalida el catálogo de la contraparte.
func (uc *GenerateUseCase) Generate(ctx context.Context, operatorID, docType string, form movement.HeaderForm) (entity.GenerateResult, error) {
	rule, items, err := uc.prepare(operatorID, docType, form)
	if err != nil {
		return entity.GenerateResult{}, err
	}
	if len(items) == 0 {
		return entity.GenerateResult{}, domain.ErrEmptySelection
	}

	req := uc.builder.Build(rule, form, items)
	logger := uc.log.With().
		Str("doc_type", docType).
		Str("operator", operatorID).
		Int("lines", len(req.Lines)).
		Logger()

	res, err := uc.gateway.GenerateDocument(ctx, docType, req)
	if err != nil {
		if domain.IsRemote(err) {
			logger.Warn().Err(err).Msg("el ERP rechazó el documento")
		} else {
			logger.Error().Err(err).Msg("fallo al generar documento")
		}
		return entity.GenerateResult{}, fmt.Errorf("generar documento: %w", err)
	}

	logger.Info().Int64("header_id", res.HeaderID).Str("document_no", res.DocumentNo).Msg("documento generado")
	uc.metrics.DocumentGenerated(docType)

	if uc.txRunner != nil {
		if err := uc.record(ctx, operatorID, req, res); err != nil {
			// El documento ya existe en el ERP: el registro local no revierte la operación.
			logger.Error().Err(err).Int64("header_id", res.HeaderID).Msg("no se pudo guardar el registro local")
		}
	}
	if err := uc.selection.Clear(operatorID, docType); err != nil {
		return res, err
	}
	if uc.cache != nil {
		uc.cache.Invalidate(docType, req.Header.CustomerCode)
	}
	return res, nil
}

func (uc *GenerateUseCase) prepare(operatorID, docType string, form movement.HeaderForm) (movement.DocumentRule, []entity.SelectedItem, error) {
	rule, err := movement.RuleFor(docType)
	if err != nil {
		return movement.DocumentRule{}, nil, err
	}
	items, err := uc.selection.List(operatorID, docType)
	if err != nil {
		return movement.DocumentRule{}, nil, err
	}
	if err := movement.ValidateForm(rule, form, items); err != nil {
		return movement.DocumentRule{}, nil, err
	}
	return rule, items, nil
}

func (uc *GenerateUseCase) record(ctx context.Context, operatorID string, req entity.GenerateRequest, res entity.GenerateResult) error {
	doc := &entity.GeneratedDocument{
		ID:           uuid.New().String(),
		DocumentType: req.Header.DocumentType,
		HeaderID:     res.HeaderID,
		DocumentNo:   res.DocumentNo,
		OperatorID:   operatorID,
		CustomerCode: req.Header.CustomerCode,
		CreatedAt:    uc.now(),
	}
	lines := make([]entity.GeneratedLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, entity.GeneratedLine{
			ClientKey:  l.ClientKey,
			ClientGuid: l.ClientGuid,
			StockCode:  l.StockCode,
			Quantity:   l.Quantity,
		})
	}
	return uc.txRunner.RunGenerated(ctx, func(docs repository.GeneratedDocumentRepository) error {
		if err := docs.Create(ctx, doc); err != nil {
			return err
		}
		return docs.CreateLines(ctx, doc.ID, lines)
	})
}

// History documentos generados por el operario (registro local).
func (uc *GenerateUseCase) History(ctx context.Context, operatorID string, limit, offset int) ([]*entity.GeneratedDocument, error) {
	if uc.generated == nil {
		return []*entity.GeneratedDocument{}, nil
	}
	return uc.generated.ListByOperator(ctx, operatorID, limit, offset)
}

// Correlation claves clientKey/clientGuid enviadas para el documento del ERP.
func (uc *GenerateUseCase) Correlation(ctx context.Context, headerID int64) (*entity.GeneratedDocument, error) {
	if uc.generated == nil {
		return nil, domain.ErrNotFound
	}
	doc, err := uc.generated.GetByHeaderID(ctx, headerID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}
