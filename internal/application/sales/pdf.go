package sales

import (
	"context"
	"fmt"

	"github.com/stratera/pos-api/internal/domain"
	"github.com/stratera/pos-api/internal/domain/entity"
	"github.com/stratera/pos-api/internal/domain/repository"
)

// ReceiptPDFGenerator renders a committed sale as a printable receipt.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, settings *entity.BusinessSettings) ([]byte, error)
}

// ReceiptPDFUseCase produces the downloadable PDF for a sale.
type ReceiptPDFUseCase struct {
	saleRepo     repository.SaleRepository
	settingsRepo repository.SettingsRepository
	generator    ReceiptPDFGenerator
}

// NewReceiptPDFUseCase builds the use case.
func NewReceiptPDFUseCase(saleRepo repository.SaleRepository, settingsRepo repository.SettingsRepository, generator ReceiptPDFGenerator) *ReceiptPDFUseCase {
	return &ReceiptPDFUseCase{saleRepo: saleRepo, settingsRepo: settingsRepo, generator: generator}
}

// DownloadReceiptPDF loads the sale with its items and renders the receipt.
func (uc *ReceiptPDFUseCase) DownloadReceiptPDF(ctx context.Context, saleID string) ([]byte, string, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt pdf: load sale: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}

	settings, err := uc.settingsRepo.Get()
	if err != nil {
		return nil, "", fmt.Errorf("receipt pdf: load settings: %w", err)
	}
	if settings == nil {
		settings = entity.DefaultSettings()
	}

	pdfBytes, err := uc.generator.GenerateReceiptPDF(ctx, sale, settings)
	if err != nil {
		return nil, "", fmt.Errorf("receipt pdf: generation failed: %w", err)
	}
	return pdfBytes, fmt.Sprintf("receipt_%s.pdf", sale.ReceiptNumber), nil
}
