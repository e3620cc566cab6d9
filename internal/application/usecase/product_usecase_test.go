package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratera/pos-api/internal/application/usecase"
	"github.com/stratera/pos-api/internal/domain/entity"
	"github.com/stratera/pos-api/pkg/logger"
)

// searchSpyRepo records the arguments of the last Search call.
type searchSpyRepo struct {
	gotTerm     string
	gotCategory string
	gotLimit    int
	results     []*entity.Product
}

func (r *searchSpyRepo) Search(term, categoryID string, limit int) ([]*entity.Product, error) {
	r.gotTerm = term
	r.gotCategory = categoryID
	r.gotLimit = limit
	return r.results, nil
}

func (r *searchSpyRepo) Create(*entity.Product) error                   { return nil }
func (r *searchSpyRepo) GetByID(string) (*entity.Product, error)        { return nil, nil }
func (r *searchSpyRepo) GetByBarcode(string) (*entity.Product, error)   { return nil, nil }
func (r *searchSpyRepo) Update(*entity.Product) error                   { return nil }
func (r *searchSpyRepo) GetForUpdate(string) (*entity.Product, error)   { return nil, nil }
func (r *searchSpyRepo) UpdateStock(string, int) error                  { return nil }
func (r *searchSpyRepo) List(int, int) ([]*entity.Product, error)       { return nil, nil }
func (r *searchSpyRepo) ListActive() ([]*entity.Product, error)         { return nil, nil }
func (r *searchSpyRepo) SetActive(string, bool) error                   { return nil }

func TestSearch_CapsResultsAt50(t *testing.T) {
	price, _ := decimal.NewFromString("5.00")
	repo := &searchSpyRepo{results: []*entity.Product{
		{ID: "p1", Name: "Rice 5kg", Price: price, Stock: 10, IsActive: true},
	}}
	uc := usecase.NewProductUseCase(repo, nil, nil, logger.New(logger.Config{Level: "error"}))

	out, err := uc.Search(context.Background(), "  rice ", "cat-1")
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "rice", repo.gotTerm, "term is trimmed before the query")
	assert.Equal(t, "cat-1", repo.gotCategory)
	assert.Equal(t, 50, repo.gotLimit)
}
