package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/anupamtiwari/homecraft-backend/internal/pricing"
	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
)

// Service exposes session cart operations.
type Service interface {
	Get(ctx context.Context, token string) (*View, error)
	Add(ctx context.Context, token string, input AddInput) (*View, error)
	Remove(ctx context.Context, token string, serviceID uuid.UUID) (*View, error)
	UpdateQuantity(ctx context.Context, token string, serviceID uuid.UUID, quantity int) (*View, error)
}

// AddInput is the validated payload to add or replace a cart line.
type AddInput struct {
	ServiceID        uuid.UUID
	SelectedServices []enums.ServiceType
	Quantity         int
}

type serviceReader interface {
	FindServiceByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
}

type service struct {
	store    *Store
	catalog  serviceReader
	maxLines int
}

// NewService constructs a cart service.
func NewService(store *Store, catalog serviceReader, maxLines int) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if maxLines <= 0 {
		maxLines = 25
	}
	return &service{store: store, catalog: catalog, maxLines: maxLines}, nil
}

func (s *service) Get(ctx context.Context, token string) (*View, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	lines, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	view := BuildView(token, lines)
	return &view, nil
}

func (s *service) Add(ctx context.Context, token string, input AddInput) (*View, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if len(input.SelectedServices) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one sub-service must be selected")
	}

	svc, err := s.catalog.FindServiceByID(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service is not available for booking")
	}

	line := Line{
		ServiceID:         svc.ID,
		ServiceName:       svc.Name,
		SelectedServices:  input.SelectedServices,
		Quantity:          input.Quantity,
		InstallationPrice: svc.InstallationPrice,
		DismantlingPrice:  svc.DismantlingPrice,
		RepairPrice:       svc.RepairPrice,
	}
	if err := validateSelection(line); err != nil {
		return nil, err
	}

	lines, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	if !hasLine(lines, svc.ID) && len(lines) >= s.maxLines {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("cart cannot exceed %d lines", s.maxLines))
	}

	lines = Upsert(lines, line)
	if err := s.store.Save(ctx, token, lines); err != nil {
		return nil, err
	}

	view := BuildView(token, lines)
	return &view, nil
}

func (s *service) Remove(ctx context.Context, token string, serviceID uuid.UUID) (*View, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	lines, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}

	remaining := RemoveLine(lines, serviceID)
	if len(remaining) != len(lines) {
		if err := s.store.Save(ctx, token, remaining); err != nil {
			return nil, err
		}
	}

	view := BuildView(token, remaining)
	return &view, nil
}

func (s *service) UpdateQuantity(ctx context.Context, token string, serviceID uuid.UUID, quantity int) (*View, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	lines, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}

	updated := false
	for i := range lines {
		if lines[i].ServiceID == serviceID {
			lines[i].Quantity = quantity
			updated = true
			break
		}
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service is not in the cart")
	}

	if err := s.store.Save(ctx, token, lines); err != nil {
		return nil, err
	}

	view := BuildView(token, lines)
	return &view, nil
}

// validateSelection rejects a selection whose matched prices are all missing
// while the service does carry other non-zero prices; the customer picked
// only sub-services this service does not offer.
func validateSelection(line Line) error {
	pl := line.PricingLine()
	if pricing.UnitAmount(pl.Prices, pl.Selected).IsPositive() {
		return nil
	}
	if serviceHasAnyPrice(pl.Prices) {
		return pkgerrors.New(pkgerrors.CodeValidation, "selected sub-services are not offered for this service")
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "service has no billable sub-services")
}

func serviceHasAnyPrice(prices pricing.SubServicePrices) bool {
	return (prices.Installation != nil && prices.Installation.IsPositive()) ||
		(prices.Dismantling != nil && prices.Dismantling.IsPositive()) ||
		(prices.Repair != nil && prices.Repair.IsPositive())
}

func hasLine(lines []Line, serviceID uuid.UUID) bool {
	for _, line := range lines {
		if line.ServiceID == serviceID {
			return true
		}
	}
	return false
}

func validateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	return nil
}
