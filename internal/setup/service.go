// AngelaMos | 2026
// service.go

package setup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/frohlich71/creator-builds-api/internal/core"
)

// OwnerProvider resolves setup owners without this package depending on
// the user package.
type OwnerProvider interface {
	ResolveOwner(ctx context.Context, name string) (*Owner, error)
	OwnerByID(ctx context.Context, id string) (*Owner, error)
}

// ProductResolver looks up catalog products by business key. A missing
// ASIN must surface as core.ErrNotFound, which the aggregate treats as a
// soft case.
type ProductResolver interface {
	FindByASIN(ctx context.Context, asin string) (*ProductRef, error)
}

// Service orchestrates the setup aggregate: a setup row plus its owned
// equipment rows plus their optional product references. All multi-row
// writes run inside one transaction, so a failed equipment insert rolls
// the whole setup back instead of leaving partial state.
type Service struct {
	runTx     func(context.Context, func(tx *sqlx.Tx) error) error
	setups    Repository
	equipment EquipmentRepository
	owners    OwnerProvider
	products  ProductResolver
}

func NewService(
	db *sqlx.DB,
	setups Repository,
	equipment EquipmentRepository,
	owners OwnerProvider,
	products ProductResolver,
) *Service {
	return &Service{
		runTx: func(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
			return core.InTx(ctx, db, fn)
		},
		setups:    setups,
		equipment: equipment,
		owners:    owners,
		products:  products,
	}
}

// resolveProducts looks up every supplied ASIN concurrently. Results land
// at the spec's index so input order is preserved; a miss leaves a nil
// slot and is logged, never returned as an error.
func (s *Service) resolveProducts(
	ctx context.Context,
	specs []EquipmentSpec,
) []*ProductRef {
	refs := make([]*ProductRef, len(specs))

	var wg sync.WaitGroup
	for i := range specs {
		if specs[i].ASIN == nil || *specs[i].ASIN == "" {
			continue
		}

		wg.Add(1)
		go func(i int, asin string) {
			defer wg.Done()

			ref, err := s.products.FindByASIN(ctx, asin)
			if err != nil {
				if !errors.Is(err, core.ErrNotFound) {
					slog.Warn("product lookup failed",
						"asin", asin,
						"error", err,
					)
				} else {
					slog.Info("equipment references unknown asin",
						"asin", asin,
					)
				}
				return
			}
			refs[i] = ref
		}(i, *specs[i].ASIN)
	}
	wg.Wait()

	return refs
}

func (s *Service) insertEquipment(
	ctx context.Context,
	tx *sqlx.Tx,
	setupID string,
	specs []EquipmentSpec,
	refs []*ProductRef,
) error {
	for i := range specs {
		e := &Equipment{
			ID:       uuid.New().String(),
			Name:     specs[i].Name,
			Nickname: specs[i].Nickname,
			Model:    specs[i].Model,
			Brand:    specs[i].Brand,
			Link:     specs[i].Link,
			Icon:     specs[i].Icon,
			SetupID:  setupID,
			Position: i,
		}
		if refs[i] != nil {
			e.ProductID = &refs[i].ID
		}

		if err := s.equipment.Insert(ctx, tx, e); err != nil {
			return err
		}
	}

	return nil
}

// CreateForUser creates a setup owned by the named user together with its
// equipment rows, in input order.
func (s *Service) CreateForUser(
	ctx context.Context,
	req CreateSetupRequest,
) (*SetupDetail, error) {
	owner, err := s.owners.ResolveOwner(ctx, req.OwnerName)
	if err != nil {
		return nil, fmt.Errorf("create setup: resolve owner: %w", err)
	}

	refs := s.resolveProducts(ctx, req.Equipments)

	setup := &Setup{
		ID:      uuid.New().String(),
		Name:    req.Name,
		OwnerID: owner.ID,
	}

	err = s.runTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.setups.Insert(ctx, tx, setup); err != nil {
			return err
		}
		return s.insertEquipment(ctx, tx, setup.ID, req.Equipments, refs)
	})
	if err != nil {
		return nil, fmt.Errorf("create setup: %w", err)
	}

	return s.hydrate(ctx, setup, nil)
}

// FindByUserID returns every setup owned by the user, each hydrated by a
// fresh equipment query.
func (s *Service) FindByUserID(
	ctx context.Context,
	userID string,
) ([]SetupDetail, error) {
	setups, err := s.setups.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find setups by user: %w", err)
	}

	details := make([]SetupDetail, 0, len(setups))
	for i := range setups {
		detail, err := s.hydrate(ctx, &setups[i], nil)
		if err != nil {
			return nil, fmt.Errorf("find setups by user: %w", err)
		}
		details = append(details, *detail)
	}

	return details, nil
}

// FindByID returns one setup hydrated with its owner projection and
// equipment list.
func (s *Service) FindByID(
	ctx context.Context,
	id string,
) (*SetupDetail, error) {
	setup, err := s.setups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.owners.OwnerByID(ctx, setup.OwnerID)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("find setup: resolve owner: %w", err)
	}

	return s.hydrate(ctx, setup, owner)
}

// UpdateByID replaces the whole aggregate: name, owner, and every
// equipment row. Equipment identities never survive an update.
func (s *Service) UpdateByID(
	ctx context.Context,
	id string,
	req UpdateSetupRequest,
) (*SetupDetail, error) {
	setup, err := s.setups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.owners.ResolveOwner(ctx, req.OwnerName)
	if err != nil {
		return nil, fmt.Errorf("update setup: resolve owner: %w", err)
	}

	refs := s.resolveProducts(ctx, req.Equipments)

	setup.Name = req.Name
	setup.OwnerID = owner.ID

	err = s.runTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.equipment.DeleteBySetup(ctx, tx, setup.ID); err != nil {
			return err
		}
		if err := s.setups.Update(ctx, tx, setup); err != nil {
			return err
		}
		return s.insertEquipment(ctx, tx, setup.ID, req.Equipments, refs)
	})
	if err != nil {
		return nil, fmt.Errorf("update setup: %w", err)
	}

	return s.hydrate(ctx, setup, nil)
}

// DeleteByID removes the setup and its equipment. Deleting a setup that
// does not exist is not an error; the result is simply nil.
func (s *Service) DeleteByID(
	ctx context.Context,
	id string,
) (*SetupDetail, error) {
	setup, err := s.setups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	detail, err := s.hydrate(ctx, setup, nil)
	if err != nil {
		return nil, fmt.Errorf("delete setup: %w", err)
	}

	err = s.runTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.equipment.DeleteBySetup(ctx, tx, setup.ID); err != nil {
			return err
		}
		return s.setups.Delete(ctx, tx, setup.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("delete setup: %w", err)
	}

	return detail, nil
}

func (s *Service) hydrate(
	ctx context.Context,
	setup *Setup,
	owner *Owner,
) (*SetupDetail, error) {
	equipment, err := s.equipment.ListBySetup(ctx, setup.ID)
	if err != nil {
		return nil, err
	}

	return &SetupDetail{
		ID:         setup.ID,
		Name:       setup.Name,
		OwnerID:    setup.OwnerID,
		Owner:      owner,
		CreatedAt:  setup.CreatedAt,
		Equipments: equipment,
	}, nil
}
