package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

// UnitService manages unit registration, lookup and the event history. All
// status movement beyond creation and receiving goes through the workflow
// engines.
type UnitService struct {
	db       *gorm.DB
	units    UnitRepository
	events   UnitEventRepository
	register *StatusRegister
}

// NewUnitService creates a new UnitService.
func NewUnitService(db *gorm.DB, units UnitRepository, events UnitEventRepository, register *StatusRegister) *UnitService {
	return &UnitService{db: db, units: units, events: events, register: register}
}

// Create registers a new unit. The VIN must be well formed and not already
// registered; a duplicate VIN is a conflict. New units default to
// PENDING_INSPECTION unless the caller supplies an explicit status (used
// when backfilling legacy units).
func (s *UnitService) Create(ctx context.Context, dto *model.CreateUnitDTO, userID *uuid.UUID) (*model.Unit, error) {
	var unit *model.Unit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		unit, err = s.createInTx(ctx, tx, dto, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *UnitService) createInTx(ctx context.Context, tx *gorm.DB, dto *model.CreateUnitDTO, userID *uuid.UUID) (*model.Unit, error) {
	vin := strings.ToUpper(strings.TrimSpace(dto.VIN))
	if !IsValidVIN(vin) {
		return nil, validationf("invalid VIN %q", dto.VIN)
	}

	existing, err := s.units.GetByVINInTx(ctx, tx, vin)
	if err == nil && existing != nil {
		return nil, conflictf("unit with VIN %s already exists", vin)
	}
	if err != nil && !IsNotFound(err) {
		return nil, err
	}

	status := dto.Status
	if status == "" {
		status = model.UnitStatusPendingInspection
	}

	unit := &model.Unit{
		VIN:           vin,
		StockNumber:   dto.StockNumber,
		DealerID:      dto.DealerID,
		ModelID:       dto.ModelID,
		ModelYear:     dto.ModelYear,
		ExteriorColor: dto.ExteriorColor,
		InteriorColor: dto.InteriorColor,
		ChassisType:   dto.ChassisType,
		EngineType:    dto.EngineType,
		GVWR:          dto.GVWR,
		Status:        status,
		ShipDate:      dto.ShipDate,
		ReceiveDate:   dto.ReceiveDate,
	}
	if err := s.units.CreateInTx(ctx, tx, unit); err != nil {
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}

	event := &model.UnitEvent{
		UnitID:      unit.ID,
		EventType:   model.EventTypeUnitCreated,
		EventDate:   time.Now().UTC(),
		Description: fmt.Sprintf("Unit registered with status %s", status),
		UserID:      userID,
	}
	if err := s.events.AppendInTx(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("failed to append unit event: %w", err)
	}

	slog.InfoContext(ctx, "unit created", "unit_id", unit.ID, "vin", unit.VIN, "status", status)
	return unit, nil
}

// GetByID returns one unit with its model and dealer loaded.
func (s *UnitService) GetByID(ctx context.Context, id uuid.UUID) (*model.Unit, error) {
	return s.units.GetByIDInTx(ctx, s.db, id)
}

// GetByVIN returns one unit by VIN.
func (s *UnitService) GetByVIN(ctx context.Context, vin string) (*model.Unit, error) {
	return s.units.GetByVINInTx(ctx, s.db, strings.ToUpper(strings.TrimSpace(vin)))
}

// List returns units matching the query plus paging metadata.
func (s *UnitService) List(ctx context.Context, query model.ListUnitsQuery) ([]model.Unit, *model.PageMeta, error) {
	units, total, err := s.units.ListInTx(ctx, s.db, query)
	if err != nil {
		return nil, nil, err
	}
	meta := &model.PageMeta{Total: total}
	if query.Offset != nil {
		meta.Offset = *query.Offset
	}
	if query.Limit != nil {
		meta.Limit = *query.Limit
	}
	return units, meta, nil
}

// Update edits a unit's descriptive attributes. Status is not touchable
// here.
func (s *UnitService) Update(ctx context.Context, id uuid.UUID, dto *model.UpdateUnitDTO) (*model.Unit, error) {
	var unit *model.Unit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		unit, err = s.units.GetByIDInTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if dto.StockNumber != nil {
			unit.StockNumber = *dto.StockNumber
		}
		if dto.DealerID != nil {
			unit.DealerID = dto.DealerID
		}
		if dto.ModelYear != nil {
			unit.ModelYear = *dto.ModelYear
		}
		if dto.ExteriorColor != nil {
			unit.ExteriorColor = *dto.ExteriorColor
		}
		if dto.InteriorColor != nil {
			unit.InteriorColor = *dto.InteriorColor
		}
		if dto.ChassisType != nil {
			unit.ChassisType = *dto.ChassisType
		}
		if dto.EngineType != nil {
			unit.EngineType = *dto.EngineType
		}
		if dto.GVWR != nil {
			unit.GVWR = *dto.GVWR
		}
		if dto.ShipDate != nil {
			unit.ShipDate = dto.ShipDate
		}
		if dto.ReceiveDate != nil {
			unit.ReceiveDate = dto.ReceiveDate
		}
		return s.units.UpdateInTx(ctx, tx, unit)
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// MarkReceived records a shipped unit arriving at the dealership and moves
// it to RECEIVED.
func (s *UnitService) MarkReceived(ctx context.Context, vin string, userID uuid.UUID) (*model.Unit, error) {
	var unit *model.Unit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		unit, err = s.markReceivedInTx(ctx, tx, vin, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "unit received", "unit_id", unit.ID, "vin", unit.VIN)
	return unit, nil
}

func (s *UnitService) markReceivedInTx(ctx context.Context, tx *gorm.DB, vin string, userID uuid.UUID) (*model.Unit, error) {
	unit, err := s.units.GetByVINInTx(ctx, tx, strings.ToUpper(strings.TrimSpace(vin)))
	if err != nil {
		return nil, err
	}
	if unit.Status != model.UnitStatusShipped {
		return nil, validationf("unit must be SHIPPED to be received, currently %s", unit.Status)
	}

	now := time.Now().UTC()
	unit.ReceiveDate = &now
	err = s.register.SetStatusInTx(ctx, tx, unit, model.UnitStatusReceived, &userID, &EventDetail{
		Description: "Unit received at dealership",
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// History returns the unit's event log, newest first. A limit of 0 means no
// limit.
func (s *UnitService) History(ctx context.Context, id uuid.UUID, limit int) ([]model.UnitEvent, error) {
	if _, err := s.units.GetByIDInTx(ctx, s.db, id); err != nil {
		return nil, err
	}
	return s.events.ListByUnitInTx(ctx, s.db, id, limit)
}

// IncomingForDealer lists a dealer's units that have shipped but are not yet
// through acceptance.
func (s *UnitService) IncomingForDealer(ctx context.Context, dealerID uuid.UUID) ([]model.Unit, error) {
	return s.units.ListByStatusesInTx(ctx, s.db, &dealerID, []model.UnitStatus{
		model.UnitStatusShipped,
		model.UnitStatusReceived,
		model.UnitStatusPendingAcceptance,
		model.UnitStatusInAcceptance,
	})
}
