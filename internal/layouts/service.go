package layouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"boletera/internal/events"
	"boletera/internal/pricing"
	"boletera/internal/shared/constants"
	"boletera/pkg/cache"
	"boletera/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeatTicketStatus is the live ticket state of one seat in one session
type SeatTicketStatus struct {
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// TicketSource answers which seats of a session have live tickets. The
// inventory module implements it; declaring it here keeps layouts from
// depending on inventory internals.
type TicketSource interface {
	SeatTicketStatuses(ctx context.Context, sessionID uuid.UUID) (map[uuid.UUID]SeatTicketStatus, error)
}

// Service interface for layout operations
type Service interface {
	GetLayout(ctx context.Context, id uuid.UUID) (*VenueLayout, error)
	GetSectionStats(ctx context.Context, layoutID, sessionID uuid.UUID) (*SectionStatsResponse, error)
	Sync(ctx context.Context, layoutID uuid.UUID, req *SyncRequest) (*SyncReport, error)
}

type service struct {
	repo    Repository
	events  events.Repository
	pricing pricing.Service
	tickets TicketSource
	cache   cache.Service
	logger  *logger.Logger
	holdTTL time.Duration
}

// NewService creates a new layout service
func NewService(repo Repository, eventsRepo events.Repository, pricingService pricing.Service, tickets TicketSource, cacheService cache.Service, log *logger.Logger, holdTTL time.Duration) Service {
	return &service{
		repo:    repo,
		events:  eventsRepo,
		pricing: pricingService,
		tickets: tickets,
		cache:   cacheService,
		logger:  log,
		holdTTL: holdTTL,
	}
}

func (s *service) GetLayout(ctx context.Context, id uuid.UUID) (*VenueLayout, error) {
	return s.repo.GetLayoutByID(ctx, id)
}

func (s *service) GetSectionStats(ctx context.Context, layoutID, sessionID uuid.UUID) (*SectionStatsResponse, error) {
	var stats SectionStatsResponse
	key := constants.BuildSectionStatsKey(sessionID.String())
	err := s.cache.GetOrSet(ctx, key, constants.TTL_SECTION_STATS, func() (interface{}, error) {
		return s.computeSectionStats(ctx, layoutID, sessionID)
	}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *service) computeSectionStats(ctx context.Context, layoutID, sessionID uuid.UUID) (*SectionStatsResponse, error) {
	session, err := s.events.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	layout, err := s.repo.GetLayoutByID(ctx, layoutID)
	if err != nil {
		return nil, err
	}

	statuses, err := s.tickets.SeatTicketStatuses(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket statuses: %w", err)
	}

	resolver, err := s.pricing.ResolverForEvent(ctx, session.EventID)
	if err != nil {
		return nil, err
	}

	entries := make([]SectionStatsEntry, 0, len(layout.Sections))
	index := make(map[uuid.UUID]*SectionStatsEntry, len(layout.Sections))
	for i := range layout.Sections {
		section := &layout.Sections[i]
		quote := resolver.ResolveForSeat(pricing.SeatContext{
			SessionID: sessionID,
			SectionID: &section.ID,
			ZoneID:    section.ZoneID,
		})
		entries = append(entries, SectionStatsEntry{
			SectionID: section.ID,
			Name:      section.Name,
			Color:     section.Color,
			ZoneID:    section.ZoneID,
			Price:     quote,
		})
		index[section.ID] = &entries[len(entries)-1]
	}

	resp := &SectionStatsResponse{
		LayoutID:  layoutID,
		SessionID: sessionID,
	}

	// Every seat in the layout is scanned; a seat outside all section
	// polygons still counts toward the layout totals.
	for i := range layout.Seats {
		seat := &layout.Seats[i]
		resp.TotalSeats++

		status := SeatStatusAvailable
		if ts, ok := statuses[seat.ID]; ok {
			status = ts.Status
		} else if seat.Status == SeatStatusBlocked {
			status = SeatStatusBlocked
		}

		entry := index[uuid.Nil]
		if section := ClassifySeat(seat, layout.Sections); section != nil {
			entry = index[section.ID]
		}

		switch status {
		case SeatStatusSold:
			resp.SoldSeats++
			if entry != nil {
				entry.Sold++
				entry.Total++
			}
		case SeatStatusReserved:
			resp.ReservedSeats++
			if entry != nil {
				entry.Reserved++
				entry.Total++
			}
		case SeatStatusBlocked:
			resp.BlockedSeats++
			if entry != nil {
				entry.Blocked++
				entry.Total++
			}
		default:
			resp.AvailableSeats++
			if entry != nil {
				entry.Available++
				entry.Total++
			}
		}
	}

	resp.Sections = entries
	return resp, nil
}

func (s *service) Sync(ctx context.Context, layoutID uuid.UUID, req *SyncRequest) (*SyncReport, error) {
	layout, err := s.repo.GetLayoutByID(ctx, layoutID)
	if err != nil {
		return nil, err
	}

	if !req.Force && layout.Version != req.ExpectedVersion {
		return nil, &VersionConflictError{
			CurrentVersion:   layout.Version,
			RequestedVersion: req.ExpectedVersion,
			LastEditedBy:     layout.LastEditedBy,
		}
	}

	prot, err := s.repo.GetProtection(ctx, layoutID, s.holdTTL)
	if err != nil {
		return nil, err
	}

	plan := BuildSyncPlan(layout, req, prot)

	expectedVersion := layout.Version
	if req.Force {
		expectedVersion = -1
	}

	newVersion, err := s.repo.ApplySyncPlan(ctx, layoutID, expectedVersion, req.Name, req.EditedBy, plan)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Lost the optimistic race between loading and applying
			current, loadErr := s.repo.GetLayoutByID(ctx, layoutID)
			if loadErr != nil {
				return nil, loadErr
			}
			return nil, &VersionConflictError{
				CurrentVersion:   current.Version,
				RequestedVersion: req.ExpectedVersion,
				LastEditedBy:     current.LastEditedBy,
			}
		}
		return nil, fmt.Errorf("failed to apply layout sync: %w", err)
	}

	_ = s.cache.Delete(ctx, constants.BuildVenueLayoutKey(layout.VenueID.String()))
	_ = s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_LAYOUTS_ALL)
	_ = s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_SEAT_MAPS)

	report := plan.Report
	report.Version = newVersion

	s.logger.LogLayoutSynced(ctx, layout.VenueID.String(), newVersion,
		report.Seats.Created, report.Seats.Updated, report.Seats.Deleted, report.Seats.Protected)

	return &report, nil
}
