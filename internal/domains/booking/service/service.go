package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/pricing"
	"lodge/internal/domains/booking/repository"
	roomModel "lodge/internal/domains/room/model"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	// Create reserves every requested room and persists the booking with
	// its priced lines as one atomic unit. Rooms are held the moment the
	// booking lands in pending, before any confirmation.
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)

	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)

	// UpdateStatus drives the booking lifecycle. Room side effects are
	// applied in the same transaction as the status write.
	UpdateStatus(ctx context.Context, id string, req dto.UpdateBookingStatusRequest) (dto.UpdateBookingStatusResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	producer kafka.Client
}

func New(repo repository.Booking, roomRepo roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, producer kafka.Client) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		producer: producer,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = req.ValidateFields(); err != nil {
		return res, err
	}

	checkIn, checkOut, err := req.ParseDates()
	if err != nil {
		return res, err
	}

	roomIDs := make([]string, 0, len(req.Rooms))
	seen := map[string]bool{}

	for _, selection := range req.Rooms {
		if seen[selection.RoomID] {
			return res, failure.BadRequestFromString(fmt.Sprintf("room %s selected more than once", selection.RoomID)) // nolint:wrapcheck
		}

		seen[selection.RoomID] = true
		roomIDs = append(roomIDs, selection.RoomID)
	}

	var booking model.Booking

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		rooms, err := s.roomRepo.LockTx(ctx, tx, roomIDs)
		if err != nil {
			return fmt.Errorf("failed to lock rooms: %w", err)
		}

		roomByID := make(map[string]roomModel.Room, len(rooms))
		for _, room := range rooms {
			roomByID[room.ID] = room
		}

		var (
			totalPrice    float64
			totalCapacity int
			lines         []model.BookingRoom
		)

		bookingID := uuid.NewString()

		for _, selection := range req.Rooms {
			room, found := roomByID[selection.RoomID]
			if !found {
				return failure.OfKind(failure.KindRoomNotFound, "room %s not found", selection.RoomID)
			}

			if room.Status != roomModel.StatusAvailable {
				return failure.OfKind(failure.KindRoomNotAvailable, "room %s is not available", room.RoomNumber)
			}

			overlapping, err := s.repo.CountOverlappingTx(ctx, tx, room.ID, checkIn, checkOut)
			if err != nil {
				return fmt.Errorf("failed to check overlapping bookings: %w", err)
			}

			if overlapping > 0 {
				return failure.OfKind(failure.KindRoomNotAvailable, "room %s is not available for the requested dates", room.RoomNumber)
			}

			quote, err := pricing.ComputeLineSubtotal(room.PriceWithBreakfast, room.PriceNoBreakfast, selection.BreakfastOption, selection.Quantity, checkIn, checkOut)
			if err != nil {
				return err
			}

			totalPrice += quote.Subtotal
			totalCapacity += selection.Quantity * room.Capacity

			lines = append(lines, model.BookingRoom{
				ID:              uuid.NewString(),
				BookingID:       bookingID,
				RoomID:          room.ID,
				RoomType:        room.RoomTypeName,
				Quantity:        selection.Quantity,
				BreakfastOption: selection.BreakfastOption,
				PricePerNight:   quote.PricePerNight,
				Subtotal:        quote.Subtotal,
			})
		}

		if totalCapacity < req.TotalGuests {
			return failure.OfKind(failure.KindInvalidQuantity, "selected rooms hold at most %d guests, got %d", totalCapacity, req.TotalGuests)
		}

		booking = req.ToModel(userID, userID, checkIn, checkOut, totalPrice)
		booking.ID = bookingID

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		if err := s.repo.InsertLinesTx(ctx, tx, lines); err != nil {
			return fmt.Errorf("failed to insert booking lines: %w", err)
		}

		// Hold the rooms immediately so a concurrent attempt loses before
		// this booking is ever confirmed.
		if err := s.roomRepo.UpdateStatusTx(ctx, tx, roomIDs, roomModel.StatusBooked, userID); err != nil {
			return fmt.Errorf("failed to hold rooms: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.publishEvent(c, model.NewCreatedEvent(booking))
		s.invalidateBookingCaches(c)
	}()

	res.BookingID = booking.ID
	res.TotalPrice = booking.TotalPrice
	res.Nights = booking.Nights()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	// Members only see their own bookings; a foreign id looks absent.
	if booking.ID == constant.Empty || (role != constant.RoleAdmin && booking.UserID != userID) {
		return res, failure.OfKind(failure.KindNotFound, "booking not found") // nolint:wrapcheck
	}

	lines, err := s.repo.GetLines(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking lines")

		return res, fmt.Errorf("failed to get booking lines: %w", err)
	}

	res.FromModel(booking, lines)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.GetAll(ctx, req, shared.FilterByID(userID, model.FieldUserID, model.TableName))
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateBookingStatusRequest) (res dto.UpdateBookingStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	newStatus, err := model.ParseStatus(req.Status)
	if err != nil {
		return res, err
	}

	var (
		booking    model.Booking
		prevStatus string
	)

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err = s.repo.GetForUpdateTx(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.OfKind(failure.KindNotFound, "booking not found")
		}

		prevStatus = booking.Status

		// Re-applying the current status is a no-op, not an error. A room
		// already freed must not be freed twice.
		if prevStatus == newStatus {
			return nil
		}

		if !model.CanTransition(prevStatus, newStatus) {
			return failure.OfKind(failure.KindTransitionFailed, "cannot transition booking from %s to %s", prevStatus, newStatus)
		}

		effect := model.RoomEffect(prevStatus, newStatus)

		var roomIDs []string

		if effect != constant.Empty {
			lines, err := s.repo.GetLinesTx(ctx, tx, id)
			if err != nil {
				return failure.OfKind(failure.KindTransitionFailed, "failed to load booking rooms: %v", err)
			}

			roomIDs = make([]string, 0, len(lines))
			for _, line := range lines {
				roomIDs = append(roomIDs, line.RoomID)
			}

			if len(roomIDs) > 0 {
				if _, err := s.roomRepo.LockTx(ctx, tx, roomIDs); err != nil {
					return failure.OfKind(failure.KindTransitionFailed, "failed to lock booking rooms: %v", err)
				}
			}
		}

		// Reactivating into the active set competes with bookings made after
		// the cancellation freed these rooms. The overlap check runs while
		// this booking is still cancelled, so it never counts itself.
		if prevStatus == model.StatusCancelled && model.IsActiveOccupancy(newStatus) {
			for _, roomID := range roomIDs {
				overlapping, err := s.repo.CountOverlappingTx(ctx, tx, roomID, booking.CheckIn, booking.CheckOut)
				if err != nil {
					return fmt.Errorf("failed to check overlapping bookings: %w", err)
				}

				if overlapping > 0 {
					return failure.OfKind(failure.KindRoomNotAvailable, "room %s is no longer available for the booked dates", roomID)
				}
			}
		}

		updatedFields := map[string]any{
			model.FieldStatus:        newStatus,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: userID,
		}

		if err := s.repo.UpdateTx(ctx, tx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return failure.OfKind(failure.KindTransitionFailed, "failed to update booking status: %v", err)
		}

		if effect != constant.Empty && len(roomIDs) > 0 {
			if err := s.roomRepo.UpdateStatusTx(ctx, tx, roomIDs, effect, userID); err != nil {
				return failure.OfKind(failure.KindTransitionFailed, "failed to update room status: %v", err)
			}
		}

		booking.Status = newStatus

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to update booking status")

		return res, err
	}

	if prevStatus != newStatus {
		go func() {
			c := context.WithoutCancel(ctx)

			s.publishEvent(c, model.NewStatusChangedEvent(booking, prevStatus))
			s.invalidateBookingCaches(c)

			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking cache")
			}
		}()
	}

	res.BookingID = booking.ID
	res.Status = booking.Status

	return res, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, event model.BookingEvent) {
	err := s.producer.SendMessages(ctx, s.cfg.Kafka.BookingTopic, kafka.Message{
		Key:   event.BookingID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("type", event.Type).Msg("failed to publish booking event")
	}
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(ctx, s.cache, cacheCountBooking)
}
