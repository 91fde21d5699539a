package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"roam/config"
	"roam/infras/kafka"
	"roam/infras/otel"
	"roam/internal/domains/booking/model"
	"roam/internal/domains/booking/model/dto"
	"roam/internal/domains/booking/repository"
	hotelModel "roam/internal/domains/hotel/model"
	hotelRepo "roam/internal/domains/hotel/repository"
	"roam/shared"
	"roam/shared/cache"
	"roam/shared/constant"
	gDto "roam/shared/dto"
	"roam/shared/failure"
	"roam/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheHotelPrefix   = "hotel"

	eventBookingCreated   = "booking.created"
	eventBookingCancelled = "booking.cancelled"

	referencePrefix = "BK"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) error
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) error
}

type serviceImpl struct {
	repo      repository.Booking
	hotelRepo hotelRepo.Hotel
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	kafka     kafka.Client
}

func New(repo repository.Booking, hotelRepo hotelRepo.Hotel, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client) Booking {
	return &serviceImpl{
		repo:      repo,
		hotelRepo: hotelRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		kafka:     kafka,
	}
}

// CalculateNights counts whole days between two date-only values.
func CalculateNights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// CalculateTotalPrice prices a stay at the hotel's current nightly rate.
func CalculateTotalPrice(pricePerNight float64, rooms, nights int) float64 {
	return pricePerNight * float64(rooms) * float64(nights)
}

// NewBookingReference builds the human-shareable reference: a timestamp plus
// a random suffix, upper-cased. Uniqueness is backed by the column's unique
// constraint.
func NewBookingReference() string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		suffix = []byte(fmt.Sprintf("%04d", timezone.Now().Nanosecond()%10000))
	}

	return strings.ToUpper(fmt.Sprintf("%s%d%s", referencePrefix, timezone.Now().UnixMilli(), hex.EncodeToString(suffix)))
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := shared.UserScope(ctx)

	checkIn, checkOut, err := req.StayDates()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err))
	}

	if !checkOut.After(checkIn) {
		return res, failure.BadRequestFromString("check_out_date must be after check_in_date")
	}

	today, _ := timezone.Parse(constant.StayDateFormat, timezone.Now().Format(constant.StayDateFormat))
	if checkIn.Before(today) {
		return res, failure.BadRequestFromString("check_in_date cannot be in the past")
	}

	hotel, err := s.hotelRepo.Get(ctx, shared.FilterByID(req.HotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty || !hotel.Active {
		return res, failure.NotFound("hotel not found")
	}

	nights := CalculateNights(checkIn, checkOut)
	totalPrice := CalculateTotalPrice(hotel.PricePerNight, req.NumberOfRooms, nights)
	booking := req.ToModel(user, NewBookingReference(), checkIn, checkOut, nights, totalPrice)

	// The reservation and the booking row commit or roll back together. The
	// conditional decrement inside ReserveRoomsTx is what keeps two racing
	// requests from overselling the last room.
	tx, err := s.hotelRepo.BeginTx(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin booking transaction")

		return res, fmt.Errorf("failed to begin booking transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err = s.hotelRepo.ReserveRoomsTx(ctx, tx, req.HotelID, req.NumberOfRooms); err != nil {
		if errors.Is(err, hotelRepo.ErrNoCapacity) {
			return res, failure.BadRequestFromString("insufficient rooms available")
		}

		log.Error().Err(err).Msg("failed to reserve rooms")

		return res, fmt.Errorf("failed to reserve rooms: %w", err)
	}

	if err = s.repo.InsertTx(ctx, tx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit booking transaction")

		return res, fmt.Errorf("failed to commit booking transaction: %w", err)
	}

	res.FromModel(booking)
	res.HotelName = hotel.Name
	res.HotelCity = hotel.City

	s.invalidate(ctx, booking.ID)
	s.publishEvent(ctx, eventBookingCreated, booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
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
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
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
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getOwned(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	user, role := shared.UserScope(ctx)

	booking, err := s.getOwned(ctx, id)
	if err != nil {
		return err
	}

	if booking.IsFinal() && !shared.HasRole(role, constant.RoleAdmin) {
		return failure.BadRequestFromString(fmt.Sprintf("booking in status %q cannot be updated", booking.Status))
	}

	// A cancelled booking holds no reservation, its rooms were restored at
	// cancellation. Stay changes would reconcile inventory that is not held.
	if req.ChangesStay() && booking.Status == constant.BookingStatusCancelled {
		return failure.BadRequestFromString("stay details of a cancelled booking cannot be changed")
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	updatedFields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if req.ContactEmail != nil {
		updatedFields[model.FieldContactEmail] = *req.ContactEmail
	}

	if req.ContactPhone != nil {
		updatedFields[model.FieldContactPhone] = *req.ContactPhone
	}

	if req.SpecialRequests != nil {
		updatedFields[model.FieldSpecialRequests] = *req.SpecialRequests
	}

	if req.NumberOfGuests != nil {
		updatedFields[model.FieldNumberOfGuests] = *req.NumberOfGuests
	}

	if !req.ChangesStay() {
		if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
			log.Error().Err(err).Msg("failed to update booking")

			return fmt.Errorf("failed to update booking: %w", err)
		}

		s.invalidate(ctx, id)

		return nil
	}

	checkIn := booking.CheckInDate
	checkOut := booking.CheckOutDate
	rooms := booking.NumberOfRooms

	if req.CheckInDate != nil {
		if checkIn, err = timezone.Parse(constant.StayDateFormat, *req.CheckInDate); err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err))
		}
	}

	if req.CheckOutDate != nil {
		if checkOut, err = timezone.Parse(constant.StayDateFormat, *req.CheckOutDate); err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err))
		}
	}

	if req.NumberOfRooms != nil {
		rooms = *req.NumberOfRooms
	}

	if !checkOut.After(checkIn) {
		return failure.BadRequestFromString("check_out_date must be after check_in_date")
	}

	hotel, err := s.hotelRepo.Get(ctx, shared.FilterByID(booking.HotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty || !hotel.Active {
		return failure.NotFound("hotel not found")
	}

	nights := CalculateNights(checkIn, checkOut)
	updatedFields[model.FieldCheckInDate] = checkIn
	updatedFields[model.FieldCheckOutDate] = checkOut
	updatedFields[model.FieldNights] = nights
	updatedFields[model.FieldNumberOfRooms] = rooms
	updatedFields[model.FieldTotalPrice] = CalculateTotalPrice(hotel.PricePerNight, rooms, nights)

	// Release-then-reacquire: the old reservation is returned and the new one
	// attempted inside one transaction. If the new reservation cannot be
	// satisfied the whole update rolls back, old reservation included.
	tx, err := s.hotelRepo.BeginTx(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin update transaction")

		return fmt.Errorf("failed to begin update transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err = s.hotelRepo.ReleaseRoomsTx(ctx, tx, booking.HotelID, booking.NumberOfRooms); err != nil {
		log.Error().Err(err).Msg("failed to release rooms")

		return fmt.Errorf("failed to release rooms: %w", err)
	}

	if err = s.hotelRepo.ReserveRoomsTx(ctx, tx, booking.HotelID, rooms); err != nil {
		if errors.Is(err, hotelRepo.ErrNoCapacity) {
			return failure.BadRequestFromString("insufficient rooms available")
		}

		log.Error().Err(err).Msg("failed to reserve rooms")

		return fmt.Errorf("failed to reserve rooms: %w", err)
	}

	if err = s.repo.UpdateWhereStatusTx(ctx, tx, id, []string{booking.Status}, updatedFields); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return failure.Conflict("booking was modified concurrently, retry the update")
		}

		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit update transaction")

		return fmt.Errorf("failed to commit update transaction: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := shared.UserScope(ctx)

	booking, err := s.getOwned(ctx, id)
	if err != nil {
		return err
	}

	if !booking.CanBeCancelled() {
		return failure.BadRequestFromString(fmt.Sprintf("booking in status %q cannot be cancelled", booking.Status))
	}

	updatedFields := map[string]any{
		model.FieldStatus:           constant.BookingStatusCancelled,
		model.FieldCancellationDate: timezone.Now(),
		constant.FieldModifiedAt:    timezone.Now(),
		constant.FieldModifiedBy:    user,
	}

	if req.CancellationReason != nil {
		updatedFields[model.FieldCancellationReason] = *req.CancellationReason
	}

	tx, err := s.hotelRepo.BeginTx(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin cancel transaction")

		return fmt.Errorf("failed to begin cancel transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// The status flip is guarded on the cancellable statuses, so of two
	// concurrent cancels only one flips the row and restores the rooms.
	cancellable := []string{constant.BookingStatusPending, constant.BookingStatusConfirmed}
	if err = s.repo.UpdateWhereStatusTx(ctx, tx, id, cancellable, updatedFields); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return failure.BadRequestFromString("booking can no longer be cancelled")
		}

		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	if err = s.hotelRepo.ReleaseRoomsTx(ctx, tx, booking.HotelID, booking.NumberOfRooms); err != nil {
		log.Error().Err(err).Msg("failed to restore rooms")

		return fmt.Errorf("failed to restore rooms: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit cancel transaction")

		return fmt.Errorf("failed to commit cancel transaction: %w", err)
	}

	s.invalidate(ctx, id)
	s.publishEvent(ctx, eventBookingCancelled, booking)

	return nil
}

// UpdateStatus is the explicit staff operation for lifecycle transitions the
// customer flow never performs: pending→confirmed→completed, plus payment
// status changes. Cancellation goes through Cancel, not here.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingStatusRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	user, _ := shared.UserScope(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found")
	}

	updatedFields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if req.Status != nil {
		if !validStatusTransition(booking.Status, *req.Status) {
			return failure.BadRequestFromString(fmt.Sprintf("cannot transition booking from %q to %q", booking.Status, *req.Status))
		}

		updatedFields[model.FieldStatus] = *req.Status
	}

	if req.PaymentStatus != nil {
		updatedFields[model.FieldPaymentStatus] = *req.PaymentStatus
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func validStatusTransition(from, to string) bool {
	switch from {
	case constant.BookingStatusPending:
		return to == constant.BookingStatusConfirmed
	case constant.BookingStatusConfirmed:
		return to == constant.BookingStatusCompleted
	default:
		return false
	}
}

// getOwned fetches a booking and enforces role scoping: customers only ever
// see their own records, staff see everything.
func (s *serviceImpl) getOwned(ctx context.Context, id string) (model.Booking, error) {
	user, role := shared.UserScope(ctx)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found")
	}

	if !shared.IsStaff(role) && booking.UserID != user {
		return booking, failure.ResourceRestrictedError
	}

	return booking, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheHotelPrefix)
	}()
}

type bookingEvent struct {
	Type             string    `json:"type"`
	BookingID        string    `json:"booking_id"`
	BookingReference string    `json:"booking_reference"`
	HotelID          string    `json:"hotel_id"`
	UserID           string    `json:"user_id"`
	NumberOfRooms    int       `json:"number_of_rooms"`
	OccurredAt       time.Time `json:"occurred_at"`
}

func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		event := bookingEvent{
			Type:             eventType,
			BookingID:        booking.ID,
			BookingReference: booking.BookingReference,
			HotelID:          booking.HotelID,
			UserID:           booking.UserID,
			NumberOfRooms:    booking.NumberOfRooms,
			OccurredAt:       timezone.Now(),
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, kafka.Message{
			Key:   booking.ID,
			Value: event,
		}); err != nil {
			log.Error().Err(err).Str("event", eventType).Msg("failed to publish booking event")
		}
	}()
}
