package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roam/config"
	kafkaMocks "roam/infras/kafka/mocks"
	"roam/infras/otel/mocks"
	bookingMocks "roam/internal/domains/booking/mocks"
	"roam/internal/domains/booking/model"
	"roam/internal/domains/booking/model/dto"
	"roam/internal/domains/booking/repository"
	"roam/internal/domains/booking/service"
	hotelMocks "roam/internal/domains/hotel/mocks"
	hotelModel "roam/internal/domains/hotel/model"
	hotelRepository "roam/internal/domains/hotel/repository"
	cacheMocks "roam/shared/cache/mocks"
	"roam/shared/constant"
	gModel "roam/shared/model"
	"roam/shared/timezone"
)

func TestCalculateNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{
			name:     "single night",
			checkIn:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
			want:     1,
		},
		{
			name:     "three nights",
			checkIn:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			want:     3,
		},
		{
			name:     "same day",
			checkIn:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.CalculateNights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestCalculateTotalPrice(t *testing.T) {
	assert.Equal(t, 600.0, service.CalculateTotalPrice(100.0, 2, 3))
	assert.Equal(t, 149.5, service.CalculateTotalPrice(149.5, 1, 1))
	assert.Equal(t, 0.0, service.CalculateTotalPrice(100.0, 2, 0))
}

func TestNewBookingReference(t *testing.T) {
	seen := make(map[string]bool)

	for range 100 {
		ref := service.NewBookingReference()

		assert.True(t, strings.HasPrefix(ref, "BK"))
		assert.Equal(t, strings.ToUpper(ref), ref)
		assert.False(t, seen[ref], "duplicate reference %s", ref)

		seen[ref] = true
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topics.BookingEvents = "booking-events"

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka)

	activeHotel := hotelModel.Hotel{
		ID:            "hotel-id-123",
		Name:          "Grand Plaza",
		City:          "Jakarta",
		PricePerNight: 100.0,
		Active:        true,
	}

	validReq := dto.CreateBookingRequest{
		HotelID:        "hotel-id-123",
		CheckInDate:    "2030-05-01",
		CheckOutDate:   "2030-05-04",
		NumberOfGuests: 2,
		NumberOfRooms:  2,
		ContactEmail:   "guest@example.com",
	}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "invalid date format",
			req: dto.CreateBookingRequest{
				HotelID:        "hotel-id-123",
				CheckInDate:    "not-a-date",
				CheckOutDate:   "2030-05-04",
				NumberOfGuests: 2,
				NumberOfRooms:  1,
				ContactEmail:   "guest@example.com",
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "check out not after check in",
			req: dto.CreateBookingRequest{
				HotelID:        "hotel-id-123",
				CheckInDate:    "2030-05-04",
				CheckOutDate:   "2030-05-04",
				NumberOfGuests: 2,
				NumberOfRooms:  1,
				ContactEmail:   "guest@example.com",
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "check in in the past",
			req: dto.CreateBookingRequest{
				HotelID:        "hotel-id-123",
				CheckInDate:    "2020-01-01",
				CheckOutDate:   "2020-01-03",
				NumberOfGuests: 2,
				NumberOfRooms:  1,
				ContactEmail:   "guest@example.com",
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "hotel not found",
			req:  validReq,
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hotelModel.Hotel{}, nil)
			},
			wantErr: true,
		},
		{
			name: "inactive hotel",
			req:  validReq,
			setupMock: func() {
				inactiveHotel := activeHotel
				inactiveHotel.Active = false

				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(inactiveHotel, nil)
			},
			wantErr: true,
		},
		{
			name: "hotel lookup error",
			req:  validReq,
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hotelModel.Hotel{}, errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "begin transaction error",
			req:  validReq,
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeHotel, nil)

				mockHotelRepo.EXPECT().
					BeginTx(gomock.Any()).
					Return(nil, errors.New("connection error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := ctxWithUser("user-id-123", constant.RoleCustomer)
			_, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka)

	ownedBooking := testBooking("booking-id-123", "user-id-123", constant.BookingStatusConfirmed)

	tests := []struct {
		name      string
		id        string
		userID    string
		role      string
		setupMock func()
		wantErr   bool
	}{
		{
			name:   "owner reads own booking",
			id:     "booking-id-123",
			userID: "user-id-123",
			role:   constant.RoleCustomer,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking, nil)
			},
			wantErr: false,
		},
		{
			name:   "staff reads any booking",
			id:     "booking-id-123",
			userID: "employee-id-456",
			role:   constant.RoleEmployee,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking, nil)
			},
			wantErr: false,
		},
		{
			name:   "customer cannot read another user's booking",
			id:     "booking-id-123",
			userID: "other-user-789",
			role:   constant.RoleCustomer,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking, nil)
			},
			wantErr: true,
		},
		{
			name:   "booking not found",
			id:     "missing-id",
			userID: "user-id-123",
			role:   constant.RoleCustomer,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name:   "repository error",
			id:     "booking-id-123",
			userID: "user-id-123",
			role:   constant.RoleCustomer,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := ctxWithUser(tt.userID, tt.role)
			result, err := svc.Get(ctx, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.id, result.ID)
			}
		})
	}
}

func TestBookingService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka)

	pendingBooking := testBooking("booking-id-123", "user-id-123", constant.BookingStatusPending)
	completedBooking := testBooking("booking-id-123", "user-id-123", constant.BookingStatusCompleted)

	tests := []struct {
		name      string
		req       dto.UpdateBookingRequest
		role      string
		setupMock func()
		wantErr   bool
	}{
		{
			name:      "empty request",
			req:       dto.UpdateBookingRequest{},
			role:      constant.RoleCustomer,
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "completed booking cannot be updated by customer",
			req: dto.UpdateBookingRequest{
				ContactEmail: stringPtr("new@example.com"),
			},
			role: constant.RoleCustomer,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completedBooking, nil)
			},
			wantErr: true,
		},
		{
			name: "contact update succeeds",
			req: dto.UpdateBookingRequest{
				ContactEmail: stringPtr("new@example.com"),
			},
			role: constant.RoleCustomer,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "contact update repository error",
			req: dto.UpdateBookingRequest{
				ContactEmail: stringPtr("new@example.com"),
			},
			role: constant.RoleCustomer,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "stay change with invalid date",
			req: dto.UpdateBookingRequest{
				CheckInDate: stringPtr("not-a-date"),
			},
			role: constant.RoleCustomer,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking, nil)
			},
			wantErr: true,
		},
		{
			name: "stay change with check out before check in",
			req: dto.UpdateBookingRequest{
				CheckInDate:  stringPtr("2030-05-10"),
				CheckOutDate: stringPtr("2030-05-08"),
			},
			role: constant.RoleCustomer,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := ctxWithUser("user-id-123", tt.role)
			err := svc.Update(ctx, tt.req, "booking-id-123")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka)

	tests := []struct {
		name      string
		userID    string
		role      string
		setupMock func()
		wantErr   bool
	}{
		{
			name:   "cancelled booking cannot be cancelled again",
			userID: "user-id-123",
			role:   constant.RoleCustomer,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testBooking("booking-id-123", "user-id-123", constant.BookingStatusCancelled), nil)
			},
			wantErr: true,
		},
		{
			name:   "completed booking cannot be cancelled",
			userID: "user-id-123",
			role:   constant.RoleCustomer,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testBooking("booking-id-123", "user-id-123", constant.BookingStatusCompleted), nil)
			},
			wantErr: true,
		},
		{
			name:   "customer cannot cancel another user's booking",
			userID: "other-user-789",
			role:   constant.RoleCustomer,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testBooking("booking-id-123", "user-id-123", constant.BookingStatusPending), nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := ctxWithUser(tt.userID, tt.role)
			err := svc.Cancel(ctx, dto.CancelBookingRequest{}, "booking-id-123")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka)

	tests := []struct {
		name      string
		req       dto.UpdateBookingStatusRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name:      "empty request",
			req:       dto.UpdateBookingStatusRequest{},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "booking not found",
			req: dto.UpdateBookingStatusRequest{
				Status: stringPtr(constant.BookingStatusConfirmed),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name: "pending cannot jump to completed",
			req: dto.UpdateBookingStatusRequest{
				Status: stringPtr(constant.BookingStatusCompleted),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testBooking("booking-id-123", "user-id-123", constant.BookingStatusPending), nil)
			},
			wantErr: true,
		},
		{
			name: "pending to confirmed",
			req: dto.UpdateBookingStatusRequest{
				Status: stringPtr(constant.BookingStatusConfirmed),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testBooking("booking-id-123", "user-id-123", constant.BookingStatusPending), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "confirmed to completed",
			req: dto.UpdateBookingStatusRequest{
				Status: stringPtr(constant.BookingStatusCompleted),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testBooking("booking-id-123", "user-id-123", constant.BookingStatusConfirmed), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "payment status only",
			req: dto.UpdateBookingStatusRequest{
				PaymentStatus: stringPtr(constant.PaymentStatusPaid),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testBooking("booking-id-123", "user-id-123", constant.BookingStatusPending), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "repository update error",
			req: dto.UpdateBookingStatusRequest{
				Status: stringPtr(constant.BookingStatusConfirmed),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testBooking("booking-id-123", "user-id-123", constant.BookingStatusPending), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := ctxWithUser("employee-id-456", constant.RoleEmployee)
			err := svc.UpdateStatus(ctx, tt.req, "booking-id-123")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_CreateReservesRoomsAtomically(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Kafka.Topics.BookingEvents = "booking-events"

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka)

	tx, mock := newTestTx(t)
	mock.ExpectCommit()

	mockHotelRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(hotelModel.Hotel{
			ID:            "hotel-id-123",
			Name:          "Grand Plaza",
			City:          "Jakarta",
			PricePerNight: 100.0,
			Active:        true,
		}, nil)

	mockHotelRepo.EXPECT().
		BeginTx(gomock.Any()).
		Return(tx, nil)

	mockHotelRepo.EXPECT().
		ReserveRoomsTx(gomock.Any(), tx, "hotel-id-123", 2).
		Return(nil)

	var inserted model.Booking

	mockRepo.EXPECT().
		InsertTx(gomock.Any(), tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
			inserted = booking

			return nil
		})

	ctx := ctxWithUser("user-id-123", constant.RoleCustomer)
	result, err := svc.Create(ctx, dto.CreateBookingRequest{
		HotelID:        "hotel-id-123",
		CheckInDate:    "2030-05-01",
		CheckOutDate:   "2030-05-04",
		NumberOfGuests: 2,
		NumberOfRooms:  2,
		ContactEmail:   "guest@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, result.Nights)
	assert.Equal(t, 600.0, result.TotalPrice)
	assert.Equal(t, "Grand Plaza", result.HotelName)
	assert.Equal(t, constant.BookingStatusPending, inserted.Status)
	assert.Equal(t, "user-id-123", inserted.UserID)
	assert.True(t, strings.HasPrefix(inserted.BookingReference, "BK"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingService_CreateInsufficientRooms(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka)

	tx, mock := newTestTx(t)
	mock.ExpectRollback()

	mockHotelRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(hotelModel.Hotel{
			ID:            "hotel-id-123",
			PricePerNight: 100.0,
			Active:        true,
		}, nil)

	mockHotelRepo.EXPECT().
		BeginTx(gomock.Any()).
		Return(tx, nil)

	mockHotelRepo.EXPECT().
		ReserveRoomsTx(gomock.Any(), tx, "hotel-id-123", 3).
		Return(hotelRepository.ErrNoCapacity)

	ctx := ctxWithUser("user-id-123", constant.RoleCustomer)
	_, err := svc.Create(ctx, dto.CreateBookingRequest{
		HotelID:        "hotel-id-123",
		CheckInDate:    "2030-05-01",
		CheckOutDate:   "2030-05-04",
		NumberOfGuests: 2,
		NumberOfRooms:  3,
		ContactEmail:   "guest@example.com",
	})

	assert.ErrorContains(t, err, "insufficient rooms available")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingService_CancelRestoresRooms(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Kafka.Topics.BookingEvents = "booking-events"

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka)

	tx, mock := newTestTx(t)
	mock.ExpectCommit()

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(testBooking("booking-id-123", "user-id-123", constant.BookingStatusConfirmed), nil)

	mockHotelRepo.EXPECT().
		BeginTx(gomock.Any()).
		Return(tx, nil)

	mockRepo.EXPECT().
		UpdateWhereStatusTx(gomock.Any(), tx, "booking-id-123", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, _ string, statuses []string, fields map[string]any) error {
			assert.ElementsMatch(t, []string{constant.BookingStatusPending, constant.BookingStatusConfirmed}, statuses)
			assert.Equal(t, constant.BookingStatusCancelled, fields[model.FieldStatus])

			return nil
		})

	mockHotelRepo.EXPECT().
		ReleaseRoomsTx(gomock.Any(), tx, "hotel-id-123", 2).
		Return(nil)

	ctx := ctxWithUser("user-id-123", constant.RoleCustomer)
	err := svc.Cancel(ctx, dto.CancelBookingRequest{
		CancellationReason: stringPtr("change of plans"),
	}, "booking-id-123")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingService_UpdateStayRepricesAndReconciles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka)

	tx, mock := newTestTx(t)
	mock.ExpectCommit()

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(testBooking("booking-id-123", "user-id-123", constant.BookingStatusPending), nil)

	mockHotelRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(hotelModel.Hotel{
			ID:            "hotel-id-123",
			PricePerNight: 100.0,
			Active:        true,
		}, nil)

	mockHotelRepo.EXPECT().
		BeginTx(gomock.Any()).
		Return(tx, nil)

	mockHotelRepo.EXPECT().
		ReleaseRoomsTx(gomock.Any(), tx, "hotel-id-123", 2).
		Return(nil)

	mockHotelRepo.EXPECT().
		ReserveRoomsTx(gomock.Any(), tx, "hotel-id-123", 3).
		Return(nil)

	mockRepo.EXPECT().
		UpdateWhereStatusTx(gomock.Any(), tx, "booking-id-123", []string{constant.BookingStatusPending}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, _ string, _ []string, fields map[string]any) error {
			assert.Equal(t, 5, fields[model.FieldNights])
			assert.Equal(t, 3, fields[model.FieldNumberOfRooms])
			assert.Equal(t, 1500.0, fields[model.FieldTotalPrice])

			return nil
		})

	ctx := ctxWithUser("user-id-123", constant.RoleCustomer)
	err := svc.Update(ctx, dto.UpdateBookingRequest{
		CheckOutDate:  stringPtr("2030-05-06"),
		NumberOfRooms: intPtr(3),
	}, "booking-id-123")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingService_CancelLosesRaceReleasesRoomsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Kafka.Topics.BookingEvents = "booking-events"

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka)

	// Both cancels read the booking as still confirmed. Only the first one
	// flips the row; the loser's guarded update affects zero rows and its
	// transaction rolls back without touching inventory.
	tx1, mock1 := newTestTx(t)
	mock1.ExpectCommit()

	tx2, mock2 := newTestTx(t)
	mock2.ExpectRollback()

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(testBooking("booking-id-123", "user-id-123", constant.BookingStatusConfirmed), nil).
		Times(2)

	mockHotelRepo.EXPECT().BeginTx(gomock.Any()).Return(tx1, nil)
	mockHotelRepo.EXPECT().BeginTx(gomock.Any()).Return(tx2, nil)

	mockRepo.EXPECT().
		UpdateWhereStatusTx(gomock.Any(), tx1, "booking-id-123", gomock.Any(), gomock.Any()).
		Return(nil)
	mockRepo.EXPECT().
		UpdateWhereStatusTx(gomock.Any(), tx2, "booking-id-123", gomock.Any(), gomock.Any()).
		Return(repository.ErrStaleStatus)

	mockHotelRepo.EXPECT().
		ReleaseRoomsTx(gomock.Any(), tx1, "hotel-id-123", 2).
		Return(nil).
		Times(1)

	ctx := ctxWithUser("user-id-123", constant.RoleCustomer)

	err := svc.Cancel(ctx, dto.CancelBookingRequest{}, "booking-id-123")
	assert.NoError(t, err)

	err = svc.Cancel(ctx, dto.CancelBookingRequest{}, "booking-id-123")
	assert.ErrorContains(t, err, "can no longer be cancelled")

	assert.NoError(t, mock1.ExpectationsWereMet())
	assert.NoError(t, mock2.ExpectationsWereMet())
}

func TestBookingService_UpdateCancelledBookingStayRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka)

	// The rooms went back to the hotel when the booking was cancelled, so a
	// stay change must not run the release-then-reacquire reconciliation.
	// No reservation expectations are registered: any inventory call fails
	// the test.
	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(testBooking("booking-id-123", "user-id-123", constant.BookingStatusCancelled), nil)

	ctx := ctxWithUser("admin-id-123", constant.RoleAdmin)
	err := svc.Update(ctx, dto.UpdateBookingRequest{
		CheckOutDate:  stringPtr("2030-05-06"),
		NumberOfRooms: intPtr(3),
	}, "booking-id-123")

	assert.ErrorContains(t, err, "cancelled booking")
}

func newTestTx(t *testing.T) (*sqlx.Tx, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectBegin()

	tx, err := sqlx.NewDb(db, "postgres").Beginx()
	require.NoError(t, err)

	return tx, mock
}

func testBooking(id, userID, status string) model.Booking {
	return model.Booking{
		ID:               id,
		BookingReference: "BK1234ABCD",
		UserID:           userID,
		HotelID:          "hotel-id-123",
		CheckInDate:      time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate:     time.Date(2030, 5, 4, 0, 0, 0, 0, time.UTC),
		Nights:           3,
		NumberOfGuests:   2,
		NumberOfRooms:    2,
		TotalPrice:       600.0,
		Status:           status,
		PaymentStatus:    constant.PaymentStatusPending,
		ContactEmail:     "guest@example.com",
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

func ctxWithUser(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

// Helper function to create string pointer
func stringPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
