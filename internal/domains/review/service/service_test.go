package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roam/config"
	"roam/infras/otel/mocks"
	bookingMocks "roam/internal/domains/booking/mocks"
	bookingModel "roam/internal/domains/booking/model"
	hotelMocks "roam/internal/domains/hotel/mocks"
	hotelModel "roam/internal/domains/hotel/model"
	reviewMocks "roam/internal/domains/review/mocks"
	"roam/internal/domains/review/model"
	"roam/internal/domains/review/model/dto"
	"roam/internal/domains/review/service"
	cacheMocks "roam/shared/cache/mocks"
	"roam/shared/constant"
	gModel "roam/shared/model"
	"roam/shared/timezone"
)

func TestReviewService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Review.EditGraceHours = 72

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockHotelRepo, mockBookingRepo, cfg, mockCache, mockOtel)

	activeHotel := hotelModel.Hotel{ID: "hotel-id-123", Active: true}

	tests := []struct {
		name      string
		req       dto.CreateReviewRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful review without booking",
			req:  dto.CreateReviewRequest{Rating: 5},
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeHotel, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "successful review tied to own booking",
			req: dto.CreateReviewRequest{
				BookingID: stringPtr("booking-id-123"),
				Rating:    4,
			},
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeHotel, nil)

				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{
						ID:      "booking-id-123",
						UserID:  "user-id-123",
						HotelID: "hotel-id-123",
					}, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "hotel not found",
			req:  dto.CreateReviewRequest{Rating: 5},
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hotelModel.Hotel{}, nil)
			},
			wantErr: true,
		},
		{
			name: "booking owned by someone else",
			req: dto.CreateReviewRequest{
				BookingID: stringPtr("booking-id-123"),
				Rating:    4,
			},
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeHotel, nil)

				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{
						ID:      "booking-id-123",
						UserID:  "other-user-789",
						HotelID: "hotel-id-123",
					}, nil)
			},
			wantErr: true,
		},
		{
			name: "booking belongs to another hotel",
			req: dto.CreateReviewRequest{
				BookingID: stringPtr("booking-id-123"),
				Rating:    4,
			},
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeHotel, nil)

				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{
						ID:      "booking-id-123",
						UserID:  "user-id-123",
						HotelID: "other-hotel-456",
					}, nil)
			},
			wantErr: true,
		},
		{
			name: "duplicate review",
			req:  dto.CreateReviewRequest{Rating: 5},
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeHotel, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := ctxWithUser("user-id-123", constant.RoleCustomer)
			err := svc.Create(ctx, tt.req, "hotel-id-123")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReviewService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Review.EditGraceHours = 72

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockHotelRepo, mockBookingRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		userID    string
		setupMock func()
		wantErr   bool
	}{
		{
			name:   "update within grace period",
			userID: "user-id-123",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testReview("user-id-123", timezone.Now().Add(-time.Hour)), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "grace period expired",
			userID: "user-id-123",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testReview("user-id-123", timezone.Now().Add(-100*time.Hour)), nil)
			},
			wantErr: true,
		},
		{
			name:   "not the author",
			userID: "other-user-789",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testReview("user-id-123", timezone.Now().Add(-time.Hour)), nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := ctxWithUser(tt.userID, constant.RoleCustomer)
			err := svc.Update(ctx, dto.UpdateReviewRequest{Rating: intPtr(3)}, "review-id-123")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReviewService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Review.EditGraceHours = 72

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockHotelRepo, mockBookingRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		userID    string
		role      string
		setupMock func()
		wantErr   bool
	}{
		{
			name:   "author deletes within grace period",
			userID: "user-id-123",
			role:   constant.RoleCustomer,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testReview("user-id-123", timezone.Now().Add(-time.Hour)), nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "author blocked after grace period",
			userID: "user-id-123",
			role:   constant.RoleCustomer,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testReview("user-id-123", timezone.Now().Add(-100*time.Hour)), nil)
			},
			wantErr: true,
		},
		{
			name:   "staff moderates any review",
			userID: "employee-id-456",
			role:   constant.RoleEmployee,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testReview("user-id-123", timezone.Now().Add(-100*time.Hour)), nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "review not found",
			userID: "user-id-123",
			role:   constant.RoleCustomer,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Review{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := ctxWithUser(tt.userID, tt.role)
			err := svc.Delete(ctx, "review-id-123")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func testReview(userID string, createdAt time.Time) model.Review {
	return model.Review{
		ID:      "review-id-123",
		UserID:  userID,
		HotelID: "hotel-id-123",
		Rating:  4,
		Metadata: gModel.Metadata{
			CreatedAt:  createdAt,
			ModifiedAt: createdAt,
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
