package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/internal/service/mocks"
	"github.com/shenikar/pilgrim_path/pkg/e"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestBookingService(t *testing.T) (*bookingService, *mocks.MockBookingRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockBookingRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	return NewBookingService(repoMock, logger).(*bookingService), repoMock
}

func TestCreateBooking_KeepsMatchingDetails(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestBookingService(t)
	ctx := context.Background()
	caller := models.Caller{ID: uuid.New(), Role: models.RoleUser}
	input := &models.Booking{
		Type:                 models.BookingAccommodation,
		AccommodationDetails: &models.AccommodationDetails{RoomID: uuid.New(), Guests: 2},
		TransportDetails:     &models.TransportDetails{VehicleType: "bus"},
		Status:               models.BookingConfirmed,
		ContactInfo:          models.ContactInfo{Name: "Asha", Phone: "+91 98765 43210"},
	}

	repoMock.EXPECT().Create(ctx, input).Return(nil)

	// Действие
	booking, err := svc.Create(ctx, caller, input)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, caller.ID, booking.UserID)
	assert.Nil(t, booking.TransportDetails)
	assert.NotNil(t, booking.AccommodationDetails)
	assert.Equal(t, "pending", booking.Payment.Status)
}

func TestCreateBooking_Validation(t *testing.T) {
	svc, _ := newTestBookingService(t)

	_, err := svc.Create(context.Background(), models.Caller{ID: uuid.New()}, &models.Booking{
		Type:    models.BookingTransport,
		Payment: models.Payment{Method: "cheque"},
	})

	var verr *e.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"transportDetails", "contactInfo.name", "contactInfo.phone", "payment.method"}, fields)
}

func TestUpdateBookingStatus_OwnerScope(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("user is scoped to own bookings", func(t *testing.T) {
		svc, repoMock := newTestBookingService(t)
		caller := models.Caller{ID: uuid.New(), Role: models.RoleUser}

		repoMock.EXPECT().
			UpdateStatus(ctx, id, &caller.ID, models.BookingCancelled).
			Return(nil, fmt.Errorf("update booking: %w", e.ErrNotFound))

		_, err := svc.UpdateStatus(ctx, caller, id, models.BookingCancelled)

		assert.ErrorIs(t, err, e.ErrNotFound)
	})

	t.Run("admin is not scoped", func(t *testing.T) {
		svc, repoMock := newTestBookingService(t)
		caller := models.Caller{ID: uuid.New(), Role: models.RoleAdmin}

		repoMock.EXPECT().
			UpdateStatus(ctx, id, nil, models.BookingConfirmed).
			Return(&models.Booking{ID: id, Status: models.BookingConfirmed}, nil)

		booking, err := svc.UpdateStatus(ctx, caller, id, models.BookingConfirmed)

		require.NoError(t, err)
		assert.Equal(t, models.BookingConfirmed, booking.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, _ := newTestBookingService(t)

		_, err := svc.UpdateStatus(ctx, models.Caller{ID: uuid.New()}, id, "refunded")

		assert.ErrorIs(t, err, e.ErrInvalidInput)
	})
}

func TestListBookings_AlwaysCallerScoped(t *testing.T) {
	svc, repoMock := newTestBookingService(t)
	ctx := context.Background()
	caller := models.Caller{ID: uuid.New(), Role: models.RoleAdmin}

	repoMock.EXPECT().
		List(ctx, models.BookingFilter{UserID: caller.ID, Page: 1, Limit: 10}).
		Return([]*models.Booking{{ID: uuid.New()}}, 1, nil)

	page, err := svc.List(ctx, caller, models.BookingFilter{UserID: uuid.New()})

	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 1, page.TotalPages)
}
