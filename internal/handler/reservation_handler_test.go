package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/accessway-travel/service-planner/internal/application"
	"github.com/accessway-travel/service-planner/internal/domain"
	"github.com/accessway-travel/service-planner/internal/domain/plan"
	"github.com/accessway-travel/service-planner/internal/domain/reservation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryRepo struct {
	byID map[uuid.UUID]*reservation.Reservation
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: make(map[uuid.UUID]*reservation.Reservation)}
}

func (m *memoryRepo) Save(_ context.Context, r *reservation.Reservation) error {
	m.byID[r.ID()] = r
	return nil
}

func (m *memoryRepo) Update(_ context.Context, r *reservation.Reservation) error {
	m.byID[r.ID()] = r
	return nil
}

func (m *memoryRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("Reservation", id.String())
	}
	return r, nil
}

func (m *memoryRepo) FindByNumber(_ context.Context, number string) (*reservation.Reservation, error) {
	for _, r := range m.byID {
		if r.Number() == number {
			return r, nil
		}
	}
	return nil, domain.NewNotFoundError("Reservation", number)
}

func (m *memoryRepo) FindByTravelerID(_ context.Context, travelerID uuid.UUID, _, _ int) ([]*reservation.Reservation, int64, error) {
	var out []*reservation.Reservation
	for _, r := range m.byID {
		if r.TravelerID() == travelerID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func newReservationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := application.NewReservationService(newMemoryRepo(), nil, zap.NewNop())

	r := gin.New()
	NewReservationHandler(service).RegisterRoutes(r.Group(""))
	return r
}

func reservationBody(t *testing.T, travelerID uuid.UUID) string {
	t.Helper()
	from := plan.Place{ID: "s1", Name: "Paris Gare de Lyon", Kind: plan.KindStation, Coordinates: plan.Coordinates{Lon: 2.3730, Lat: 48.8443}}
	to := plan.Place{ID: "s2", Name: "Marseille Saint-Charles", Kind: plan.KindStation, Coordinates: plan.Coordinates{Lon: 5.3802, Lat: 43.3027}}
	leg, err := plan.NewLeg(plan.ModeTrain, from, to, nil, 660_000, 190, 109.00)
	require.NoError(t, err)
	it, err := plan.NewItinerary([]plan.Leg{leg})
	require.NoError(t, err)

	body, err := json.Marshal(application.CreateReservationRequest{
		TravelerID:     travelerID,
		Itinerary:      &it,
		AssistanceNote: "ramp boarding",
	})
	require.NoError(t, err)
	return string(body)
}

func TestCreateReservationEndpoint(t *testing.T) {
	r := newReservationRouter()
	travelerID := uuid.New()

	w := postJSON(t, r, "/api/v1/reservations", reservationBody(t, travelerID))
	require.Equal(t, http.StatusCreated, w.Code)

	var dto application.ReservationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, "requested", dto.Status)
	assert.Equal(t, travelerID, dto.TravelerID)
	assert.NotEmpty(t, dto.ReservationNumber)

	// Fetch it back.
	get := httptest.NewRecorder()
	r.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/api/v1/reservations/"+dto.ID.String(), nil))
	assert.Equal(t, http.StatusOK, get.Code)
}

func TestCreateReservationEndpoint_MissingFields(t *testing.T) {
	r := newReservationRouter()

	w := postJSON(t, r, "/api/v1/reservations", `{"assistance_note": "ramp"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReservationEndpoint_NotFound(t *testing.T) {
	r := newReservationRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reservations/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reservations/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelReservationEndpoint(t *testing.T) {
	r := newReservationRouter()
	travelerID := uuid.New()

	created := postJSON(t, r, "/api/v1/reservations", reservationBody(t, travelerID))
	require.Equal(t, http.StatusCreated, created.Code)
	var dto application.ReservationDTO
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &dto))

	cancel := postJSON(t, r, fmt.Sprintf("/api/v1/reservations/%s/cancel", dto.ID),
		fmt.Sprintf(`{"traveler_id": %q, "reason": "plans changed"}`, travelerID))
	require.Equal(t, http.StatusOK, cancel.Code)

	var cancelled application.ReservationDTO
	require.NoError(t, json.Unmarshal(cancel.Body.Bytes(), &cancelled))
	assert.Equal(t, "cancelled", cancelled.Status)

	// Cancelling again conflicts.
	again := postJSON(t, r, fmt.Sprintf("/api/v1/reservations/%s/cancel", dto.ID),
		fmt.Sprintf(`{"traveler_id": %q, "reason": "twice"}`, travelerID))
	assert.Equal(t, http.StatusConflict, again.Code)
}

func TestListReservationsEndpoint(t *testing.T) {
	r := newReservationRouter()
	travelerID := uuid.New()

	for i := 0; i < 2; i++ {
		w := postJSON(t, r, "/api/v1/reservations", reservationBody(t, travelerID))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reservations?traveler_id="+travelerID.String(), nil))
	require.Equal(t, http.StatusOK, w.Code)

	var paged application.PagedReservations
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &paged))
	assert.Equal(t, int64(2), paged.Total)
	assert.Len(t, paged.Items, 2)

	missing := httptest.NewRecorder()
	r.ServeHTTP(missing, httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil))
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}
