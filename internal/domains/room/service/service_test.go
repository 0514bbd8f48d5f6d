package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	roomMocks "lodge/internal/domains/room/mocks"
	"lodge/internal/domains/room/model"
	"lodge/internal/domains/room/model/dto"
	"lodge/internal/domains/room/service"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	"lodge/shared/failure"
)

type roomFixture struct {
	repo         *roomMocks.MockRoom
	roomTypeRepo *roomMocks.MockRoomType
	facilityRepo *roomMocks.MockFacility
	cache        *cacheMocks.MockRedisCache
	svc          service.Room
}

func newRoomFixture(t *testing.T) roomFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := roomMocks.NewMockRoom(ctrl)
	roomTypeRepo := roomMocks.NewMockRoomType(ctrl)
	facilityRepo := roomMocks.NewMockFacility(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return roomFixture{
		repo:         repo,
		roomTypeRepo: roomTypeRepo,
		facilityRepo: facilityRepo,
		cache:        mockCache,
		svc:          service.New(repo, roomTypeRepo, facilityRepo, cfg, mockCache, mocks.NewOtel()),
	}
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func createRoomRequest() dto.CreateRoomRequest {
	return dto.CreateRoomRequest{
		RoomTypeID:         "type-1",
		RoomNumber:         "101",
		Capacity:           2,
		PriceNoBreakfast:   500000,
		PriceWithBreakfast: 600000,
	}
}

func TestRoomService_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		fx := newRoomFixture(t)

		fx.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		fx.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		fx.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, room model.Room) error {
				assert.Equal(t, "101", room.RoomNumber)
				assert.Equal(t, model.StatusAvailable, room.Status)

				return nil
			})

		err := fx.svc.Create(adminContext(), createRoomRequest())

		assert.NoError(t, err)
	})

	t.Run("unknown room type", func(t *testing.T) {
		fx := newRoomFixture(t)

		fx.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := fx.svc.Create(adminContext(), createRoomRequest())

		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})

	t.Run("duplicate room number", func(t *testing.T) {
		fx := newRoomFixture(t)

		fx.roomTypeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		fx.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := fx.svc.Create(adminContext(), createRoomRequest())

		assert.Error(t, err)
	})
}

func TestRoomService_Get(t *testing.T) {
	t.Run("cache miss falls back to storage", func(t *testing.T) {
		fx := newRoomFixture(t)

		fx.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		fx.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{
			ID:           "room-1",
			RoomNumber:   "101",
			RoomTypeName: "Deluxe",
		}, nil)

		res, err := fx.svc.Get(adminContext(), "room-1")

		assert.NoError(t, err)
		assert.Equal(t, "room-1", res.ID)
		assert.Equal(t, "Deluxe", res.RoomTypeName)
	})

	t.Run("missing room", func(t *testing.T) {
		fx := newRoomFixture(t)

		fx.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		fx.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := fx.svc.Get(adminContext(), "room-404")

		assert.True(t, failure.IsKind(err, failure.KindRoomNotFound))
	})
}

func TestRoomService_Update(t *testing.T) {
	t.Run("invalid status is rejected before storage", func(t *testing.T) {
		fx := newRoomFixture(t)

		err := fx.svc.Update(adminContext(), dto.UpdateRoomRequest{Status: "occupied"}, "room-1")

		assert.True(t, failure.IsKind(err, failure.KindInvalidStatus))
	})

	t.Run("missing room", func(t *testing.T) {
		fx := newRoomFixture(t)

		fx.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := fx.svc.Update(adminContext(), dto.UpdateRoomRequest{Status: model.StatusUnavailable}, "room-404")

		assert.True(t, failure.IsKind(err, failure.KindRoomNotFound))
	})

	t.Run("successful update", func(t *testing.T) {
		fx := newRoomFixture(t)

		fx.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		fx.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusUnavailable, fields[model.FieldStatus])
				assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

				return nil
			})

		err := fx.svc.Update(adminContext(), dto.UpdateRoomRequest{Status: model.StatusUnavailable}, "room-1")

		assert.NoError(t, err)
	})
}

func TestRoomService_CheckAvailability(t *testing.T) {
	t.Run("invalid range never reaches storage", func(t *testing.T) {
		fx := newRoomFixture(t)

		_, err := fx.svc.CheckAvailability(adminContext(), dto.SearchAvailableRequest{
			CheckIn:  "2026-09-03",
			CheckOut: "2026-09-01",
		})

		assert.True(t, failure.IsKind(err, failure.KindInvalidDateRange))
	})

	t.Run("returns matching rooms", func(t *testing.T) {
		fx := newRoomFixture(t)

		fx.repo.EXPECT().
			ListAvailable(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, criteria model.AvailabilityCriteria) ([]model.Room, error) {
				assert.True(t, criteria.CheckOut.After(criteria.CheckIn))

				return []model.Room{
					{ID: "room-1", RoomNumber: "101", Status: model.StatusAvailable},
					{ID: "room-2", RoomNumber: "102", Status: model.StatusAvailable},
				}, nil
			})

		res, err := fx.svc.CheckAvailability(adminContext(), dto.SearchAvailableRequest{
			CheckIn:  "2026-09-01",
			CheckOut: "2026-09-03",
		})

		assert.NoError(t, err)
		assert.Len(t, res.Rooms, 2)
		assert.Equal(t, 2, res.TotalData)
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		fx := newRoomFixture(t)

		fx.repo.EXPECT().ListAvailable(gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := fx.svc.CheckAvailability(adminContext(), dto.SearchAvailableRequest{
			CheckIn:  "2026-09-01",
			CheckOut: "2026-09-03",
		})

		assert.NoError(t, err)
		assert.Empty(t, res.Rooms)
	})
}

func TestRoomService_AssignFacilities(t *testing.T) {
	req := dto.AssignFacilitiesRequest{FacilityIDs: []string{"fac-1", "fac-2"}}

	t.Run("successful assignment", func(t *testing.T) {
		fx := newRoomFixture(t)

		fx.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		fx.facilityRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
		fx.facilityRepo.EXPECT().
			ReplaceForRoom(gomock.Any(), "room-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, links []model.RoomFacility) error {
				assert.Len(t, links, 2)

				return nil
			})

		err := fx.svc.AssignFacilities(adminContext(), "room-1", req)

		assert.NoError(t, err)
	})

	t.Run("missing room", func(t *testing.T) {
		fx := newRoomFixture(t)

		fx.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := fx.svc.AssignFacilities(adminContext(), "room-404", req)

		assert.True(t, failure.IsKind(err, failure.KindRoomNotFound))
	})

	t.Run("missing facility", func(t *testing.T) {
		fx := newRoomFixture(t)

		fx.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		fx.facilityRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := fx.svc.AssignFacilities(adminContext(), "room-1", req)

		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestRoomService_GetFacilities(t *testing.T) {
	fx := newRoomFixture(t)

	fx.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	fx.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	fx.facilityRepo.EXPECT().ListByRoom(gomock.Any(), "room-1").Return([]model.Facility{
		{ID: "fac-1", Name: "WiFi"},
	}, nil)

	res, err := fx.svc.GetFacilities(adminContext(), "room-1")

	assert.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, "WiFi", res[0].Name)
}
