package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"lodge/config"
	"lodge/infras/otel"
	bookingModel "lodge/internal/domains/booking/model"
	bookingRepo "lodge/internal/domains/booking/repository"
	"lodge/internal/domains/rating/model"
	"lodge/internal/domains/rating/model/dto"
	"lodge/internal/domains/rating/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllRating = "rating:gets"
	cacheCountRating  = "rating:count"
)

type Rating interface {
	// Submit records a guest's one-shot review of their own completed
	// booking.
	Submit(ctx context.Context, req dto.SubmitRatingRequest) (dto.RatingResponse, error)

	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRatingsResponse, error)
}

type serviceImpl struct {
	repo        repository.Rating
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Rating, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Rating {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Submit(ctx context.Context, req dto.SubmitRatingRequest) (res dto.RatingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rating.Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if req.Star < model.MinStar || req.Star > model.MaxStar {
		return res, failure.OfKind(failure.KindInvalidStar, "star must be between %d and %d, got %d", model.MinStar, model.MaxStar, req.Star)
	}

	booking, err := s.bookingRepo.Get(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    req.BookingID,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    bookingModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.OfKind(failure.KindBookingNotFound, "booking not found") // nolint:wrapcheck
	}

	// Only a finished stay can be rated.
	if booking.Status != bookingModel.StatusCheckedOut {
		return res, failure.OfKind(failure.KindNotEligible, "booking is not eligible for rating in status %s", booking.Status)
	}

	rated, err := s.repo.Exist(ctx, shared.FilterByID(req.BookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing rating")

		return res, fmt.Errorf("failed to check existing rating: %w", err)
	}

	if rated {
		return res, failure.OfKind(failure.KindAlreadyRated, "booking %s has already been rated", req.BookingID)
	}

	rating := req.ToModel(userID, userID)

	if err = s.repo.Insert(ctx, rating); err != nil {
		// The unique constraint is the authority; a concurrent submit that
		// slipped past the pre-check lands here.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return res, failure.OfKind(failure.KindAlreadyRated, "booking %s has already been rated", req.BookingID)
		}

		log.Error().Err(err).Msg("failed to insert rating")

		return res, fmt.Errorf("failed to insert rating: %w", err)
	}

	res.FromModel(rating)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRating)
		shared.InvalidateCaches(c, s.cache, cacheCountRating)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRatingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rating.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRating, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for ratings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count ratings")

		return res, fmt.Errorf("failed to count ratings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get ratings")

		return res, fmt.Errorf("failed to get ratings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save ratings to cache")
		}
	}()

	return res, nil
}
