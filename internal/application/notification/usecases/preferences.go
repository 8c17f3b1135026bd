package usecases

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/application/notification/dto"
	"github.com/orris-inc/servicedesk/internal/domain/notification"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/mapper"
)

type PreferenceInput struct {
	EventType string
	InApp     bool
	Email     bool
	Realtime  bool
}

type PreferenceUseCases struct {
	repo   notification.PreferenceRepository
	logger logger.Interface
}

func NewPreferenceUseCases(repo notification.PreferenceRepository, logger logger.Interface) *PreferenceUseCases {
	return &PreferenceUseCases{repo: repo, logger: logger}
}

// Get returns one entry per event type, filling missing rows with defaults.
func (uc *PreferenceUseCases) Get(ctx context.Context, userID uint) ([]*dto.PreferenceDTO, error) {
	stored, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to list notification preferences", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to load preferences")
	}
	byType := make(map[notification.EventType]*notification.Preference, len(stored))
	for _, p := range stored {
		byType[p.EventType()] = p
	}

	out := make([]*notification.Preference, 0, len(notification.AllEventTypes))
	for _, et := range notification.AllEventTypes {
		if p, ok := byType[et]; ok {
			out = append(out, p)
			continue
		}
		out = append(out, notification.DefaultPreference(userID, et))
	}
	return mapper.MapSlice(out, dto.ToPreferenceDTO), nil
}

func (uc *PreferenceUseCases) Update(ctx context.Context, userID uint, inputs []PreferenceInput) ([]*dto.PreferenceDTO, error) {
	if len(inputs) == 0 {
		return nil, errors.NewValidationError("at least one preference is required")
	}
	prefs := make([]*notification.Preference, 0, len(inputs))
	seen := make(map[notification.EventType]bool, len(inputs))
	for _, in := range inputs {
		p, err := notification.NewPreference(userID, notification.EventType(in.EventType), in.InApp, in.Email, in.Realtime)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if seen[p.EventType()] {
			return nil, errors.NewValidationError("duplicate event type: " + in.EventType)
		}
		seen[p.EventType()] = true
		prefs = append(prefs, p)
	}

	if err := uc.repo.Upsert(ctx, prefs); err != nil {
		uc.logger.Errorw("failed to save notification preferences", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to save preferences")
	}
	uc.logger.Infow("notification preferences updated", "user_id", userID, "count", len(prefs))
	return uc.Get(ctx, userID)
}
