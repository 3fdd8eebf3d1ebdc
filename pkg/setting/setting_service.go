package setting

import (
	"Recipe-Website/domain"
	"Recipe-Website/pkg/policy"
	"context"
	"fmt"
	"strings"
)

var ErrEmptySettingKey = fmt.Errorf("setting key is required: %w", domain.ErrBadRequest)

type (
	SettingService interface {
		ListSettings(ctx context.Context, identity domain.Identity) ([]domain.SettingResponse, error)
		UpsertSetting(ctx context.Context, identity domain.Identity, key string, req domain.SettingRequest) (domain.SettingResponse, error)
	}

	settingService struct {
		settingRepository SettingRepository
	}
)

func NewSettingService(settingRepository SettingRepository) SettingService {
	return &settingService{settingRepository: settingRepository}
}

func (s *settingService) ListSettings(ctx context.Context, identity domain.Identity) ([]domain.SettingResponse, error) {
	if err := policy.Authorize(identity, nil, domain.RoleAdmin); err != nil {
		return nil, err
	}

	settings, err := s.settingRepository.ListSettings(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.SettingResponse, 0, len(settings))
	for _, setting := range settings {
		res = append(res, domain.SettingResponse{Key: setting.Key, Value: setting.Value})
	}
	return res, nil
}

func (s *settingService) UpsertSetting(ctx context.Context, identity domain.Identity, key string, req domain.SettingRequest) (domain.SettingResponse, error) {
	if err := policy.Authorize(identity, nil, domain.RoleAdmin); err != nil {
		return domain.SettingResponse{}, err
	}

	key = strings.TrimSpace(key)
	if key == "" || len(key) > 100 {
		return domain.SettingResponse{}, ErrEmptySettingKey
	}

	setting, err := s.settingRepository.UpsertSetting(ctx, key, req.Value)
	if err != nil {
		return domain.SettingResponse{}, err
	}
	return domain.SettingResponse{Key: setting.Key, Value: setting.Value}, nil
}
