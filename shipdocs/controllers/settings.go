package controllers

import (
	"context"
	"encoding/json"
	"fmt"

	"shipdocs/shipdocs/sources/psql/dao"
	"shipdocs/shipdocs/sources/psql/models"
	"shipdocs/shipdocs/utils/types"
)

type SettingsController struct {
	settings *dao.SettingDAO
}

func NewSettingsController(settings *dao.SettingDAO) *SettingsController {
	return &SettingsController{settings: settings}
}

// Get returns the stored value, or a null value for unset keys.
func (c *SettingsController) Get(ctx context.Context, key string) (*types.SettingResponse, error) {
	setting, err := c.settings.GetSetting(ctx, key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return &types.SettingResponse{Key: key, Value: json.RawMessage("null")}, nil
	}
	return &types.SettingResponse{Key: setting.Key, Value: json.RawMessage(setting.Value)}, nil
}

// Set upserts the setting. Key and value are both required and the
// value must be valid JSON.
func (c *SettingsController) Set(ctx context.Context, req types.SettingRequest) (*models.SystemSetting, error) {
	if req.Key == "" {
		return nil, fmt.Errorf("key is required")
	}
	if len(req.Value) == 0 || !json.Valid(req.Value) {
		return nil, fmt.Errorf("value must be valid JSON")
	}
	return c.settings.SetSetting(ctx, req.Key, models.JSONValue(req.Value))
}
