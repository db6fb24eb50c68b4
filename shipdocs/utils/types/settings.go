package types

import "encoding/json"

type SettingRequest struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type SettingResponse struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}
