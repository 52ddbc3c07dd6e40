package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Settings represents the root of the JSON settings file.
type Settings struct {
	DatabaseName       string            `json:"databaseName"`
	Collections        []string          `json:"collections"`
	ChainIDs           []string          `json:"chainIds"`
	TargetChainID      string            `json:"targetChainId,omitempty"`
	ChainMappings      map[string]string `json:"chainMappings,omitempty"`
	CollectionMappings map[string]string `json:"collectionMappings,omitempty"`
	WeChat             WeChatSettings    `json:"wechat,omitempty"`
}

// WeChatSettings configures the work-group robot webhook. An empty
// Webhook disables notification delivery.
type WeChatSettings struct {
	Webhook             string   `json:"webhook,omitempty"`
	MentionedList       []string `json:"mentionedList,omitempty"`
	MentionedMobileList []string `json:"mentionedMobileList,omitempty"`
}

// LoadSettings parses the settings JSON and validates it.
func LoadSettings(data []byte) (*Settings, error) {
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the parts every command depends on. The target chain
// id is deliberately optional: leaving it empty disables the daily
// validation check without disabling the statistics report.
func (s *Settings) Validate() error {
	if s.DatabaseName == "" {
		return errors.New("settings: databaseName is required")
	}
	if len(s.Collections) == 0 {
		return errors.New("settings: at least one collection is required")
	}
	for i, name := range s.Collections {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("settings: collections[%d] is empty", i)
		}
	}
	if len(s.ChainIDs) == 0 {
		return errors.New("settings: at least one chain id is required")
	}
	return nil
}

// ChainName returns the display name configured for a chain id, or ""
// when no mapping exists.
func (s *Settings) ChainName(chainID string) string {
	return s.ChainMappings[chainID]
}

// CollectionDisplayName maps a collection to its configured display
// name, falling back to the raw collection name.
func (s *Settings) CollectionDisplayName(collection string) string {
	if display, ok := s.CollectionMappings[collection]; ok {
		return display
	}
	return collection
}
