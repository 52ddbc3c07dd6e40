package models

import (
	"strings"
	"testing"
)

func TestLoadSettings(t *testing.T) {
	data := []byte(`{
		"databaseName": "tuzhan",
		"collections": ["orders", "refunds"],
		"chainIds": ["1001", "1002"],
		"targetChainId": "1001",
		"chainMappings": {"1001": "Chain A"},
		"collectionMappings": {"orders": "Orders"},
		"wechat": {"webhook": "https://example.com/hook", "mentionedList": ["ops"]}
	}`)

	s, err := LoadSettings(data)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	if s.DatabaseName != "tuzhan" {
		t.Errorf("Expected database tuzhan, got %q", s.DatabaseName)
	}
	if len(s.Collections) != 2 || s.Collections[0] != "orders" {
		t.Errorf("Unexpected collections: %v", s.Collections)
	}
	if s.TargetChainID != "1001" {
		t.Errorf("Expected target chain 1001, got %q", s.TargetChainID)
	}
	if s.WeChat.Webhook != "https://example.com/hook" {
		t.Errorf("Unexpected webhook: %q", s.WeChat.Webhook)
	}
}

func TestLoadSettingsValidation(t *testing.T) {
	cases := []struct {
		name string
		json string
		want string
	}{
		{
			name: "missing database",
			json: `{"collections": ["orders"], "chainIds": ["1001"]}`,
			want: "databaseName",
		},
		{
			name: "no collections",
			json: `{"databaseName": "tuzhan", "collections": [], "chainIds": ["1001"]}`,
			want: "collection",
		},
		{
			name: "blank collection name",
			json: `{"databaseName": "tuzhan", "collections": [" "], "chainIds": ["1001"]}`,
			want: "collections[0]",
		},
		{
			name: "no chain ids",
			json: `{"databaseName": "tuzhan", "collections": ["orders"], "chainIds": []}`,
			want: "chain id",
		},
	}

	for _, tc := range cases {
		_, err := LoadSettings([]byte(tc.json))
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: expected error mentioning %q, got %v", tc.name, tc.want, err)
		}
	}
}

func TestLoadSettingsTargetOptional(t *testing.T) {
	data := []byte(`{"databaseName": "tuzhan", "collections": ["orders"], "chainIds": ["1001"]}`)
	s, err := LoadSettings(data)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}
	if s.TargetChainID != "" {
		t.Errorf("Expected empty target chain, got %q", s.TargetChainID)
	}
}

func TestDisplayNameFallbacks(t *testing.T) {
	s := &Settings{
		ChainMappings:      map[string]string{"1001": "Chain A"},
		CollectionMappings: map[string]string{"orders": "Orders"},
	}

	if got := s.ChainName("1001"); got != "Chain A" {
		t.Errorf("Expected Chain A, got %q", got)
	}
	if got := s.ChainName("9999"); got != "" {
		t.Errorf("Expected empty name for unmapped chain, got %q", got)
	}
	if got := s.CollectionDisplayName("orders"); got != "Orders" {
		t.Errorf("Expected Orders, got %q", got)
	}
	if got := s.CollectionDisplayName("refunds"); got != "refunds" {
		t.Errorf("Expected raw name fallback, got %q", got)
	}
}
