// Package notify delivers validation and report summaries to a WeChat
// work-group robot webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/stonexiaolei/tuzhan-data/pkg/logger"
	"github.com/stonexiaolei/tuzhan-data/pkg/models"
)

type WeChatNotifier struct {
	Webhook             string
	MentionedList       []string
	MentionedMobileList []string
	HTTPClient          *http.Client
}

func NewWeChatNotifier(settings models.WeChatSettings) *WeChatNotifier {
	return &WeChatNotifier{
		Webhook:             settings.Webhook,
		MentionedList:       settings.MentionedList,
		MentionedMobileList: settings.MentionedMobileList,
		HTTPClient:          &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *WeChatNotifier) Enabled() bool {
	return n.Webhook != ""
}

type markdownPayload struct {
	MsgType  string `json:"msgtype"`
	Markdown struct {
		Content string `json:"content"`
	} `json:"markdown"`
	MentionedList       []string `json:"mentioned_list,omitempty"`
	MentionedMobileList []string `json:"mentioned_mobile_list,omitempty"`
}

type webhookResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// SendMarkdown posts a markdown message to the robot webhook. A missing
// webhook is not an error: delivery is skipped with a warning.
func (n *WeChatNotifier) SendMarkdown(ctx context.Context, content string) error {
	if !n.Enabled() {
		logger.Warn("WeChat robot not configured, skipping notification")
		return nil
	}

	payload := markdownPayload{
		MsgType:             "markdown",
		MentionedList:       n.MentionedList,
		MentionedMobileList: n.MentionedMobileList,
	}
	payload.Markdown.Content = content

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode WeChat message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Webhook, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build WeChat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := n.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send WeChat notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("WeChat webhook returned status %d", resp.StatusCode)
	}

	var result webhookResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode WeChat response: %w", err)
	}
	if result.ErrCode != 0 {
		return fmt.Errorf("WeChat webhook rejected message: %d %s", result.ErrCode, result.ErrMsg)
	}

	logger.Info("WeChat notification sent")
	return nil
}
