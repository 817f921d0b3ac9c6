package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент почтового шлюза уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет событие бронирования в почтовый шлюз
func (c *Client) Send(ctx context.Context, event Event) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	return nil
}

// SendBestEffort отправляет событие, не прерывая основную операцию при сбое.
// Уведомления не критичны: ошибка логируется и подавляется
func (c *Client) SendBestEffort(ctx context.Context, event Event) {
	if event.RecipientEmail == "" {
		c.log.Info("Notification skipped, no recipient email (reference=%s, type=%s)", event.BookingReference, event.Type)
		return
	}

	if err := c.Send(ctx, event); err != nil {
		c.log.Error("Failed to send notification (reference=%s, type=%s): %v", event.BookingReference, event.Type, err)
		return
	}

	c.log.Info("Notification sent (reference=%s, type=%s)", event.BookingReference, event.Type)
}
