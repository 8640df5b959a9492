// Package upstream reads the dashboard backend's reference endpoints:
// order detail, drivers present today and the airport list. All reads
// are best-effort for the caller; a failed read is logged upstream and
// the stage proceeds with whatever data arrived.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"opsdash/internal/models"
)

type Client struct {
	baseURL string
	hc      *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s response", path)
	}
	return nil
}

func (c *Client) OrderDetail(ctx context.Context, oid string) (models.Order, error) {
	var o models.Order
	err := c.get(ctx, fmt.Sprintf("/api/orders/%s", oid), &o)
	return o, err
}

func (c *Client) PresentDrivers(ctx context.Context) ([]models.Driver, error) {
	var out []models.Driver
	err := c.get(ctx, "/api/drivers/present", &out)
	return out, err
}

func (c *Client) Airports(ctx context.Context) ([]models.Airport, error) {
	var out []models.Airport
	err := c.get(ctx, "/api/airports", &out)
	return out, err
}
