// Package courierapi ships delivery orders through the courier's HTTP API.
//
// The courier identifies a parcel by a tracking token the client generates
// itself and sends with the shipment, so a successful add_colis call is all
// it takes to move an order out for delivery. Status reads and
// ready-for-collection notices reuse the same token.
package courierapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

const (
	DefaultBaseURL      = "https://procolis.com/api_v1"
	DefaultTimeout      = 30 * time.Second
	DefaultProductLabel = "Matériel d'impression"

	endpointAddParcel = "add_colis"
	endpointRead      = "lire"
	endpointReady     = "pret"

	fallbackClientName = "Client"
	fallbackAddress    = "Adresse non fournie"
	trackingTimeLayout = "200601021504"
	errorBodyLimit     = 1024
)

var (
	errCredentialsRequired = errors.New("courier token and key are required")

	// ErrUnknownRegion is reported in a Rejected dispatch when the order's
	// region has no courier code.
	ErrUnknownRegion = errors.New("region has no courier code")
	// ErrNotDeliverable is reported in a Rejected dispatch for pickup orders.
	ErrNotDeliverable = errors.New("order is not a delivery order")
)

// RegionResolver maps a free-text region to the courier's numeric code.
type RegionResolver interface {
	Resolve(name string) (int, bool)
}

// RequestRecorder receives one observation per outbound call.
type RequestRecorder interface {
	ObserveCourierRequest(endpoint, code string, duration time.Duration)
}

// Client implements ports.DeliveryDispatcher. It is safe for concurrent use.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	token        string
	key          string
	timeout      time.Duration
	productLabel string
	regions      RegionResolver
	recorder     RequestRecorder
	logger       *slog.Logger
}

var _ ports.DeliveryDispatcher = (*Client)(nil)

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout bounds every request. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithProductLabel sets the TProduit value of every shipment.
func WithProductLabel(label string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			c.productLabel = trimmed
		}
	}
}

func WithRecorder(recorder RequestRecorder) Option {
	return func(c *Client) {
		if recorder != nil {
			c.recorder = recorder
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds the courier client. regions is required; it decides which
// orders can be shipped at all.
func NewClient(token, key string, regions RegionResolver, opts ...Option) (*Client, error) {
	token, key = strings.TrimSpace(token), strings.TrimSpace(key)
	if token == "" || key == "" {
		return nil, errCredentialsRequired
	}
	if regions == nil {
		return nil, errors.New("courier region resolver is required")
	}

	client := &Client{
		httpClient:   &http.Client{},
		baseURL:      DefaultBaseURL,
		token:        token,
		key:          key,
		timeout:      DefaultTimeout,
		productLabel: DefaultProductLabel,
		regions:      regions,
		recorder:     noopRecorder{},
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	client.logger = client.logger.With("component", "courier_client")

	return client, nil
}

// TrackingID is the token sent with a shipment for o.
func TrackingID(o *order.Order) string {
	return fmt.Sprintf("ORDER_%s_%s", o.ID(), o.CreatedAt().Format(trackingTimeLayout))
}

// CreateDelivery posts the shipment. The result is Dispatched only on a 200
// answer; transport errors and other statuses are Degraded.
func (c *Client) CreateDelivery(ctx context.Context, o *order.Order, customer *identity.User) ports.DispatchResult {
	if o.DeliveryType() != order.Delivery {
		return ports.DispatchResult{Outcome: ports.Rejected, Err: ErrNotDeliverable}
	}

	regionCode, ok := c.regions.Resolve(o.Delivery().Region)
	if !ok {
		c.logger.WarnContext(ctx, "shipment rejected",
			"order_id", o.ID().String(),
			"region", o.Delivery().Region,
		)
		return ports.DispatchResult{
			Outcome: ports.Rejected,
			Err:     fmt.Errorf("%w: %q", ErrUnknownRegion, o.Delivery().Region),
		}
	}

	p := c.newParcel(o, customer, regionCode)
	status, _, err := c.post(ctx, endpointAddParcel, parcelBatch[parcel]{Colis: []parcel{p}})
	if err != nil {
		c.logger.ErrorContext(ctx, "shipment request failed",
			"order_id", o.ID().String(),
			"error", err,
		)
		return ports.DispatchResult{Outcome: ports.Degraded, Err: err}
	}
	if status != http.StatusOK {
		return ports.DispatchResult{
			Outcome: ports.Degraded,
			Err:     fmt.Errorf("courier answered %d to %s", status, endpointAddParcel),
		}
	}

	c.logger.InfoContext(ctx, "shipment created",
		"order_id", o.ID().String(),
		"tracking_id", p.Tracking,
	)
	return ports.DispatchResult{Outcome: ports.Dispatched, TrackingID: p.Tracking}
}

// GetStatus reads the courier records of trackingIDs.
func (c *Client) GetStatus(ctx context.Context, trackingIDs []string) (ports.DeliveryStatuses, error) {
	if len(trackingIDs) == 0 {
		return nil, errors.New("at least one tracking id is required")
	}

	status, body, err := c.post(ctx, endpointRead, trackingBatch(trackingIDs))
	if err != nil {
		c.logger.ErrorContext(ctx, "status request failed", "tracking_ids", trackingIDs, "error", err)
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("courier answered %d to %s", status, endpointRead)
	}

	var statuses ports.DeliveryStatuses
	if err := json.Unmarshal(body, &statuses); err != nil {
		c.logger.ErrorContext(ctx, "status response is not a JSON object", "error", err)
		return nil, fmt.Errorf("decode %s response: %w", endpointRead, err)
	}
	return statuses, nil
}

// UpdateStatus tells the courier the parcels are ready for collection. The
// courier API has a single such notice, so newStatus is only logged.
func (c *Client) UpdateStatus(ctx context.Context, trackingIDs []string, newStatus string) bool {
	if len(trackingIDs) == 0 {
		return false
	}

	status, _, err := c.post(ctx, endpointReady, trackingBatch(trackingIDs))
	if err != nil {
		c.logger.ErrorContext(ctx, "ready notice failed",
			"tracking_ids", trackingIDs,
			"status", newStatus,
			"error", err,
		)
		return false
	}

	c.logger.InfoContext(ctx, "ready notice sent",
		"tracking_ids", trackingIDs,
		"status", newStatus,
		"http_status", status,
	)
	return status == http.StatusOK
}

func (c *Client) newParcel(o *order.Order, customer *identity.User, regionCode int) parcel {
	delivery := o.Delivery()
	p := parcel{
		Tracking:      TrackingID(o),
		TypeLivraison: "0",
		TypeColis:     "0",
		Client:        fallbackClientName,
		MobileA:       delivery.Phone,
		Adresse:       delivery.Address,
		IDWilaya:      strconv.Itoa(regionCode),
		Total:         strconv.FormatInt(o.Total().IntPart(), 10),
		Note:          fmt.Sprintf("Commande #%s", o.ID()),
		TProduit:      c.productLabel,
		IDExterne:     o.ID().String(),
	}

	if guest, ok := o.Customer().Guest(); ok {
		p.Client = guest.Name
		p.MobileB = guest.Phone
	} else if customer != nil {
		if customer.FullName() != "" {
			p.Client = customer.FullName()
		}
		p.MobileB = customer.Phone()
		p.Commune = customer.Region()
	}
	if p.Adresse == "" {
		p.Adresse = fallbackAddress
	}
	return p
}

// post sends payload and returns the status code with the response body.
// Bodies of non-200 answers are truncated and logged.
func (c *Client) post(ctx context.Context, endpoint string, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal %s request: %w", endpoint, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(endpoint), bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("token", c.token)
	req.Header.Set("key", c.key)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recorder.ObserveCourierRequest(endpoint, "error", time.Since(start))
		return 0, nil, fmt.Errorf("execute %s request: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.recorder.ObserveCourierRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		c.logger.WarnContext(ctx, "courier returned an error",
			"endpoint", endpoint,
			"http_status", resp.StatusCode,
			"body", strings.TrimSpace(string(msg)),
		)
		return resp.StatusCode, nil, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	return resp.StatusCode, respBody, nil
}

func (c *Client) url(endpoint string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(c.baseURL, "/"), endpoint)
}

type noopRecorder struct{}

func (noopRecorder) ObserveCourierRequest(string, string, time.Duration) {}
