package eclesiar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/eclesiar-analyzer/internal/apperror"
	"github.com/fd1az/eclesiar-analyzer/internal/circuitbreaker"
	"github.com/fd1az/eclesiar-analyzer/internal/httpclient"
	"github.com/fd1az/eclesiar-analyzer/internal/logger"
	"github.com/fd1az/eclesiar-analyzer/internal/ratelimit"
)

const (
	// BaseAPIURL is the public game API.
	BaseAPIURL = "https://api.eclesiar.com"

	tracerName  = "eclesiar"
	httpTimeout = 10 * time.Second

	// Endpoints
	countriesEndpoint  = "countries"
	coinOffersEndpoint = "market/coin/get"
	regionsEndpoint    = "country/regions"
	statisticsEndpoint = "statistics/country"
)

// ClientConfig holds configuration for the Eclesiar client.
type ClientConfig struct {
	BaseURL        string
	APIKey         string
	AuthToken      string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	CallsPerMinute int
}

// Client provides typed access to the endpoints the analyzer reads.
// Every request waits on the per-minute budget and goes through a circuit
// breaker that opens after repeated failures.
type Client struct {
	http    httpclient.Client
	breaker *circuitbreaker.CircuitBreaker[*httpclient.Response]
	logger  logger.LoggerInterface
	tracer  trace.Tracer
}

// NewClient creates a new Eclesiar API client.
func NewClient(cfg ClientConfig, log logger.LoggerInterface) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseAPIURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = httpTimeout
	}

	opts := []httpclient.ClientOption{
		httpclient.WithProviderName("eclesiar"),
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithRoundTripper(ratelimit.New(cfg.CallsPerMinute).Transport(nil)),
		httpclient.WithRetry(httpclient.RetryPolicy{
			MaxRetries: cfg.MaxRetries,
			Backoff:    cfg.RetryBackoff,
			MaxBackoff: 10 * time.Second,
		}),
	}
	if cfg.APIKey != "" {
		opts = append(opts, httpclient.WithQueryParams(map[string]string{"api_key": cfg.APIKey}))
	}
	if cfg.AuthToken != "" {
		opts = append(opts, httpclient.WithHeaders(map[string]string{"Authorization": "Bearer " + cfg.AuthToken}))
	}

	client, err := httpclient.NewInstrumentedClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	cbCfg := circuitbreaker.DefaultConfig("eclesiar-api")
	cbCfg.IsSuccessful = func(err error) bool {
		// a cancelled run says nothing about the API's health
		return err == nil || errors.Is(err, context.Canceled)
	}
	cbCfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn(context.Background(), "circuit breaker state changed",
			"breaker", name, "from", from.String(), "to", to.String())
	}

	return &Client{
		http:    client,
		breaker: circuitbreaker.New[*httpclient.Response](cbCfg),
		logger:  log,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// Countries lists every country with its currency.
func (c *Client) Countries(ctx context.Context) ([]CountryDTO, error) {
	var out []CountryDTO
	err := c.get(ctx, countriesEndpoint, nil, &out)
	return out, err
}

// CoinOffers lists one side of a currency's coin market.
func (c *Client) CoinOffers(ctx context.Context, currencyID int, transaction string) ([]CoinOfferDTO, error) {
	var out []CoinOfferDTO
	err := c.get(ctx, coinOffersEndpoint, map[string]string{
		"currency_id": strconv.Itoa(currencyID),
		"transaction": transaction,
	}, &out)
	return out, err
}

// Regions lists the regions of one country.
func (c *Client) Regions(ctx context.Context, countryID int) ([]RegionDTO, error) {
	var out []RegionDTO
	err := c.get(ctx, regionsEndpoint, map[string]string{
		"country_id": strconv.Itoa(countryID),
	}, &out)
	return out, err
}

// CountryStatistic returns one statistic for every country, e.g. "npcwage".
func (c *Client) CountryStatistic(ctx context.Context, statistic string) ([]StatisticDTO, error) {
	var out []StatisticDTO
	err := c.get(ctx, statisticsEndpoint, map[string]string{"statistic": statistic}, &out)
	return out, err
}

func (c *Client) get(ctx context.Context, endpoint string, params map[string]string, out any) error {
	ctx, span := c.tracer.Start(ctx, "eclesiar.get",
		trace.WithAttributes(attribute.String("endpoint", endpoint)))
	defer span.End()

	var env Envelope
	_, err := c.breaker.Execute(func() (*httpclient.Response, error) {
		return c.http.NewRequestWithOptions(
			httpclient.WithLabels(httpclient.NewLabel("endpoint", endpoint)),
			httpclient.WithResponseErrorHandler(eclesiarErrorHandler),
		).
			SetQueryParams(params).
			SetResult(&env).
			Get(ctx, endpoint)
	})
	if err != nil {
		span.RecordError(err)
		if apperror.IsAppError(err) {
			return apperror.Wrap(err, apperror.CodeEclesiarAPIError, endpoint)
		}
		return apperror.External(apperror.CodeEclesiarAPIError, endpoint, err)
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		span.RecordError(err)
		return apperror.New(apperror.CodeInvalidFormat,
			apperror.WithContext(endpoint),
			apperror.WithCause(err),
			apperror.WithKind(apperror.KindExternal))
	}

	c.logger.Debug(ctx, "eclesiar request done", "endpoint", endpoint, "params", params)
	return nil
}

// eclesiarErrorHandler maps HTTP failures and non-200 envelope codes to
// typed errors. A 200 response may still carry an error code in its body.
func eclesiarErrorHandler(statusCode int, body []byte) error {
	if statusCode == http.StatusTooManyRequests {
		return apperror.New(apperror.CodeEclesiarRateLimited,
			apperror.WithContextf("HTTP %d", statusCode))
	}

	var env Envelope
	decodeErr := json.Unmarshal(body, &env)

	if statusCode >= 400 {
		msg := string(body)
		if decodeErr == nil && env.Description != "" {
			msg = env.Description
		}
		return apperror.New(apperror.CodeEclesiarAPIError,
			apperror.WithContextf("HTTP %d: %s", statusCode, truncate(msg, 200)))
	}
	if decodeErr != nil {
		return apperror.New(apperror.CodeInvalidFormat,
			apperror.WithCause(decodeErr),
			apperror.WithKind(apperror.KindExternal))
	}
	if env.Code != http.StatusOK {
		return apperror.New(apperror.CodeEclesiarAPIError,
			apperror.WithContextf("code %d: %s", env.Code, env.Description))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
