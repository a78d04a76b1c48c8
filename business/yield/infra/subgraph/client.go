// Package subgraph reads pair day data from AMM GraphQL subgraphs.
package subgraph

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/hermes-yield/business/yield/domain"
	"github.com/fd1az/hermes-yield/internal/apperror"
	"github.com/fd1az/hermes-yield/internal/circuitbreaker"
	"github.com/fd1az/hermes-yield/internal/httpclient"
	"github.com/fd1az/hermes-yield/internal/logger"
	"github.com/fd1az/hermes-yield/internal/ratelimit"
)

const (
	tracerName = "subgraph"

	defaultTimeout = 10 * time.Second

	pairDayDataQuery = `{ pairDayDatas(first: 1, orderBy: date, orderDirection: desc, where: { pairAddress: "%s" }) { id dailyVolumeUSD reserveUSD } }`
)

// Config configures the subgraph client.
type Config struct {
	Endpoints         map[domain.AMM]string
	RequestTimeout    time.Duration
	RequestsPerMinute int // 0 disables limiting
}

// Client fetches the most recent pairDayData of a pair. One circuit breaker
// guards each AMM endpoint.
type Client struct {
	client    httpclient.Client
	endpoints map[domain.AMM]string
	breakers  map[domain.AMM]*circuitbreaker.CircuitBreaker[*domain.TradingPairSnapshot]
	limiter   *ratelimit.Limiter
	logger    logger.LoggerInterface
	tracer    trace.Tracer
}

// NewClient creates a subgraph client for the configured endpoints.
func NewClient(cfg Config, log logger.LoggerInterface, opts ...httpclient.ClientOption) (*Client, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, apperror.New(apperror.CodeConfigurationError,
			apperror.WithContext("no subgraph endpoints configured"))
	}

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	tracer := otel.Tracer(tracerName)

	base := []httpclient.ClientOption{
		httpclient.WithProviderName("subgraph"),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithTraceOptions(tracer, httpclient.TraceResponse),
		httpclient.WithHeaders(map[string]string{
			"Accept": "application/json",
		}),
	}
	client, err := httpclient.NewInstrumentedClient(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	limiter := ratelimit.Unlimited()
	if cfg.RequestsPerMinute > 0 {
		limiter = ratelimit.New(cfg.RequestsPerMinute)
	}

	c := &Client{
		client:    client,
		endpoints: make(map[domain.AMM]string, len(cfg.Endpoints)),
		breakers:  make(map[domain.AMM]*circuitbreaker.CircuitBreaker[*domain.TradingPairSnapshot], len(cfg.Endpoints)),
		limiter:   limiter,
		logger:    log,
		tracer:    tracer,
	}

	for amm, url := range cfg.Endpoints {
		c.endpoints[amm] = url

		cbCfg := circuitbreaker.DefaultConfig("subgraph-" + amm.String())
		cbCfg.OnStateChange = c.onBreakerStateChange
		cbCfg.IsSuccessful = countsAsSuccess
		c.breakers[amm] = circuitbreaker.New[*domain.TradingPairSnapshot](cbCfg)
	}

	return c, nil
}

type graphQLRequest struct {
	Query string `json:"query"`
}

type pairDayData struct {
	ID             string `json:"id"`
	DailyVolumeUSD string `json:"dailyVolumeUSD"`
	ReserveUSD     string `json:"reserveUSD"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type pairDayDataResponse struct {
	Data *struct {
		PairDayDatas []pairDayData `json:"pairDayDatas"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// LatestPairDayData returns the latest daily volume and reserve of pair.
//
// Errors carry SUBGRAPH_REQUEST_FAILED for transport failures, non-2xx
// statuses and an open breaker; SUBGRAPH_INVALID_RESPONSE for undecodable
// payloads, GraphQL errors and unusable figures; SUBGRAPH_EMPTY_RESULT when
// the pair has no day data.
func (c *Client) LatestPairDayData(ctx context.Context, amm domain.AMM, pair common.Address) (*domain.TradingPairSnapshot, error) {
	ctx, span := c.tracer.Start(ctx, "subgraph.latest_pair_day_data",
		trace.WithAttributes(
			attribute.String("amm", amm.String()),
			attribute.String("pair", pair.Hex()),
		),
	)
	defer span.End()

	endpoint, ok := c.endpoints[amm]
	if !ok {
		err := apperror.Validation(apperror.CodeUnknownAMM, amm.String())
		span.RecordError(err)
		span.SetStatus(codes.Error, "unknown amm")
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rate limit wait aborted")
		return nil, apperror.New(apperror.CodeSubgraphRequestFailed,
			apperror.WithCause(err),
			apperror.WithContext("rate limit wait aborted"))
	}

	snap, err := c.breakers[amm].Execute(func() (*domain.TradingPairSnapshot, error) {
		return c.fetch(ctx, endpoint, pair)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pair day data unavailable")
		if circuitbreaker.IsRejected(err) {
			return nil, apperror.New(apperror.CodeSubgraphRequestFailed,
				apperror.WithCause(err),
				apperror.WithContext("circuit open for "+amm.String()))
		}
		return nil, err
	}

	span.SetAttributes(
		attribute.String("daily_volume_usd", snap.DailyVolumeUSD.String()),
		attribute.String("reserve_usd", snap.ReserveUSD.String()),
	)
	return snap, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, pair common.Address) (*domain.TradingPairSnapshot, error) {
	// Subgraph ids are lower-case hex.
	query := fmt.Sprintf(pairDayDataQuery, strings.ToLower(pair.Hex()))

	var result pairDayDataResponse
	_, err := c.client.NewRequestWithOptions(
		httpclient.WithLabels(httpclient.NewLabel("query", "pairDayDatas")),
		httpclient.WithResponseErrorHandler(statusErrorHandler),
	).
		SetHeader("Content-Type", "application/json").
		SetBody(graphQLRequest{Query: query}).
		SetResult(&result).
		Post(ctx, endpoint)
	if err != nil {
		var decodeErr *httpclient.DecodeError
		if errors.As(err, &decodeErr) {
			return nil, apperror.New(apperror.CodeSubgraphInvalidResponse,
				apperror.WithCause(err),
				apperror.WithContext("undecodable pairDayDatas payload"))
		}
		return nil, apperror.New(apperror.CodeSubgraphRequestFailed,
			apperror.WithCause(err),
			apperror.WithContext(endpoint))
	}

	return parsePairDayData(result)
}

func parsePairDayData(result pairDayDataResponse) (*domain.TradingPairSnapshot, error) {
	if len(result.Errors) > 0 {
		return nil, apperror.New(apperror.CodeSubgraphInvalidResponse,
			apperror.WithContext("graphql error: "+result.Errors[0].Message))
	}
	if result.Data == nil {
		return nil, apperror.New(apperror.CodeSubgraphInvalidResponse,
			apperror.WithContext("missing data"))
	}
	if len(result.Data.PairDayDatas) == 0 {
		return nil, apperror.New(apperror.CodeSubgraphEmptyResult)
	}

	day := result.Data.PairDayDatas[0]
	volume, err := decimal.NewFromString(day.DailyVolumeUSD)
	if err != nil {
		return nil, apperror.New(apperror.CodeSubgraphInvalidResponse,
			apperror.WithCause(err),
			apperror.WithContext("dailyVolumeUSD: "+day.DailyVolumeUSD))
	}
	reserve, err := decimal.NewFromString(day.ReserveUSD)
	if err != nil {
		return nil, apperror.New(apperror.CodeSubgraphInvalidResponse,
			apperror.WithCause(err),
			apperror.WithContext("reserveUSD: "+day.ReserveUSD))
	}
	if !reserve.IsPositive() || volume.IsNegative() {
		return nil, apperror.New(apperror.CodeSubgraphInvalidResponse,
			apperror.WithContext(fmt.Sprintf("unusable figures volume=%s reserve=%s", volume, reserve)))
	}

	return &domain.TradingPairSnapshot{DailyVolumeUSD: volume, ReserveUSD: reserve}, nil
}

// countsAsSuccess keeps answers about the data itself (empty, malformed)
// from tripping the breaker.
func countsAsSuccess(err error) bool {
	return err == nil || apperror.GetCode(err) != apperror.CodeSubgraphRequestFailed
}

func statusErrorHandler(statusCode int, body []byte) error {
	if statusCode >= 400 {
		return fmt.Errorf("HTTP %d: %s", statusCode, truncate(string(body), 200))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func (c *Client) onBreakerStateChange(name string, from, to gobreaker.State) {
	c.logger.Warn(context.Background(), "subgraph circuit breaker state changed",
		"breaker", name, "from", from.String(), "to", to.String())
}

// Ping checks that every configured endpoint answers a trivial query.
func (c *Client) Ping(ctx context.Context) error {
	for amm, endpoint := range c.endpoints {
		resp, err := c.client.NewRequest().
			SetBody(graphQLRequest{Query: "{ _meta { block { number } } }"}).
			Post(ctx, endpoint)
		if err != nil {
			return fmt.Errorf("%s: %w", amm, err)
		}
		if resp.IsError() {
			return fmt.Errorf("%s: HTTP %d", amm, resp.StatusCode)
		}
	}
	return nil
}
