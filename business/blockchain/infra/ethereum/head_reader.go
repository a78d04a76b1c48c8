// Package ethereum reads chain state over JSON-RPC with go-ethereum.
package ethereum

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/hermes-yield/business/blockchain/domain"
	"github.com/fd1az/hermes-yield/internal/apperror"
	"github.com/fd1az/hermes-yield/internal/circuitbreaker"
	"github.com/fd1az/hermes-yield/internal/logger"
)

const (
	tracerName = "github.com/fd1az/hermes-yield/business/blockchain/infra/ethereum"
	meterName  = "github.com/fd1az/hermes-yield/business/blockchain/infra/ethereum"
)

// HeadReaderConfig holds configuration for the head reader.
type HeadReaderConfig struct {
	RPCURL         string
	RequestTimeout time.Duration
}

// DefaultHeadReaderConfig returns sensible defaults.
func DefaultHeadReaderConfig(rpcURL string) HeadReaderConfig {
	return HeadReaderConfig{
		RPCURL:         rpcURL,
		RequestTimeout: 10 * time.Second,
	}
}

// headerClient is the subset of ethclient.Client used here.
type headerClient interface {
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	Close()
}

type dialFunc func(ctx context.Context, url string) (headerClient, error)

func dialEthclient(ctx context.Context, url string) (headerClient, error) {
	return ethclient.DialContext(ctx, url)
}

type headReaderMetrics struct {
	requests  metric.Int64Counter
	errors    metric.Int64Counter
	headBlock metric.Int64Gauge
}

// HeadReader implements app.HeadReader over JSON-RPC. The connection is
// dialed on first use.
type HeadReader struct {
	config HeadReaderConfig
	logger logger.LoggerInterface
	dial   dialFunc

	client   headerClient
	clientMu sync.Mutex

	cb *circuitbreaker.CircuitBreaker[*types.Header]

	tracer  trace.Tracer
	metrics *headReaderMetrics
}

// NewHeadReader creates a new head reader.
func NewHeadReader(cfg HeadReaderConfig, log logger.LoggerInterface) (*HeadReader, error) {
	return newHeadReader(cfg, log, dialEthclient)
}

func newHeadReader(cfg HeadReaderConfig, log logger.LoggerInterface, dial dialFunc) (*HeadReader, error) {
	if cfg.RPCURL == "" {
		return nil, apperror.New(apperror.CodeConfigurationError,
			apperror.WithContext("head reader needs an RPC URL"))
	}

	h := &HeadReader{
		config: cfg,
		logger: log,
		dial:   dial,
		tracer: otel.Tracer(tracerName),
	}

	if err := h.initMetrics(); err != nil {
		return nil, err
	}

	cbCfg := circuitbreaker.DefaultConfig("eth-head")
	cbCfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn(context.Background(), "rpc circuit breaker state changed",
			"breaker", name, "from", from.String(), "to", to.String())
	}
	h.cb = circuitbreaker.New[*types.Header](cbCfg)

	return h, nil
}

func (h *HeadReader) initMetrics() error {
	meter := otel.Meter(meterName)
	var err error

	h.metrics = &headReaderMetrics{}

	h.metrics.requests, err = meter.Int64Counter(
		"eth_head_requests_total",
		metric.WithDescription("Total latest block requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return err
	}

	h.metrics.errors, err = meter.Int64Counter(
		"eth_head_errors_total",
		metric.WithDescription("Failed latest block requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	h.metrics.headBlock, err = meter.Int64Gauge(
		"eth_head_block",
		metric.WithDescription("Latest observed block number"),
		metric.WithUnit("{block}"),
	)
	return err
}

// Connect establishes the connection to the node if not already connected.
func (h *HeadReader) Connect(ctx context.Context) error {
	_, err := h.connect(ctx)
	return err
}

func (h *HeadReader) connect(ctx context.Context) (headerClient, error) {
	h.clientMu.Lock()
	defer h.clientMu.Unlock()

	if h.client != nil {
		return h.client, nil
	}

	ctx, span := h.tracer.Start(ctx, "eth.connect",
		trace.WithAttributes(attribute.String("url", h.config.RPCURL)),
	)
	defer span.End()

	client, err := h.dial(ctx, h.config.RPCURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dial failed")
		return nil, apperror.New(apperror.CodeEthereumConnectionFailed,
			apperror.WithCause(err),
			apperror.WithContext(h.config.RPCURL))
	}

	h.client = client
	h.logger.Info(ctx, "rpc connected", "url", h.config.RPCURL)
	return client, nil
}

// LatestBlock retrieves the most recent block header.
func (h *HeadReader) LatestBlock(ctx context.Context) (*domain.Block, error) {
	ctx, span := h.tracer.Start(ctx, "eth.latest_block")
	defer span.End()

	h.metrics.requests.Add(ctx, 1)

	client, err := h.connect(ctx)
	if err != nil {
		h.metrics.errors.Add(ctx, 1)
		span.RecordError(err)
		return nil, err
	}

	if h.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.RequestTimeout)
		defer cancel()
	}

	header, err := h.cb.Execute(func() (*types.Header, error) {
		return client.HeaderByNumber(ctx, nil) // nil = latest
	})
	if err != nil {
		h.metrics.errors.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		if circuitbreaker.IsRejected(err) {
			return nil, apperror.New(apperror.CodeCircuitOpen,
				apperror.WithCause(err),
				apperror.WithContext(h.cb.Name()))
		}
		return nil, apperror.New(apperror.CodeEthereumRPCError,
			apperror.WithCause(err),
			apperror.WithContext("failed to get latest block"))
	}
	if header == nil || header.Number == nil {
		err := apperror.New(apperror.CodeBlockNotFound, apperror.WithContext("latest"))
		span.RecordError(err)
		return nil, err
	}

	block := headerToBlock(header)
	h.metrics.headBlock.Record(ctx, int64(block.Number))

	span.SetAttributes(attribute.Int64("block_number", int64(block.Number)))
	span.SetStatus(codes.Ok, "fetched")
	return block, nil
}

// headerToBlock converts an Ethereum header to domain Block.
func headerToBlock(header *types.Header) *domain.Block {
	return &domain.Block{
		Number:     header.Number.Uint64(),
		Hash:       header.Hash(),
		ParentHash: header.ParentHash,
		Timestamp:  time.Unix(int64(header.Time), 0),
	}
}

// Close closes the RPC connection.
func (h *HeadReader) Close() error {
	h.clientMu.Lock()
	defer h.clientMu.Unlock()

	if h.client != nil {
		h.client.Close()
		h.client = nil
	}
	return nil
}
