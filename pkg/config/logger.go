package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger couples the trace-aware otelzap logger with an optional Loki sink.
type Logger struct {
	Logger      *otelzap.Logger
	ServiceName string
	lokiURL     string
	httpClient  *http.Client
}

type LokiPush struct {
	Streams []LokiStream `json:"streams"`
}

type LokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

func NewLogger(serviceName, lokiURL string) (*Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	zapLogger, err := config.Build(zap.Fields(zap.String("service", serviceName)))

	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	return newLogger(zapLogger, serviceName, lokiURL), nil
}

func NewNopLogger() *Logger {
	return newLogger(zap.NewNop(), "test", "")
}

func newLogger(zapLogger *zap.Logger, serviceName, lokiURL string) *Logger {
	l := &Logger{
		Logger:      otelzap.New(zapLogger),
		ServiceName: serviceName,
		httpClient:  &http.Client{Timeout: 5 * time.Second},
	}

	if lokiURL != "" {
		l.lokiURL = lokiURL + "/loki/api/v1/push"
	}

	return l
}

// Zap returns the plain zap logger handed to services and adapters.
func (l *Logger) Zap() *zap.Logger {
	return l.Logger.Logger
}

func (l *Logger) Sync() error {
	return l.Logger.Sync()
}

func (l *Logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.log(ctx, zapcore.InfoLevel, msg, fields...)
}

func (l *Logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.log(ctx, zapcore.ErrorLevel, msg, fields...)
}

func (l *Logger) log(ctx context.Context, level zapcore.Level, msg string, fields ...zap.Field) {
	switch level {
	case zapcore.ErrorLevel:
		l.Logger.Ctx(ctx).Error(msg, fields...)
	case zapcore.WarnLevel:
		l.Logger.Ctx(ctx).Warn(msg, fields...)
	default:
		l.Logger.Ctx(ctx).Info(msg, fields...)
	}

	if l.lokiURL != "" {
		go l.Push(ctx, level, msg, fields)
	}
}

// Push sends one line to Loki. Delivery failures are dropped.
func (l *Logger) Push(ctx context.Context, level zapcore.Level, msg string, fields []zap.Field) {
	if l.lokiURL == "" {
		return
	}

	line, err := l.encodeLine(ctx, level, msg, fields)

	if err != nil {
		return
	}

	body, err := json.Marshal(LokiPush{
		Streams: []LokiStream{
			{
				Stream: map[string]string{
					"service": l.ServiceName,
					"level":   level.String(),
				},
				Values: [][]string{
					{strconv.FormatInt(time.Now().UnixNano(), 10), line},
				},
			},
		},
	})

	if err != nil {
		return
	}

	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodPost, l.lokiURL, bytes.NewReader(body))

	if err != nil {
		return
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)

	if err != nil {
		return
	}

	resp.Body.Close()
}

func (l *Logger) encodeLine(ctx context.Context, level zapcore.Level, msg string, fields []zap.Field) (string, error) {
	enc := zapcore.NewMapObjectEncoder()

	for _, field := range fields {
		field.AddTo(enc)
	}

	enc.Fields["timestamp"] = time.Now().Format(time.RFC3339Nano)
	enc.Fields["level"] = level.String()
	enc.Fields["message"] = msg
	enc.Fields["service"] = l.ServiceName

	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		enc.Fields["trace_id"] = span.SpanContext().TraceID().String()
		enc.Fields["span_id"] = span.SpanContext().SpanID().String()
	}

	line, err := json.Marshal(enc.Fields)

	return string(line), err
}
