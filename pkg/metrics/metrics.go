package metrics

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type (
	Client interface {
		Inc(ctx context.Context, key string, value int64, attributes ...attribute.KeyValue)
		Observe(ctx context.Context, key string, value float64, attributes ...attribute.KeyValue)
	}

	// Descriptor defines metadata used when registering OTEL instruments.
	Descriptor struct {
		Description string
		Unit        string
	}

	// OTelClient records counters and histograms on an OTEL meter. Instruments
	// are registered on first use; keys found in the descriptor map get its
	// description and unit.
	OTelClient struct {
		meter       metric.Meter
		descriptors map[string]Descriptor

		mu         sync.Mutex
		counters   map[string]metric.Int64Counter
		histograms map[string]metric.Float64Histogram
		onError    func(error)
	}
)

func NewOTelClient(meter metric.Meter, descriptors map[string]Descriptor, onError func(error)) *OTelClient {
	if onError == nil {
		onError = func(error) {}
	}

	return &OTelClient{
		meter:       meter,
		descriptors: descriptors,
		counters:    make(map[string]metric.Int64Counter),
		histograms:  make(map[string]metric.Float64Histogram),
		onError:     onError,
	}
}

func (c *OTelClient) Inc(ctx context.Context, key string, value int64, attributes ...attribute.KeyValue) {
	counter, err := c.counter(key)
	if err != nil {
		c.onError(err)

		return
	}

	counter.Add(ctx, value, metric.WithAttributes(attributes...))
}

func (c *OTelClient) Observe(ctx context.Context, key string, value float64, attributes ...attribute.KeyValue) {
	histogram, err := c.histogram(key)
	if err != nil {
		c.onError(err)

		return
	}

	histogram.Record(ctx, value, metric.WithAttributes(attributes...))
}

func (c *OTelClient) counter(key string) (metric.Int64Counter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if counter, ok := c.counters[key]; ok {
		return counter, nil
	}

	counter, err := RegisterInt64Counter(c.meter, c.descriptors[key], key)
	if err != nil {
		return nil, err
	}

	c.counters[key] = counter

	return counter, nil
}

func (c *OTelClient) histogram(key string) (metric.Float64Histogram, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if histogram, ok := c.histograms[key]; ok {
		return histogram, nil
	}

	histogram, err := RegisterFloat64Histogram(c.meter, c.descriptors[key], key)
	if err != nil {
		return nil, err
	}

	c.histograms[key] = histogram

	return histogram, nil
}

// RegisterInt64Counter creates an Int64 counter using the provided descriptor.
func RegisterInt64Counter(m metric.Meter, descriptor Descriptor, name string) (metric.Int64Counter, error) {
	counter, err := m.Int64Counter(
		name,
		metric.WithDescription(descriptor.Description),
		metric.WithUnit(descriptor.Unit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", name, err)
	}

	return counter, nil
}

// RegisterFloat64Histogram creates a Float64 histogram using the provided descriptor.
func RegisterFloat64Histogram(m metric.Meter, descriptor Descriptor, name string) (metric.Float64Histogram, error) {
	histogram, err := m.Float64Histogram(
		name,
		metric.WithDescription(descriptor.Description),
		metric.WithUnit(descriptor.Unit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s histogram: %w", name, err)
	}

	return histogram, nil
}
