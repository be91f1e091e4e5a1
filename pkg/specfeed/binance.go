// Package specfeed maps exchange-reported symbol filters into
// core.ContractSpec. This is the brokerage-connectivity boundary, kept
// entirely out of the strategy core: pkg/engine never imports this
// package, and nothing here ever calls ProcessCandle.
package specfeed

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/jpillora/backoff"

	"github.com/raykavin/strategycore/pkg/core"
)

// BinanceFutures fetches ContractSpec values from the Binance USD-M
// futures exchange-info endpoint via NewExchangeInfoService, narrowed
// to the two fields the strategy core actually consumes: LOT_SIZE's
// stepSize and minQty.
type BinanceFutures struct {
	client *futures.Client
}

// NewBinanceFutures builds a spec feed against the live Binance futures
// API. Empty key/secret is valid: exchange-info is a public endpoint.
func NewBinanceFutures(key, secret string) *BinanceFutures {
	return &BinanceFutures{client: futures.NewClient(key, secret)}
}

// ContractSpec fetches and returns the ContractSpec for pair, retrying
// transient failures with a capped exponential backoff.
func (b *BinanceFutures) ContractSpec(ctx context.Context, pair string) (core.ContractSpec, error) {
	bo := &backoff.Backoff{Min: 100 * time.Millisecond, Max: 1 * time.Second}

	var lastErr error
	for attempt := 0; attempt < 5; attempt++ {
		info, err := b.client.NewExchangeInfoService().Do(ctx)
		if err != nil {
			lastErr = err
			time.Sleep(bo.Duration())
			continue
		}

		for _, symbol := range info.Symbols {
			if symbol.Symbol != pair {
				continue
			}
			return contractSpecFromFilters(symbol.Filters)
		}
		return core.ContractSpec{}, fmt.Errorf("specfeed: symbol %s not found in exchange info", pair)
	}

	return core.ContractSpec{}, fmt.Errorf("specfeed: failed to fetch exchange info for %s: %w", pair, lastErr)
}

// contractSpecFromFilters extracts MinQuantity/QuantityStep from a
// symbol's LOT_SIZE filter.
func contractSpecFromFilters(filters []map[string]any) (core.ContractSpec, error) {
	for _, filter := range filters {
		typ, _ := filter["filterType"].(string)
		if typ != "LOT_SIZE" {
			continue
		}

		minQty, err := parseFilterFloat(filter, "minQty")
		if err != nil {
			return core.ContractSpec{}, err
		}
		step, err := parseFilterFloat(filter, "stepSize")
		if err != nil {
			return core.ContractSpec{}, err
		}

		return core.ContractSpec{MinQuantity: minQty, QuantityStep: step}.Normalize(), nil
	}

	return core.ContractSpec{}, fmt.Errorf("specfeed: no LOT_SIZE filter present")
}

func parseFilterFloat(filter map[string]any, key string) (float64, error) {
	raw, ok := filter[key].(string)
	if !ok {
		return 0, fmt.Errorf("specfeed: filter key %q missing or not a string", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("specfeed: failed to parse %q: %w", key, err)
	}
	return v, nil
}
