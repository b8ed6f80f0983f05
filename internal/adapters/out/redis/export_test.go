package redis

import "time"

type SummaryStore = summaryStore

func NewOrderSummaryCacheWithStore(store SummaryStore, ttl time.Duration) *OrderSummaryCache {
	return newOrderSummaryCache(store, ttl)
}
