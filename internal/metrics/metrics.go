package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Agent pipeline metrics
	AgentQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_agent_queries_total",
		Help: "Total number of assistant queries handled.",
	}, []string{"intent"}) // intent: specific_tool, category_search, general_search

	BlockedQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_blocked_queries_total",
		Help: "Total number of queries rejected by the content filter.",
	}, []string{"category"})

	LLMFallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_llm_fallback_total",
		Help: "Total number of times an LLM call fell back to the rule-based path.",
	}, []string{"operation"}) // operation: "classify" or "generate"

	SearchEmptyTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_search_empty_total",
		Help: "Total number of searches that matched zero tools.",
	})

	MissingRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_missing_requests_total",
		Help: "Total number of missing-tool requests recorded.",
	})
)
