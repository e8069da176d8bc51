package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNamePullsPerformed      = "pulls_performed_total"
	MetricNameCardsAwarded        = "cards_awarded_total"
	MetricNameDailiesClaimed      = "dailies_claimed_total"
	MetricNameDropsSpawned        = "drops_spawned_total"
	MetricNameDropSlotsClaimed    = "drop_slots_claimed_total"
	MetricNameDropClaimsRejected  = "drop_claims_rejected_total"
	MetricNameListingsCreated     = "listings_created_total"
	MetricNameListingsBought      = "listings_bought_total"
	MetricNameListingsRemoved     = "listings_removed_total"
	MetricNameCompensationsFired  = "compensations_fired_total"
	MetricNamePatternsEarned      = "patterns_earned_total"
	MetricNamePatternsSpent       = "patterns_spent_total"
	MetricNameCooldownsRejected   = "cooldown_rejections_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextPullsPerformed     = "Total number of pulls performed"
	HelpTextCardsAwarded       = "Total number of cards awarded across all flows"
	HelpTextDailiesClaimed     = "Total number of daily rewards claimed"
	HelpTextDropsSpawned       = "Total number of shared drops spawned"
	HelpTextDropSlotsClaimed   = "Total number of drop slots claimed"
	HelpTextDropClaimsRejected = "Total number of rejected drop claims"
	HelpTextListingsCreated    = "Total number of marketplace listings created"
	HelpTextListingsBought     = "Total number of marketplace listings bought"
	HelpTextListingsRemoved    = "Total number of marketplace listings removed by their seller"
	HelpTextCompensationsFired = "Total number of compensating rollbacks applied"
	HelpTextPatternsEarned     = "Total patterns credited to accounts"
	HelpTextPatternsSpent      = "Total patterns debited from accounts"
	HelpTextCooldownsRejected  = "Total number of actions rejected by the cooldown gate"
)

// Metric label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelKind   = "kind"
	LabelRarity = "rarity"
	LabelItem   = "item"
	LabelReason = "reason"
	LabelAction = "action"
)

// HTTPLatencyBuckets covers the expected latency range of the API.
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
