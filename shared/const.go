package shared

const (
	UserID = "user_id"

	AdminTokenHeader = "X-Admin-Token"

	AgentOrchestrator   = "Orchestrator"
	AgentAIOrchestrator = "AI Orchestrator"
	AgentFunnel         = "Funnel"
	AgentAnalytics      = "Analytics"
	AgentRewards        = "Rewards"

	DateLayout = "2006-01-02"
)
