package model

import "time"

// AgentName identifies one of the four scheduled agents.
type AgentName string

const (
	AgentContent   AgentName = "content"
	AgentMarketing AgentName = "marketing"
	AgentCustomer  AgentName = "customer"
	AgentAnalytics AgentName = "analytics"
)

// AgentNames lists every agent in display order.
var AgentNames = []AgentName{AgentContent, AgentMarketing, AgentCustomer, AgentAnalytics}

// ParseAgentName returns the agent matching s, or false if s is not a known agent.
func ParseAgentName(s string) (AgentName, bool) {
	for _, n := range AgentNames {
		if string(n) == s {
			return n, true
		}
	}
	return "", false
}

// AgentState is the lifecycle state of an agent.
type AgentState string

const (
	StateRunning AgentState = "running"
	StateIdle    AgentState = "idle"
	StateError   AgentState = "error"
	StateStopped AgentState = "stopped"
)

// AgentStatus holds the fields shared by every agent.
type AgentStatus struct {
	Active  bool       `json:"active"`
	Status  AgentState `json:"status"`
	LastRun time.Time  `json:"lastRun"`
}

// ContentStats is the content agent's record.
type ContentStats struct {
	AgentStatus
	Products int `json:"products"`
	Posts    int `json:"posts"`
	Articles int `json:"articles"`
}

// MarketingStats is the marketing agent's record.
type MarketingStats struct {
	AgentStatus
	Campaigns int     `json:"campaigns"`
	ROAS      float64 `json:"roas"`
	Spend     int     `json:"spend"`
}

// CustomerStats is the customer agent's record.
type CustomerStats struct {
	AgentStatus
	Clients     int `json:"clients"`
	Emails      int `json:"emails"`
	Conversions int `json:"conversions"`
}

// AnalyticsStats is the analytics agent's record.
type AnalyticsStats struct {
	AgentStatus
	Revenue float64 `json:"revenue"`
	Alerts  int     `json:"alerts"`
}

// Agents is a point-in-time copy of all four agent records.
type Agents struct {
	Content   ContentStats   `json:"content"`
	Marketing MarketingStats `json:"marketing"`
	Customer  CustomerStats  `json:"customer"`
	Analytics AnalyticsStats `json:"analytics"`
}

// Status returns the shared fields of the named agent.
func (a Agents) Status(name AgentName) (AgentStatus, bool) {
	switch name {
	case AgentContent:
		return a.Content.AgentStatus, true
	case AgentMarketing:
		return a.Marketing.AgentStatus, true
	case AgentCustomer:
		return a.Customer.AgentStatus, true
	case AgentAnalytics:
		return a.Analytics.AgentStatus, true
	}
	return AgentStatus{}, false
}

// Stats returns the full record of the named agent as an untyped value for JSON replies.
func (a Agents) Stats(name AgentName) (any, bool) {
	switch name {
	case AgentContent:
		return a.Content, true
	case AgentMarketing:
		return a.Marketing, true
	case AgentCustomer:
		return a.Customer, true
	case AgentAnalytics:
		return a.Analytics, true
	}
	return nil, false
}
