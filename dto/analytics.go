package dto

import (
	"encoding/json"
	"math"

	"github.com/lac-hong-legacy/ven_growth/model"
)

type TrackFunnelEventRequest struct {
	Name    string          `json:"name" validate:"required,funnel_event" example:"link_clicked"`
	Payload json.RawMessage `json:"payload" swaggertype:"object"`
}

func (r TrackFunnelEventRequest) Validate() error {
	return GetValidator().Struct(r)
}

type DecisionLogResponse struct {
	Decisions []model.DecisionLogEntry `json:"decisions"`
}

// FunnelSummaryResponse reports conversion rate as a whole percentage of links created and
// k-factor as conversions per link created.
type FunnelSummaryResponse struct {
	Counts         map[model.FunnelEventName]int64 `json:"counts"`
	ConversionRate int64                           `json:"conversion_rate" example:"40"`
	KFactor        float64                         `json:"k_factor" example:"0.4"`
	Events         []model.FunnelEvent             `json:"events"`
}

func NewFunnelSummary(counts map[model.FunnelEventName]int64, events []model.FunnelEvent) FunnelSummaryResponse {
	resp := FunnelSummaryResponse{Counts: counts, Events: events}
	sent := counts[model.FunnelLinkCreated]
	if sent > 0 {
		conversions := counts[model.FunnelConversion]
		resp.ConversionRate = int64(math.Round(float64(conversions) / float64(sent) * 100))
		resp.KFactor = math.Round(float64(conversions)/float64(sent)*100) / 100
	}
	return resp
}

type ArchiveExportResponse struct {
	Object string `json:"object" example:"funnel/2024-05-01.jsonl"`
	Events int    `json:"events" example:"42"`
	Size   int64  `json:"size" example:"8192"`
}
