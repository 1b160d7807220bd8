package models

import (
	"slices"
	"time"
)

type CostAnalysis struct {
	TotalCost   float64         `json:"totalCost"`
	DailyCost   float64         `json:"dailyCost"`
	WeeklyCost  float64         `json:"weeklyCost"`
	MonthlyCost float64         `json:"monthlyCost"`
	YearlyCost  float64         `json:"yearlyCost"`
	Breakdown   []CostBreakdown `json:"breakdown"`
}

type CostBreakdown struct {
	Service   string    `json:"service"`
	Model     string    `json:"model"`
	Usage     float64   `json:"usage"`
	Cost      float64   `json:"cost"`
	Timestamp time.Time `json:"timestamp"`
}

func (c CostAnalysis) Clone() CostAnalysis {
	c.Breakdown = slices.Clone(c.Breakdown)
	return c
}
