package domain

import (
	"time"
)

const (
	PlatformMeta   = "meta"
	PlatformGoogle = "google"
	PlatformTikTok = "tiktok"
)

// PlatformAdAccount representa uma conta de anúncios de uma plataforma vinculada a uma conta
type PlatformAdAccount struct {
	ID         string `json:"id"`
	AccountID  string `json:"account_id"`
	Platform   string `json:"platform"`
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
}

// DailyPerformance é uma linha diária de desempenho de anúncios
type DailyPerformance struct {
	Date        time.Time `json:"date"`
	Spend       float64   `json:"spend"`
	Impressions float64   `json:"impressions"`
	Clicks      float64   `json:"clicks"`
	Conversions float64   `json:"conversions"`
	Revenue     float64   `json:"revenue"`
}

// PlatformSeries agrupa as linhas diárias de uma conta de anúncios
type PlatformSeries struct {
	AdAccount PlatformAdAccount
	Rows      []DailyPerformance
}
