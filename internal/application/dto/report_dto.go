package dto

import "github.com/nicholasloureiro/backend-cs/internal/domain/entity"

// ReportSummary resume una ejecución del pipeline (salida del CLI).
type ReportSummary struct {
	RunID         string `json:"run_id"`
	Operation     string `json:"operation"`
	StoreCode     string `json:"store_code,omitempty"`
	StoreName     string `json:"store_name"`
	Records       int    `json:"records"`
	RankingMerged bool   `json:"ranking_merged"`
	Format        string `json:"format"`
	File          string `json:"file"`
	Bytes         int    `json:"bytes"`
}

// NewReportSummary arma el resumen a partir del conjunto producido.
func NewReportSummary(runID, op string, set *entity.RecordSet) ReportSummary {
	return ReportSummary{
		RunID:         runID,
		Operation:     op,
		StoreCode:     set.StoreCode,
		StoreName:     set.StoreName,
		Records:       set.Len(),
		RankingMerged: set.RankingMerged,
	}
}
