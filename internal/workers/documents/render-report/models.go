package renderreport

import "homeready-workers/internal/models"

type Input struct {
	Lead  models.Lead   `json:"lead"`
	Agent *models.Agent `json:"agent,omitempty"`
}

type Output struct {
	ReportPDF      string `json:"reportPdf"` // base64
	ReportFilename string `json:"reportFilename"`
	ReportSize     int    `json:"reportSizeBytes"`
}
