package exportmismo

import "homeready-workers/internal/models"

type Input struct {
	Lead models.Lead `json:"lead"`
}

type Output struct {
	MISMOXML      string `json:"mismoXml"`
	MISMOFilename string `json:"mismoFilename"`
	DataVersion   string `json:"mismoDataVersion"`
}
