package dispatch

import (
	"github.com/JunasVee/dynamits-driver/internal/commons"
	"github.com/JunasVee/dynamits-driver/internal/domain"
	"github.com/JunasVee/dynamits-driver/internal/maps"
)

// SDKConfig carries what the browser needs to boot the mapping SDK.
type SDKConfig struct {
	APIKey string `json:"apiKey"`
	MapID  string `json:"mapId"`
}

type MapViewResponse struct {
	SDK          SDKConfig            `json:"sdk"`
	Settings     *commons.MapSettings `json:"settings"`
	Map          maps.Snapshot        `json:"map"`
	PendingCount int                  `json:"pendingCount"`
}

type ClaimResponse struct {
	Order   domain.Order  `json:"order"`
	Resumed bool          `json:"resumed"`
	Warning string        `json:"warning,omitempty"`
	Map     maps.Snapshot `json:"map"`
}

type ClaimAttemptDTO struct {
	AttemptID  string `json:"attemptId"`
	State      string `json:"state"`
	Error      string `json:"error,omitempty"`
	RecordedAt string `json:"recordedAt"`
}

type ClaimAttemptsResponse struct {
	PackageID string            `json:"packageId"`
	Attempts  []ClaimAttemptDTO `json:"attempts"`
	Count     int               `json:"count"`
}

type PushLocationRequest struct {
	Latitude  domain.Coordinate `json:"latitude"`
	Longitude domain.Coordinate `json:"longitude"`
	Accuracy  float64           `json:"accuracy"`
}
