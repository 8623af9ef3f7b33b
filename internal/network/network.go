package network

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GatewayStatus string

const (
	GatewayOnline  GatewayStatus = "online"
	GatewayOffline GatewayStatus = "offline"
)

// Gateway mirrors a row ingested from the network server. This service
// only reads it.
type Gateway struct {
	ID           string        `gorm:"primaryKey;size:36" json:"id"`
	EUI          string        `gorm:"uniqueIndex;size:23;not null" json:"eui"`
	Name         string        `gorm:"size:255;not null" json:"name"`
	Status       GatewayStatus `gorm:"size:16;not null;default:offline" json:"status"`
	Latitude     float64       `json:"latitude"`
	Longitude    float64       `json:"longitude"`
	UptimePct    float64       `json:"uptime_pct"`
	AvgLatencyMs float64       `json:"avg_latency_ms"`
	LastSeen     *time.Time    `json:"last_seen,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (Gateway) TableName() string { return "gateways" }

func (g *Gateway) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

type Device struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	DevEUI        string     `gorm:"uniqueIndex;size:23;not null" json:"dev_eui"`
	Name          string     `gorm:"size:255;not null" json:"name"`
	ApplicationID string     `gorm:"size:36;not null;index" json:"application_id"`
	IsActive      bool       `gorm:"not null;default:true" json:"is_active"`
	BatteryLevel  *float64   `json:"battery_level,omitempty"`
	LastSeen      *time.Time `json:"last_seen,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Device) TableName() string { return "devices" }

func (d *Device) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// Frame is one received uplink.
type Frame struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	DeviceID   string    `gorm:"size:36;not null;index" json:"device_id"`
	GatewayID  string    `gorm:"size:36;not null;index" json:"gateway_id"`
	FCnt       uint32    `gorm:"not null" json:"f_cnt"`
	Frequency  float64   `json:"frequency"`
	RSSI       int       `json:"rssi"`
	SNR        float64   `json:"snr"`
	Payload    string    `gorm:"type:text" json:"payload"`
	ReceivedAt time.Time `gorm:"not null;index" json:"received_at"`
}

func (Frame) TableName() string { return "frames" }

func (f *Frame) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// HealthStats is the network-wide summary shown on the health page.
type HealthStats struct {
	TotalGateways  int64   `json:"total_gateways"`
	OnlineGateways int64   `json:"online_gateways"`
	TotalDevices   int64   `json:"total_devices"`
	ActiveDevices  int64   `json:"active_devices"`
	CoveragePct    float64 `json:"coverage_pct"`
	AvgLatencyMs   float64 `json:"avg_latency_ms"`
}

// GatewayHealth is the per-gateway row of the health page.
type GatewayHealth struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Status       GatewayStatus `json:"status"`
	UptimePct    float64       `json:"uptime_pct"`
	AvgLatencyMs float64       `json:"avg_latency_ms"`
	LastSeen     *time.Time    `json:"last_seen,omitempty"`
}

// FrameView joins a frame with the names a human recognizes.
type FrameView struct {
	Frame
	DeviceName  string `json:"device_name"`
	DevEUI      string `json:"dev_eui"`
	GatewayName string `json:"gateway_name"`
}

// GatewayStats is the detail view for one gateway.
type GatewayStats struct {
	Gateway     *Gateway   `json:"gateway"`
	FrameCount  int64      `json:"frame_count"`
	DeviceCount int64      `json:"device_count"`
	LastFrameAt *time.Time `json:"last_frame_at,omitempty"`
}

// DashboardStats feeds the landing dashboard.
type DashboardStats struct {
	TotalGateways     int64   `json:"total_gateways"`
	TotalDevices      int64   `json:"total_devices"`
	TotalApplications int64   `json:"total_applications"`
	FramesToday       int64   `json:"frames_today"`
	AvgUptimePct      float64 `json:"avg_uptime_pct"`
}

// Activity is one line of the recent-activity feed, derived from the
// latest frames.
type Activity struct {
	DeviceName  string    `json:"device_name"`
	GatewayName string    `json:"gateway_name"`
	RSSI        int       `json:"rssi"`
	ReceivedAt  time.Time `json:"received_at"`
}

// RepositoryAPI reads ingested telemetry. Gateways are shared
// infrastructure and never tenant-scoped, so the gateway listings take
// no company filter.
type RepositoryAPI interface {
	HealthStats(companyID string) (*HealthStats, error)
	GatewayHealthList() ([]*GatewayHealth, error)
	Gateways() ([]*Gateway, error)
	GatewayByID(id string) (*Gateway, error)
	GatewayStats(id string) (*GatewayStats, error)
	Frames(companyID string, limit int) ([]*FrameView, error)
	DashboardStats(companyID string, since time.Time) (*DashboardStats, error)
	RecentActivity(companyID string, limit int) ([]*Activity, error)
}

type ServiceAPI interface {
	HealthStats(companyID string) (*HealthStats, error)
	GatewayHealthList() ([]*GatewayHealth, error)
	Gateways() ([]*Gateway, error)
	GatewayStats(id string) (*GatewayStats, error)
	Frames(companyID string, limit int) ([]*FrameView, error)
	DashboardStats(companyID string) (*DashboardStats, error)
	RecentActivity(companyID string, limit int) ([]*Activity, error)
}
