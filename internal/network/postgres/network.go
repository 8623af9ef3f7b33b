package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/AMOUAN/projet-electro/internal/network"
)

// NetworkRepository aggregates over rows the network server ingests.
// Gateways are shared infrastructure and never scoped by tenant; devices
// and frames are scoped through their application's company.
type NetworkRepository struct {
	db *gorm.DB
}

func NewNetworkRepository(db *gorm.DB) network.RepositoryAPI {
	return &NetworkRepository{db: db}
}

func (r *NetworkRepository) scopedDevices(companyID string) *gorm.DB {
	q := r.db.Model(&network.Device{})
	if companyID != "" {
		q = q.Joins("JOIN applications ON applications.id = devices.application_id").
			Where("applications.company_id = ?", companyID)
	}
	return q
}

func (r *NetworkRepository) scopedFrames(companyID string) *gorm.DB {
	q := r.db.Model(&network.Frame{})
	if companyID != "" {
		q = q.Joins("JOIN devices ON devices.id = frames.device_id").
			Joins("JOIN applications ON applications.id = devices.application_id").
			Where("applications.company_id = ?", companyID)
	}
	return q
}

func (r *NetworkRepository) HealthStats(companyID string) (*network.HealthStats, error) {
	var stats network.HealthStats

	if err := r.db.Model(&network.Gateway{}).Count(&stats.TotalGateways).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&network.Gateway{}).
		Where("status = ?", network.GatewayOnline).
		Count(&stats.OnlineGateways).Error; err != nil {
		return nil, err
	}
	if err := r.scopedDevices(companyID).Count(&stats.TotalDevices).Error; err != nil {
		return nil, err
	}
	if err := r.scopedDevices(companyID).Where("devices.is_active = ?", true).
		Count(&stats.ActiveDevices).Error; err != nil {
		return nil, err
	}
	if stats.TotalGateways > 0 {
		stats.CoveragePct = float64(stats.OnlineGateways) / float64(stats.TotalGateways) * 100
	}

	var avgLatency *float64
	if err := r.db.Model(&network.Gateway{}).
		Where("status = ?", network.GatewayOnline).
		Select("AVG(avg_latency_ms)").Scan(&avgLatency).Error; err != nil {
		return nil, err
	}
	if avgLatency != nil {
		stats.AvgLatencyMs = *avgLatency
	}

	return &stats, nil
}

func (r *NetworkRepository) GatewayHealthList() ([]*network.GatewayHealth, error) {
	var list []*network.GatewayHealth
	err := r.db.Model(&network.Gateway{}).
		Select("id, name, status, uptime_pct, avg_latency_ms, last_seen").
		Order("name ASC").
		Scan(&list).Error
	return list, err
}

func (r *NetworkRepository) Gateways() ([]*network.Gateway, error) {
	var gateways []*network.Gateway
	err := r.db.Order("name ASC").Find(&gateways).Error
	return gateways, err
}

func (r *NetworkRepository) GatewayByID(id string) (*network.Gateway, error) {
	var g network.Gateway
	err := r.db.Where("id = ?", id).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *NetworkRepository) GatewayStats(id string) (*network.GatewayStats, error) {
	g, err := r.GatewayByID(id)
	if err != nil || g == nil {
		return nil, err
	}

	stats := &network.GatewayStats{Gateway: g}
	if err := r.db.Model(&network.Frame{}).Where("gateway_id = ?", id).
		Count(&stats.FrameCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&network.Frame{}).Where("gateway_id = ?", id).
		Distinct("device_id").Count(&stats.DeviceCount).Error; err != nil {
		return nil, err
	}

	var lastFrame *time.Time
	if err := r.db.Model(&network.Frame{}).Where("gateway_id = ?", id).
		Select("MAX(received_at)").Scan(&lastFrame).Error; err != nil {
		return nil, err
	}
	stats.LastFrameAt = lastFrame

	return stats, nil
}

func (r *NetworkRepository) Frames(companyID string, limit int) ([]*network.FrameView, error) {
	var frames []*network.FrameView
	q := r.db.Model(&network.Frame{}).
		Select("frames.*, devices.name AS device_name, devices.dev_eui AS dev_eui, gateways.name AS gateway_name").
		Joins("JOIN devices ON devices.id = frames.device_id").
		Joins("JOIN gateways ON gateways.id = frames.gateway_id")
	if companyID != "" {
		q = q.Joins("JOIN applications ON applications.id = devices.application_id").
			Where("applications.company_id = ?", companyID)
	}
	err := q.Order("frames.received_at DESC").Limit(limit).Scan(&frames).Error
	return frames, err
}

func (r *NetworkRepository) DashboardStats(companyID string, since time.Time) (*network.DashboardStats, error) {
	var stats network.DashboardStats

	if err := r.db.Model(&network.Gateway{}).Count(&stats.TotalGateways).Error; err != nil {
		return nil, err
	}
	if err := r.scopedDevices(companyID).Count(&stats.TotalDevices).Error; err != nil {
		return nil, err
	}

	appQuery := r.db.Table("applications")
	if companyID != "" {
		appQuery = appQuery.Where("company_id = ?", companyID)
	}
	if err := appQuery.Count(&stats.TotalApplications).Error; err != nil {
		return nil, err
	}

	if err := r.scopedFrames(companyID).Where("frames.received_at >= ?", since).
		Count(&stats.FramesToday).Error; err != nil {
		return nil, err
	}

	var avgUptime *float64
	if err := r.db.Model(&network.Gateway{}).
		Select("AVG(uptime_pct)").Scan(&avgUptime).Error; err != nil {
		return nil, err
	}
	if avgUptime != nil {
		stats.AvgUptimePct = *avgUptime
	}

	return &stats, nil
}

func (r *NetworkRepository) RecentActivity(companyID string, limit int) ([]*network.Activity, error) {
	var activity []*network.Activity
	q := r.db.Model(&network.Frame{}).
		Select("devices.name AS device_name, gateways.name AS gateway_name, frames.rssi, frames.received_at").
		Joins("JOIN devices ON devices.id = frames.device_id").
		Joins("JOIN gateways ON gateways.id = frames.gateway_id")
	if companyID != "" {
		q = q.Joins("JOIN applications ON applications.id = devices.application_id").
			Where("applications.company_id = ?", companyID)
	}
	err := q.Order("frames.received_at DESC").Limit(limit).Scan(&activity).Error
	return activity, err
}
