package services

import "context"

type DashboardService struct {
	reporting ReportingQueryRepository
}

func NewDashboardService(reporting ReportingQueryRepository) *DashboardService {
	return &DashboardService{reporting: reporting}
}

func (s *DashboardService) Metrics(ctx context.Context) (DashboardMetrics, error) {
	m, err := s.reporting.DashboardMetrics(ctx)
	if err != nil {
		return DashboardMetrics{}, storeError(err)
	}
	return m, nil
}
