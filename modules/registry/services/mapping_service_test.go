package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/alphaholdings/entity-registry/pkg/eventbus"
)

func newMappingServiceForValidation() *MappingService {
	// Validation rejections short-circuit before any store access.
	return NewMappingService(nil, eventbus.NewEventPublisher(logrus.New()))
}

func TestMappingService_Create_RejectsPercentageOutOfRange(t *testing.T) {
	t.Parallel()
	svc := newMappingServiceForValidation()

	for _, raw := range []string{"-0.01", "100.01", "250"} {
		_, err := svc.Create(context.Background(), CreateMappingInput{
			GroupCode:     "FIN_INT",
			SectorCode:    "F1N01",
			ABN:           "91000000002",
			Consolidation: decimal.RequireFromString(raw),
			EffectiveDate: date(2020, 1, 1),
		})

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr, "percentage %s", raw)
		require.Equal(t, 400, svcErr.Status)
		require.Equal(t, "MAPPING_INVALID_PERCENTAGE", svcErr.Code)
	}
}

func TestMappingService_Create_AcceptsBoundaryPercentages(t *testing.T) {
	t.Parallel()

	// Zero and one hundred are inside the range; the storeless service fails
	// later with a missing pool, not a validation rejection.
	svc := newMappingServiceForValidation()
	for _, raw := range []string{"0", "100"} {
		_, err := svc.Create(context.Background(), CreateMappingInput{
			GroupCode:     "FIN_INT",
			SectorCode:    "F1N01",
			ABN:           "91000000002",
			Consolidation: decimal.RequireFromString(raw),
			EffectiveDate: date(2020, 1, 1),
		})

		var svcErr *ServiceError
		if errors.As(err, &svcErr) {
			require.NotEqual(t, "MAPPING_INVALID_PERCENTAGE", svcErr.Code, "percentage %s", raw)
		}
	}
}

func TestMappingService_Create_RequiresEffectiveDate(t *testing.T) {
	t.Parallel()
	svc := newMappingServiceForValidation()

	_, err := svc.Create(context.Background(), CreateMappingInput{
		GroupCode:     "FIN_INT",
		SectorCode:    "F1N01",
		ABN:           "91000000002",
		Consolidation: decimal.NewFromInt(100),
	})

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, 400, svcErr.Status)
	require.Equal(t, "MAPPING_INVALID_WINDOW", svcErr.Code)
}

func TestMappingService_Create_RejectsEndBeforeEffective(t *testing.T) {
	t.Parallel()
	svc := newMappingServiceForValidation()

	_, err := svc.Create(context.Background(), CreateMappingInput{
		GroupCode:     "FIN_INT",
		SectorCode:    "F1N01",
		ABN:           "91000000002",
		Consolidation: decimal.NewFromInt(100),
		EffectiveDate: date(2021, 6, 1),
		EndDate:       date(2021, 1, 1),
	})

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, 400, svcErr.Status)
	require.Equal(t, "MAPPING_INVALID_WINDOW", svcErr.Code)
}

func TestMappingService_Update_RejectsPercentageOutOfRange(t *testing.T) {
	t.Parallel()
	svc := newMappingServiceForValidation()

	_, err := svc.Update(context.Background(), "MAP00001", UpdateMappingInput{
		Consolidation: decimal.RequireFromString("101"),
		Active:        true,
	})

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, 400, svcErr.Status)
	require.Equal(t, "MAPPING_INVALID_PERCENTAGE", svcErr.Code)
}
