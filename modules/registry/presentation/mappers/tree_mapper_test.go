package mappers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/entity"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/hierarchy"
)

func TestTreePrefix_GlyphsFromLastTrail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		last []bool
		want string
	}{
		{name: "nil trail", last: nil, want: ""},
		{name: "only root", last: []bool{true}, want: ""},
		{name: "non-final root", last: []bool{false}, want: ""},
		{name: "middle child", last: []bool{true, false}, want: "├── "},
		{name: "last child", last: []bool{true, true}, want: "└── "},
		{name: "open branch above", last: []bool{true, false, true}, want: "│   └── "},
		{name: "closed branch above", last: []bool{true, true, false}, want: "    ├── "},
		{name: "deep mixed trail", last: []bool{true, false, false, true}, want: "│   │   └── "},
		{name: "root level never draws", last: []bool{false, true, true}, want: "    └── "},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, TreePrefix(tc.last))
		})
	}
}

func TestTreeRowsToViewModels_RendersConnectedLabels(t *testing.T) {
	t.Parallel()

	effective := time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)
	entities := []entity.Entity{
		entity.New("91000000001", "Alpha Holdings Pty Ltd", "", entity.KindParent, entity.StatusActive, effective),
		entity.New("91000000002", "Alpha Finance Pty Ltd", "91000000001", entity.KindSubsidiary, entity.StatusActive, effective),
		entity.New("91000000003", "Alpha Operations Pty Ltd", "91000000001", entity.KindJointVenture, entity.StatusActive, effective),
		entity.New("91000000005", "Alpha Finance Services Pty Ltd", "91000000002", entity.KindSubsidiary, entity.StatusActive, effective),
		entity.New("91000000007", "Alpha Ops Logistics Pty Ltd", "91000000003", entity.KindSubsidiary, entity.StatusActive, effective),
	}

	rows, err := hierarchy.BuildTree(entities, nil)
	require.NoError(t, err)

	vms := TreeRowsToViewModels(rows)
	require.Len(t, vms, 5)

	labels := make([]string, 0, len(vms))
	for _, vm := range vms {
		labels = append(labels, vm.Label)
	}
	require.Equal(t, []string{
		"Alpha Holdings Pty Ltd",
		"├── Alpha Finance Pty Ltd",
		"│   └── Alpha Finance Services Pty Ltd",
		"└── Alpha Operations Pty Ltd",
		"    └── Alpha Ops Logistics Pty Ltd",
	}, labels)

	require.Equal(t, "91000000001", vms[0].ABN)
	require.Equal(t, 0, vms[0].Depth)
	require.Empty(t, vms[0].Prefix)
	require.Equal(t, 2, vms[2].Depth)
	require.Equal(t, "│   └── ", vms[2].Prefix)
}
