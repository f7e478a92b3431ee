package viewmodels

// JSON shapes served by the registry API. Dates render as YYYY-MM-DD;
// timestamps as RFC 3339; absent values are omitted.

type Entity struct {
	ABN           string `json:"abn"`
	Name          string `json:"entity_name"`
	ParentABN     string `json:"parent_abn,omitempty"`
	Kind          string `json:"entity_type"`
	Status        string `json:"status"`
	EffectiveDate string `json:"effective_date"`
	EndDate       string `json:"end_date,omitempty"`
	CreatedBy     string `json:"created_by,omitempty"`
	CreatedAt     string `json:"created_date,omitempty"`
	ModifiedBy    string `json:"modified_by,omitempty"`
	ModifiedAt    string `json:"modified_date,omitempty"`
}

type EntityDetail struct {
	Entity
	Root       bool  `json:"is_root"`
	ChildCount int64 `json:"child_count"`
}

// TreeRow is one line of the rendered hierarchy. Prefix carries the
// box-drawing connectors for the row's depth; Label is prefix plus name,
// ready to print.
type TreeRow struct {
	ABN    string `json:"abn"`
	Name   string `json:"entity_name"`
	Kind   string `json:"entity_type"`
	Status string `json:"status"`
	Depth  int    `json:"depth"`
	Prefix string `json:"prefix"`
	Label  string `json:"label"`
}

type Group struct {
	Code        string `json:"reporting_group_code"`
	Name        string `json:"reporting_group_name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"is_active"`
	CreatedAt   string `json:"created_date,omitempty"`
}

type Sector struct {
	Code        string `json:"sector_code"`
	Name        string `json:"sector_name"`
	Description string `json:"sector_description,omitempty"`
	Active      bool   `json:"is_active"`
	CreatedAt   string `json:"created_date,omitempty"`
}

type Mapping struct {
	MappingID     string `json:"mapping_id"`
	GroupCode     string `json:"reporting_group_code"`
	SectorCode    string `json:"sector_code"`
	ABN           string `json:"abn"`
	Consolidation string `json:"consolidation_percentage"`
	EffectiveDate string `json:"effective_date"`
	EndDate       string `json:"end_date,omitempty"`
	Active        bool   `json:"is_active"`
	CreatedBy     string `json:"created_by,omitempty"`
	CreatedAt     string `json:"created_date,omitempty"`
	ModifiedBy    string `json:"modified_by,omitempty"`
	ModifiedAt    string `json:"modified_date,omitempty"`
}

// MappingDetail is a mapping joined with the names of everything it points
// at.
type MappingDetail struct {
	MappingID     string `json:"mapping_id"`
	GroupCode     string `json:"reporting_group_code"`
	GroupName     string `json:"reporting_group_name"`
	SectorCode    string `json:"sector_code"`
	SectorName    string `json:"sector_name"`
	ABN           string `json:"abn"`
	EntityName    string `json:"entity_name"`
	Consolidation string `json:"consolidation_percentage"`
	EffectiveDate string `json:"effective_date"`
	EndDate       string `json:"end_date,omitempty"`
	Active        bool   `json:"is_active"`
}

type DashboardMetrics struct {
	TotalEntities   int64 `json:"total_entities"`
	ActiveEntities  int64 `json:"active_entities"`
	RootEntities    int64 `json:"root_entities"`
	ReportingGroups int64 `json:"reporting_groups"`
	SectorCodes     int64 `json:"sector_codes"`
	TotalMappings   int64 `json:"total_mappings"`
	ActiveMappings  int64 `json:"active_mappings"`
}

type KindStatusCount struct {
	Kind   string `json:"entity_type"`
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type TimelineEntry struct {
	ABN           string `json:"abn"`
	Name          string `json:"entity_name"`
	Kind          string `json:"entity_type"`
	Status        string `json:"status"`
	EffectiveDate string `json:"effective_date"`
}

type EntitySummaryReport struct {
	Total     int64             `json:"total_entities"`
	Breakdown []KindStatusCount `json:"breakdown"`
	Timeline  []TimelineEntry   `json:"timeline"`
}

type HierarchyBreakdownRow struct {
	ABN        string `json:"abn"`
	Name       string `json:"entity_name"`
	Kind       string `json:"entity_type"`
	Status     string `json:"status"`
	ParentABN  string `json:"parent_abn,omitempty"`
	ParentName string `json:"parent_name,omitempty"`
	ChildCount int    `json:"child_count"`
	Depth      int    `json:"depth"`
	Root       bool   `json:"is_root"`
}

type GroupMappingSummary struct {
	GroupCode        string `json:"reporting_group_code"`
	GroupName        string `json:"reporting_group_name"`
	TotalMappings    int64  `json:"total_mappings"`
	ActiveMappings   int64  `json:"active_mappings"`
	DistinctEntities int64  `json:"distinct_entities"`
	DistinctSectors  int64  `json:"distinct_sectors"`
}

type MappingSummaryReport struct {
	Groups   []GroupMappingSummary `json:"groups"`
	Mappings []MappingDetail       `json:"mappings"`
}

type EntityDetailReport struct {
	Entity     Entity          `json:"entity"`
	ParentName string          `json:"parent_name,omitempty"`
	Root       bool            `json:"is_root"`
	ChildCount int64           `json:"child_count"`
	Children   []Entity        `json:"children"`
	Mappings   []MappingDetail `json:"mappings"`
}
