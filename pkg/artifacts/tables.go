package artifacts

// ComparisonColumnProduct is the column holding the product display name.
const ComparisonColumnProduct = "Product Name"

// RequiredComparisonColumns is the fixed column set a complete comparison
// table must carry.
func RequiredComparisonColumns() []string {
	return []string{ComparisonColumnProduct, "Rating", "Price", "Pool Size", "Cleaning Time"}
}

// ComparisonTable is the page-wide product comparison grid.
type ComparisonTable struct {
	Headers []string            `json:"headers"`
	Data    []map[string]string `json:"data"`
}

// SpecificationsTable holds a per-product specification table.
type SpecificationsTable struct {
	Product string            `json:"product,omitempty"`
	Rows    map[string]string `json:"rows,omitempty"`
}

// TablesArtifact is the tables category document
// (tables/all_tables_data.json). ComparisonTable is nil when the page
// had no comparison table at all.
type TablesArtifact struct {
	ComparisonTable      *ComparisonTable      `json:"comparison_table"`
	SpecificationsTables []SpecificationsTable `json:"specifications_tables,omitempty"`
}
