package domain

// Well-known seed locations.
const (
	// DefaultGroup holds the default document.
	DefaultGroup = "Default_Group"

	// DefaultFile is the document loaded when a request names none.
	DefaultFile = "Default_File.json"

	// SecondaryGroup is created empty at seed time.
	SecondaryGroup = "Secondary_Group"
)

// SeedGroups returns the groups guaranteed to exist after seeding, in order.
func SeedGroups() []string {
	return []string{DefaultGroup, SecondaryGroup}
}

// SampleTree returns the tree written to the default document on first run.
func SampleTree() TreeNode {
	return TreeNode{
		Name: "Sophisticated_Root",
		Children: []TreeNode{
			{
				Name: "Analytics",
				Children: []TreeNode{
					{Name: "Dashboards", Size: 3938},
					{Name: "Reports", Size: 3812},
					{Name: "Pipelines", Size: 6714},
				},
			},
			{
				Name: "Infrastructure",
				Children: []TreeNode{
					{Name: "Compute", Size: 7074},
					{Name: "Storage", Size: 5731},
					{Name: "Networking", Size: 2105},
				},
			},
		},
	}
}
