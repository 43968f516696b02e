package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "find_matches",
		Description: "Find the housing listings that best match a free text request such as '2 bedroom apartment under $1500 near campus with parking'. Returns a readable summary plus the scored matches with the reasons behind each score.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "What the renter is looking for, in plain English. An empty query ranks every listing equally.",
				},
				"top_n": map[string]interface{}{
					"type":        "integer",
					"minimum":     0,
					"description": "Maximum number of matches to return (default: 5)",
				},
			},
		},
	},
	{
		Name:        "parse_query",
		Description: "Show the structured preferences (bedrooms, bathrooms, price bounds, property type, amenities, campus proximity, keywords) extracted from a free text request.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free text housing request",
				},
			},
			"required": []string{"query"},
		},
	},
	{
		Name:        "get_listing",
		Description: "Get full details of a single listing by ID.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Listing ID",
				},
			},
			"required": []string{"id"},
		},
	},
	{
		Name:        "list_listings",
		Description: "List stored housing listings with optional filters, oldest first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"property_type": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"apartment", "house", "room"},
					"description": "Only listings of this property type",
				},
				"max_price": map[string]interface{}{
					"type":        "number",
					"description": "Only listings at or below this monthly rent",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 20)",
				},
			},
		},
	},
	{
		Name:        "get_stats",
		Description: "Get aggregate statistics about the stored listings: counts by property type, price range and averages.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
}
