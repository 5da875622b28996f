package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func integerProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// Shared argument descriptions.
var (
	pathProp       = stringProp("Absolute path to the image file")
	sessionProp    = stringProp("Processor session returned by processor_create")
	outputPathProp = stringProp("Optional file to write the result to (format from extension). When omitted the result is returned as base64 PNG")
	colorProp      = map[string]interface{}{
		"description": "Color as [r, g, b] (0-255) or a hex string like \"#00FF00\"",
		"oneOf": []interface{}{
			map[string]interface{}{
				"type":     "array",
				"items":    map[string]interface{}{"type": "integer"},
				"minItems": 3,
				"maxItems": 3,
			},
			map[string]interface{}{"type": "string"},
		},
	}
)

// unaryTool describes a processor operation taking one image.
func unaryTool(name, description string) Tool {
	return Tool{
		Name:        name,
		Description: description,
		InputSchema: objectSchema(map[string]interface{}{
			"session":     sessionProp,
			"path":        pathProp,
			"output_path": outputPathProp,
		}, "session", "path"),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Access
		{
			Name:        "image_load",
			Description: "Load an image file and return its rows, cols, format and file size.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp,
			}, "path"),
		},
		{
			Name:        "image_get_pixel",
			Description: "Get the color at (row, col) as hex, RGB and HSL.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp,
				"row":  integerProp("Row (0-based, from top)"),
				"col":  integerProp("Column (0-based, from left)"),
			}, "path", "row", "col"),
		},
		{
			Name:        "image_set_pixel",
			Description: "Set the color at (row, col) and return the modified image. A negative channel keeps the existing value; channels above 255 are rejected.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":        pathProp,
				"row":         integerProp("Row (0-based, from top)"),
				"col":         integerProp("Column (0-based, from left)"),
				"color":       map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "integer"}, "description": "[r, g, b]; -1 keeps a channel"},
				"output_path": outputPathProp,
			}, "path", "row", "col", "color"),
		},
		{
			Name:        "image_from_pixels",
			Description: "Build an image from a rows x cols grid of [r, g, b] pixels.",
			InputSchema: objectSchema(map[string]interface{}{
				"pixels":      map[string]interface{}{"type": "array", "description": "Grid of rows, each a list of [r, g, b] pixels (0-255)"},
				"output_path": outputPathProp,
			}, "pixels"),
		},

		// Processor Sessions
		{
			Name:        "processor_create",
			Description: "Start a billed processor session. The standard tier charges per operation and accepts coupons; the premium tier charges a flat fee of 50 and adds chroma key, sticker and edge highlight.",
			InputSchema: objectSchema(map[string]interface{}{
				"tier": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"standard", "premium"},
					"description": "Pricing tier. Defaults to the server's configured tier",
				},
			}),
		},
		{
			Name:        "processor_cost",
			Description: "Return the session's running cost, remaining credits and call counts.",
			InputSchema: objectSchema(map[string]interface{}{
				"session": sessionProp,
			}, "session"),
		},
		{
			Name:        "processor_redeem_coupon",
			Description: "Add free operations to a standard-tier session.",
			InputSchema: objectSchema(map[string]interface{}{
				"session": sessionProp,
				"amount":  integerProp("Number of free operations (positive)"),
			}, "session", "amount"),
		},

		// Transforms
		unaryTool("image_negate", "Invert every channel (255 - value)."),
		unaryTool("image_grayscale", "Replace every pixel with the floor of its channel mean."),
		unaryTool("image_rotate_180", "Rotate the image by 180 degrees."),
		unaryTool("image_blur", "Replace every pixel with the mean of its 3x3 neighborhood, clipped at the borders."),
		unaryTool("image_edge_highlight", "Apply a Laplacian kernel to the grayscale image (premium tier)."),
		{
			Name:        "image_adjust_brightness",
			Description: "Add delta to every channel, clamped to 0-255.",
			InputSchema: objectSchema(map[string]interface{}{
				"session":     sessionProp,
				"path":        pathProp,
				"delta":       integerProp("Brightness change, -255 to 255"),
				"output_path": outputPathProp,
			}, "session", "path", "delta"),
		},
		{
			Name:        "image_average_brightness",
			Description: "Return the mean grayscale value of the image. Not billed.",
			InputSchema: objectSchema(map[string]interface{}{
				"session": sessionProp,
				"path":    pathProp,
			}, "session", "path"),
		},
		{
			Name:        "image_chroma_key",
			Description: "Replace every pixel of the key color with the background pixel at the same position (premium tier). Both images must have the same size.",
			InputSchema: objectSchema(map[string]interface{}{
				"session":         sessionProp,
				"path":            pathProp,
				"background_path": stringProp("Absolute path to the background image"),
				"color":           colorProp,
				"output_path":     outputPathProp,
			}, "session", "path", "background_path", "color"),
		},
		{
			Name:        "image_sticker",
			Description: "Paste the image onto the background with its top-left corner at (x, y) (premium tier).",
			InputSchema: objectSchema(map[string]interface{}{
				"session":         sessionProp,
				"path":            stringProp("Absolute path to the sticker image"),
				"background_path": stringProp("Absolute path to the background image"),
				"x":               integerProp("Column of the sticker's top-left pixel on the background"),
				"y":               integerProp("Row of the sticker's top-left pixel on the background"),
				"output_path":     outputPathProp,
			}, "session", "path", "background_path", "x", "y"),
		},

		// Classification
		{
			Name:        "knn_fit",
			Description: "Fit the k-NN classifier from a directory whose subdirectories are labels containing sample images.",
			InputSchema: objectSchema(map[string]interface{}{
				"training_dir": stringProp("Training directory. Defaults to the server's configured directory"),
				"k":            integerProp("Neighbors per prediction. Defaults to the server's configured k"),
				"rows":         integerProp("Optional row count every sample is resized to"),
				"cols":         integerProp("Optional column count every sample is resized to"),
			}),
		},
		{
			Name:        "knn_predict",
			Description: "Predict the label of an image from its k nearest training samples.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp,
			}, "path"),
		},
		{
			Name:        "knn_distance",
			Description: "Euclidean distance between two images of the same size.",
			InputSchema: objectSchema(map[string]interface{}{
				"path_a": stringProp("Absolute path to the first image"),
				"path_b": stringProp("Absolute path to the second image"),
			}, "path_a", "path_b"),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
