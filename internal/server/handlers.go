package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ironsheep/rgb-tools-mcp/internal/imaging"
	"github.com/ironsheep/rgb-tools-mcp/internal/knn"
	"github.com/ironsheep/rgb-tools-mcp/internal/logging"
	"github.com/ironsheep/rgb-tools-mcp/internal/rgb"
	"github.com/ironsheep/rgb-tools-mcp/internal/tier"
)

var errUnknownSession = errors.New("unknown processor session")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_negate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	log := logging.WithOperation(s.logger, params.Name, requestID(req.ID))
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.Warn("tool execution failed", zap.Error(err))
		return s.errorResponse(req.ID, codeToolFailure, "Tool execution failed", err.Error())
	}
	log.Debug("tool executed")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image Access
	case "image_load":
		return s.handleImageLoad(args)
	case "image_get_pixel":
		return s.handleImageGetPixel(args)
	case "image_set_pixel":
		return s.handleImageSetPixel(args)
	case "image_from_pixels":
		return s.handleImageFromPixels(args)

	// Processor Sessions
	case "processor_create":
		return s.handleProcessorCreate(args)
	case "processor_cost":
		return s.handleProcessorCost(args)
	case "processor_redeem_coupon":
		return s.handleProcessorRedeemCoupon(args)

	// Transforms
	case "image_negate":
		return s.handleUnary(args, (*tier.Processor).Negate)
	case "image_grayscale":
		return s.handleUnary(args, (*tier.Processor).Grayscale)
	case "image_rotate_180":
		return s.handleUnary(args, (*tier.Processor).Rotate180)
	case "image_blur":
		return s.handleUnary(args, (*tier.Processor).Blur)
	case "image_edge_highlight":
		return s.handleUnary(args, (*tier.Processor).EdgeHighlight)
	case "image_adjust_brightness":
		return s.handleAdjustBrightness(args)
	case "image_average_brightness":
		return s.handleAverageBrightness(args)
	case "image_chroma_key":
		return s.handleChromaKey(args)
	case "image_sticker":
		return s.handleSticker(args)

	// Classification
	case "knn_fit":
		return s.handleKNNFit(args)
	case "knn_predict":
		return s.handleKNNPredict(args)
	case "knn_distance":
		return s.handleKNNDistance(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func requestID(id interface{}) string {
	if id == nil {
		return ""
	}
	return fmt.Sprint(id)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// intArg validates a required integer argument.
func intArg(name string, v interface{}) (int, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: %s is required", rgb.ErrType, name)
	}
	n, err := rgb.IntFromValue(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

// optionalIntArg validates an integer argument that may be omitted.
func optionalIntArg(name string, v interface{}, fallback int) (int, error) {
	if v == nil {
		return fallback, nil
	}
	return intArg(name, v)
}

// colorArg accepts [r, g, b] or a hex string.
func colorArg(v interface{}) (rgb.Pixel, error) {
	if hex, ok := v.(string); ok {
		return imaging.ParseColor(hex)
	}
	c, err := rgb.ColorFromValues(v)
	if err != nil {
		return rgb.Pixel{}, fmt.Errorf("color: %w", err)
	}
	var p rgb.Pixel
	for ch, val := range c {
		if val < 0 {
			return rgb.Pixel{}, fmt.Errorf("%w: color channel %d is %d, want 0-255", rgb.ErrRange, ch, val)
		}
		p[ch] = uint8(val)
	}
	return p, nil
}

// ImageResult describes an image produced by a tool. Exactly one of
// OutputPath and PNGBase64 is set.
type ImageResult struct {
	Rows       int    `json:"rows"`
	Cols       int    `json:"cols"`
	OutputPath string `json:"output_path,omitempty"`
	PNGBase64  string `json:"png_base64,omitempty"`
}

// ProcessedResult is an ImageResult plus the session's bill after the call.
type ProcessedResult struct {
	ImageResult
	Session string `json:"session"`
	Cost    int    `json:"cost"`
	Credits int    `json:"credits"`
}

// emit writes img to outputPath, or inlines it as base64 PNG when the path
// is empty.
func (s *Server) emit(img *rgb.Image, outputPath string) (*ImageResult, error) {
	rows, cols := img.Size()
	res := &ImageResult{Rows: rows, Cols: cols}

	if outputPath != "" {
		if err := imaging.Encode(outputPath, img); err != nil {
			return nil, err
		}
		s.cache.Evict(outputPath)
		res.OutputPath = outputPath
		return res, nil
	}

	data, err := imaging.EncodeBase64PNG(img)
	if err != nil {
		return nil, err
	}
	res.PNGBase64 = data
	return res, nil
}

// === Image Access Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imagePixelArgs struct {
	Path       string      `json:"path"`
	Row        interface{} `json:"row"`
	Col        interface{} `json:"col"`
	Color      interface{} `json:"color"`
	OutputPath string      `json:"output_path"`
}

func (a imagePixelArgs) coordinates() (row, col int, err error) {
	if row, err = intArg("row", a.Row); err != nil {
		return 0, 0, err
	}
	if col, err = intArg("col", a.Col); err != nil {
		return 0, 0, err
	}
	return row, col, nil
}

func (s *Server) handleImageGetPixel(args json.RawMessage) (interface{}, error) {
	var a imagePixelArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	row, col, err := a.coordinates()
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, row, col)
}

func (s *Server) handleImageSetPixel(args json.RawMessage) (interface{}, error) {
	var a imagePixelArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	row, col, err := a.coordinates()
	if err != nil {
		return nil, err
	}
	color, err := rgb.ColorFromValues(a.Color)
	if err != nil {
		return nil, fmt.Errorf("color: %w", err)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if err := img.SetPixel(row, col, color); err != nil {
		return nil, err
	}
	return s.emit(img, a.OutputPath)
}

type imageFromPixelsArgs struct {
	Pixels     interface{} `json:"pixels"`
	OutputPath string      `json:"output_path"`
}

func (s *Server) handleImageFromPixels(args json.RawMessage) (interface{}, error) {
	var a imageFromPixelsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := rgb.NewFromValues(a.Pixels)
	if err != nil {
		return nil, err
	}
	return s.emit(img, a.OutputPath)
}

// === Processor Session Handlers ===

type processorArgs struct {
	Session string      `json:"session"`
	Tier    string      `json:"tier"`
	Amount  interface{} `json:"amount"`
}

func (s *Server) session(id string) (*tier.Processor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	proc, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownSession, id)
	}
	return proc, nil
}

func (s *Server) handleProcessorCreate(args json.RawMessage) (interface{}, error) {
	var a processorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	name := a.Tier
	if name == "" {
		name = s.cfg.DefaultTier
	}
	policy, err := tier.Lookup(name)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	proc := tier.New(policy, tier.WithLogger(s.logger), tier.WithSession(id))

	s.mu.Lock()
	s.sessions[id] = proc
	s.mu.Unlock()

	s.logger.Info("processor session created", zap.String("session", id), zap.String("tier", policy.Name))
	return proc.Statement(), nil
}

func (s *Server) handleProcessorCost(args json.RawMessage) (interface{}, error) {
	var a processorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	proc, err := s.session(a.Session)
	if err != nil {
		return nil, err
	}
	return proc.Statement(), nil
}

func (s *Server) handleProcessorRedeemCoupon(args json.RawMessage) (interface{}, error) {
	var a processorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	amount, err := intArg("amount", a.Amount)
	if err != nil {
		return nil, err
	}
	proc, err := s.session(a.Session)
	if err != nil {
		return nil, err
	}
	if err := proc.RedeemCoupon(amount); err != nil {
		return nil, err
	}
	return proc.Statement(), nil
}

// === Transform Handlers ===

type transformArgs struct {
	Session        string      `json:"session"`
	Path           string      `json:"path"`
	BackgroundPath string      `json:"background_path"`
	Delta          interface{} `json:"delta"`
	Color          interface{} `json:"color"`
	X              interface{} `json:"x"`
	Y              interface{} `json:"y"`
	OutputPath     string      `json:"output_path"`
}

type unaryOp func(*tier.Processor, *rgb.Image) (*rgb.Image, error)

// process loads the session and the image at a.Path, runs op and emits the result.
func (s *Server) process(a transformArgs, op unaryOp) (interface{}, error) {
	proc, err := s.session(a.Session)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := op(proc, img)
	if err != nil {
		return nil, err
	}
	res, err := s.emit(out, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return &ProcessedResult{
		ImageResult: *res,
		Session:     proc.Session(),
		Cost:        proc.Cost(),
		Credits:     proc.Credits(),
	}, nil
}

func (s *Server) handleUnary(args json.RawMessage, op unaryOp) (interface{}, error) {
	var a transformArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.process(a, op)
}

func (s *Server) handleAdjustBrightness(args json.RawMessage) (interface{}, error) {
	var a transformArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	delta, err := intArg("delta", a.Delta)
	if err != nil {
		return nil, err
	}
	return s.process(a, func(p *tier.Processor, img *rgb.Image) (*rgb.Image, error) {
		return p.AdjustBrightness(img, delta)
	})
}

// AverageBrightnessResult is the result of image_average_brightness.
type AverageBrightnessResult struct {
	Session           string `json:"session"`
	AverageBrightness int    `json:"average_brightness"`
	Cost              int    `json:"cost"`
}

func (s *Server) handleAverageBrightness(args json.RawMessage) (interface{}, error) {
	var a transformArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	proc, err := s.session(a.Session)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	avg, err := proc.AverageBrightness(img)
	if err != nil {
		return nil, err
	}
	return &AverageBrightnessResult{Session: proc.Session(), AverageBrightness: avg, Cost: proc.Cost()}, nil
}

func (s *Server) handleChromaKey(args json.RawMessage) (interface{}, error) {
	var a transformArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	key, err := colorArg(a.Color)
	if err != nil {
		return nil, err
	}
	background, err := s.cache.Load(a.BackgroundPath)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	return s.process(a, func(p *tier.Processor, img *rgb.Image) (*rgb.Image, error) {
		return p.ChromaKey(img, background, key)
	})
}

func (s *Server) handleSticker(args json.RawMessage) (interface{}, error) {
	var a transformArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	x, err := intArg("x", a.X)
	if err != nil {
		return nil, err
	}
	y, err := intArg("y", a.Y)
	if err != nil {
		return nil, err
	}
	background, err := s.cache.Load(a.BackgroundPath)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	return s.process(a, func(p *tier.Processor, img *rgb.Image) (*rgb.Image, error) {
		return p.Sticker(img, background, x, y)
	})
}

// === Classification Handlers ===

type knnFitArgs struct {
	TrainingDir string      `json:"training_dir"`
	K           interface{} `json:"k"`
	Rows        interface{} `json:"rows"`
	Cols        interface{} `json:"cols"`
}

// KNNFitResult summarizes a fitted training set.
type KNNFitResult struct {
	TrainingDir string         `json:"training_dir"`
	K           int            `json:"k"`
	Examples    int            `json:"examples"`
	Labels      map[string]int `json:"labels"`
}

func (s *Server) handleKNNFit(args json.RawMessage) (interface{}, error) {
	var a knnFitArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	k, err := optionalIntArg("k", a.K, s.cfg.Neighbors)
	if err != nil {
		return nil, err
	}
	rows, err := optionalIntArg("rows", a.Rows, 0)
	if err != nil {
		return nil, err
	}
	cols, err := optionalIntArg("cols", a.Cols, 0)
	if err != nil {
		return nil, err
	}
	if rows < 0 || cols < 0 || (rows > 0) != (cols > 0) {
		return nil, fmt.Errorf("%w: rows and cols must both be positive or both omitted", rgb.ErrRange)
	}

	dir := a.TrainingDir
	if dir == "" {
		dir = s.cfg.TrainingDir
	}
	opts := imaging.TrainingOptions{Rows: rows, Cols: cols}

	examples, err := imaging.LoadTrainingSet(dir, opts)
	if err != nil {
		return nil, err
	}
	classifier, err := knn.New(k, knn.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	if err := classifier.Fit(examples); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.classifier, s.fitOpts = classifier, opts
	s.mu.Unlock()

	labels := make(map[string]int)
	for _, ex := range examples {
		labels[ex.Label]++
	}
	return &KNNFitResult{TrainingDir: dir, K: k, Examples: len(examples), Labels: labels}, nil
}

type knnPathArgs struct {
	Path  string `json:"path"`
	PathA string `json:"path_a"`
	PathB string `json:"path_b"`
}

// KNNPredictResult is the predicted label and the neighbors that voted.
type KNNPredictResult struct {
	Label     string         `json:"label"`
	Neighbors []knn.Neighbor `json:"neighbors"`
}

func (s *Server) handleKNNPredict(args json.RawMessage) (interface{}, error) {
	var a knnPathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	s.mu.Lock()
	classifier, opts := s.classifier, s.fitOpts
	s.mu.Unlock()
	if classifier == nil {
		return nil, fmt.Errorf("%w: classifier has not been fitted, call knn_fit first", rgb.ErrRange)
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if opts.Rows > 0 && opts.Cols > 0 {
		if img, err = imaging.Resize(img, opts.Rows, opts.Cols); err != nil {
			return nil, err
		}
	}

	nearest, err := classifier.Neighbors(img)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(nearest))
	for i, n := range nearest {
		labels[i] = n.Label
	}
	label, _ := knn.Vote(labels)
	return &KNNPredictResult{Label: label, Neighbors: nearest}, nil
}

// KNNDistanceResult is the result of knn_distance.
type KNNDistanceResult struct {
	Distance float64 `json:"distance"`
}

func (s *Server) handleKNNDistance(args json.RawMessage) (interface{}, error) {
	var a knnPathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	imgA, err := s.cache.Load(a.PathA)
	if err != nil {
		return nil, err
	}
	imgB, err := s.cache.Load(a.PathB)
	if err != nil {
		return nil, err
	}
	d, err := knn.Distance(imgA, imgB)
	if err != nil {
		return nil, err
	}
	return &KNNDistanceResult{Distance: d}, nil
}
