package segment

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/photomat/photomat/internal/mempool"
	"github.com/photomat/photomat/internal/raster"
	ort "github.com/yalue/onnxruntime_go"
)

// Config holds settings for the ONNX segmentation model.
type Config struct {
	ModelPath  string
	InputName  string
	OutputName string
	InputSize  int // square model input edge
	NumThreads int // 0 = runtime default
}

// DefaultConfig returns settings matching common portrait-matting exports.
func DefaultConfig(modelPath string) Config {
	return Config{
		ModelPath:  modelPath,
		InputName:  "input",
		OutputName: "output",
		InputSize:  512,
	}
}

// Model is a Segmenter backed by an ONNX Runtime session. Inference runs
// one image at a time; the session itself is safe for sequential reuse.
type Model struct {
	session *ort.DynamicAdvancedSession
	cfg     Config
}

// NewModel initializes the ONNX Runtime environment (once per process) and
// opens a session for the configured model.
func NewModel(cfg Config) (*Model, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("segment: no model path configured")
	}
	if cfg.InputSize <= 0 {
		cfg.InputSize = 512
	}
	if cfg.InputName == "" {
		cfg.InputName = "input"
	}
	if cfg.OutputName == "" {
		cfg.OutputName = "output"
	}

	if err := initRuntime(); err != nil {
		return nil, err
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("segment: failed to create session options: %w", err)
	}
	defer func() { _ = opts.Destroy() }()

	if cfg.NumThreads > 0 {
		if err := opts.SetIntraOpNumThreads(cfg.NumThreads); err != nil {
			return nil, fmt.Errorf("segment: failed to set thread count: %w", err)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{cfg.InputName}, []string{cfg.OutputName}, opts)
	if err != nil {
		return nil, fmt.Errorf("segment: failed to create ONNX session: %w", err)
	}
	return &Model{session: session, cfg: cfg}, nil
}

// Close releases the underlying session.
func (m *Model) Close() error {
	if m.session == nil {
		return nil
	}
	if err := m.session.Destroy(); err != nil {
		return fmt.Errorf("segment: failed to destroy session: %w", err)
	}
	m.session = nil
	return nil
}

// Segment runs the model and returns a confidence mask at the input image's
// pixel dimensions. The image is letterboxed into the model's square input,
// and the mask logits are sigmoid-activated and upscaled back.
func (m *Model) Segment(ctx context.Context, img image.Image) (*raster.Gray32, error) {
	if img == nil {
		return nil, fmt.Errorf("segment: nil image")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	if origW <= 0 || origH <= 0 {
		return nil, fmt.Errorf("segment: empty image")
	}

	size := m.cfg.InputSize
	scale := float64(size) / float64(max(origW, origH))
	newW := max(1, int(float64(origW)*scale))
	newH := max(1, int(float64(origH)*scale))

	resized := imaging.Resize(img, newW, newH, imaging.Lanczos)
	padded := imaging.Paste(imaging.New(size, size, image.Black), resized, image.Pt(0, 0))

	data := mempool.Get(3 * size * size)
	defer mempool.Put(data)
	normalizeNCHW(padded, size, data)

	input, err := ort.NewTensor(ort.NewShape(1, 3, int64(size), int64(size)), data)
	if err != nil {
		return nil, fmt.Errorf("segment: failed to create input tensor: %w", err)
	}
	defer func() { _ = input.Destroy() }()

	outputs := make([]ort.Value, 1)
	if err := m.session.Run([]ort.Value{input}, outputs); err != nil {
		return nil, fmt.Errorf("segment: inference failed: %w", err)
	}
	defer func() {
		for _, o := range outputs {
			if o != nil {
				_ = o.Destroy()
			}
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("segment: unexpected output tensor type %T", outputs[0])
	}
	logits := outTensor.GetData()
	if len(logits) < size*size {
		return nil, fmt.Errorf("segment: output length %d shorter than %dx%d mask", len(logits), size, size)
	}

	// Crop the valid (unpadded) region of the mask, then scale to source size.
	valid := raster.NewGray32(image.Rect(0, 0, newW, newH))
	for y := 0; y < newH; y++ {
		for x := 0; x < newW; x++ {
			valid.Pix[y*valid.Stride+x] = sigmoid(logits[y*size+x])
		}
	}
	mask, err := valid.ResizeBilinear(origW, origH)
	if err != nil {
		return nil, fmt.Errorf("segment: mask upscale failed: %w", err)
	}
	return mask, nil
}

// normalizeNCHW writes img into dst as a [3, size, size] channel-planar
// tensor with values scaled to [0, 1].
func normalizeNCHW(img *image.NRGBA, size int, dst []float32) {
	plane := size * size
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := y*img.Stride + x*4
			idx := y*size + x
			dst[idx] = float32(img.Pix[i]) / 255.0
			dst[plane+idx] = float32(img.Pix[i+1]) / 255.0
			dst[2*plane+idx] = float32(img.Pix[i+2]) / 255.0
		}
	}
}

func sigmoid(v float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(-float64(v))))
}
