package configdef

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/dealancer/validate.v2"
)

const (
	SegmenterMock   = "mock"
	SegmenterOpenCV = "opencv"

	SourceMock   = "mock"
	SourceOpenCV = "opencv"
)

type Source struct {
	Title   string `json:"title" validate:"empty=false"`
	Address string `json:"address"`
	Backend string `json:"backend" validate:"one_of=mock,opencv"`
	FPS     int    `json:"fps" validate:"gte=1 & lte=60"`
}

type Background struct {
	// Path to the still image frames are composited over, empty disables swapping.
	Path string `json:"path"`
}

type Segmenter struct {
	Backend   string `json:"backend" validate:"one_of=mock,opencv"`
	ModelPath string `json:"model_path"`
	TimeoutMS int    `json:"timeout_ms" validate:"gte=0 & lte=10000"`
}

type Output struct {
	SnapshotPath  string `json:"snapshot_path"`
	SnapshotEvery int    `json:"snapshot_every" validate:"gte=1"`
}

type Values struct {
	Debug             bool       `json:"debug"`
	StatsIntervalSecs int        `json:"stats_interval_secs" validate:"gte=0"`
	Source            Source     `json:"source"`
	Background        Background `json:"background"`
	Segmenter         Segmenter  `json:"segmenter"`
	Output            Output     `json:"output"`
}

func (v *Values) RunValidate() error {
	if err := validate.Validate(v); err != nil {
		return err
	}
	return v.Validate()
}

func (v Values) Validate() error {
	const validationErrorHeader = "validation failed: %w"
	if v.Segmenter.Backend == SegmenterOpenCV && len(strings.TrimSpace(v.Segmenter.ModelPath)) == 0 {
		return fmt.Errorf(validationErrorHeader, errors.New("opencv segmenter requires a model path"))
	}
	if v.Source.Backend == SourceOpenCV && len(strings.TrimSpace(v.Source.Address)) == 0 {
		return fmt.Errorf(validationErrorHeader, errors.New("opencv source requires an address"))
	}
	return nil
}
