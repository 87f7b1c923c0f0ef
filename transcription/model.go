package transcription

import (
	"strings"

	apperrors "github.com/kbukum/voxrelay/errors"
)

// Model selects the upstream pipeline.
type Model string

const (
	// ModelSingleStep transcribes in one pass.
	ModelSingleStep Model = "transcribe"
	// ModelTwoStep transcribes in chunks and then translates.
	ModelTwoStep Model = "transcribe-2step"
)

// Models lists the supported models.
func Models() []Model {
	return []Model{ModelSingleStep, ModelTwoStep}
}

// ParseModel validates a model name.
func ParseModel(name string) (Model, error) {
	switch m := Model(strings.TrimSpace(name)); m {
	case ModelSingleStep, ModelTwoStep:
		return m, nil
	}
	return "", apperrors.Validation("Invalid model selected").
		WithDetail("field", "model").
		WithDetail("allowed", Models())
}

// Path returns the upstream sub-path for the model.
func (m Model) Path() string {
	return "/" + string(m)
}

// params returns the fixed parameters sent after the audio.
func (m Model) params() []Param {
	switch m {
	case ModelTwoStep:
		return []Param{
			{Name: "use_chunked", Value: true},
			{Name: "num_beams", Value: 1},
			{Name: "max_new_tokens", Value: 256},
			{Name: "s2tt_tgt_lang", Value: "eng"},
			{Name: "mt_src_lang_code", Value: "eng_Latn"},
			{Name: "chunk_sec", Value: Float(30)},
			{Name: "overlap_sec", Value: Float(1)},
			{Name: "use_spectral_nr", Value: true},
		}
	default:
		return []Param{
			{Name: "use_chunked", Value: false},
			{Name: "num_beams", Value: 1},
			{Name: "max_new_tokens", Value: 256},
			{Name: "tgt_lang", Value: "tha"},
		}
	}
}
