package models

// AnalysisResult is what the external emotion-inference collaborator
// returns: a dominant label and per-category scores in the 0-100 range.
type AnalysisResult struct {
	Dominant string             `json:"dominant_emotion"`
	Emotions map[string]float64 `json:"emotions"`
}

// Analysis is a completed analysis: the inference result enriched with
// the dominant label's intensity and generated coping tips.
type Analysis struct {
	Dominant  string             `json:"dominant_emotion"`
	Intensity float64            `json:"intensity"`
	Emotions  map[string]float64 `json:"emotions"`
	Tips      []string           `json:"tips"`
}
