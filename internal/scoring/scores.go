package scoring

import "math"

// NumPillars is the number of health pillars scored per submission.
const NumPillars = 6

// PillarScores holds the six normalized pillar scores plus the overall score.
// All values are on a 0-100 scale with one decimal of precision. Instances
// are created by the Scorer and never mutated afterwards.
type PillarScores struct {
	MusclesAndVisceralFat float64 `json:"muscles_and_visceral_fat"`
	CardioVascular        float64 `json:"cardio_vascular"`
	Sleep                 float64 `json:"sleep"`
	Cognitive             float64 `json:"cognitive"`
	Metabolic             float64 `json:"metabolic"`
	Emotional             float64 `json:"emotional"`
	Overall               float64 `json:"overall"`
}

// Values returns the six pillar scores in canonical pillar order, overall
// excluded. Renderers iterate this instead of naming fields.
func (p PillarScores) Values() [NumPillars]float64 {
	return [NumPillars]float64{
		p.MusclesAndVisceralFat,
		p.CardioVascular,
		p.Sleep,
		p.Cognitive,
		p.Metabolic,
		p.Emotional,
	}
}

// PillarLabels returns human-readable pillar names in canonical pillar order.
func PillarLabels() [NumPillars]string {
	return [NumPillars]string{
		"Muscles & Visceral Fat",
		"Cardiovascular",
		"Sleep",
		"Cognitive",
		"Metabolic",
		"Emotional",
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
