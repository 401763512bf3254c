package scoring

import "healthscore-backend/internal/shared/telemetry"

// Question refs contributing to each pillar, in contribution order. Fixed at
// compile time; overridable per Scorer for tests.
var defaultPillarRefs = [NumPillars][]string{
	{ // Muscles and Organ Fat
		"aa24a4d2-b1f2-408b-9d4a-4be80ec7508d", // waist circumference
		"9c968d6d-e21b-448a-b8fb-30056f76ffff", // waist-hip ratio
	},
	{ // Cardiovascular Health
		"27181fef-736e-4bee-ad31-7d8e983d61b3", // blood pressure, systolic
		"ceb0b561-1793-43f1-9c76-11cc3964e48a", // blood pressure, diastolic
	},
	{ // Sleep
		"ccc73a31-d4f8-4856-8ebb-27647ff39a97", // sleep duration
		"50b96cb1-243e-454b-aa01-0e8990fc507d", // sleep quality
	},
	{ // Cognitive Health
		"c714f3fd-a4ff-449b-9946-7badbdc59e03", // memory function score
		"15045302-e327-4069-bc9d-d0c0ab3cfaaa", // noticed memory changes
	},
	{ // Metabolic Health and Nutrition
		"f9a247fc-e8d3-4bd8-b7e1-ae54f6766993", // protein intake
	},
	{ // Emotional Well-being
		"2c99731f-7ee5-4181-82b5-48a4d876df59", // sense of purpose
	},
}

// Scorer converts an AnswerMap into a PillarScores using the lookup table.
// It never fails: absent, unknown, and unmatched answers contribute nothing
// and the affected pillars degrade towards zero.
type Scorer struct {
	table   *LookupTable
	pillars [NumPillars][]string
}

// NewScorer builds a Scorer over the given lookup table with the default
// pillar definitions.
func NewScorer(table *LookupTable) *Scorer {
	return &Scorer{table: table, pillars: defaultPillarRefs}
}

// NewScorerWithPillars builds a Scorer with explicit pillar definitions.
func NewScorerWithPillars(table *LookupTable, pillars [NumPillars][]string) *Scorer {
	return &Scorer{table: table, pillars: pillars}
}

// Calculate produces the six normalized pillar scores and the overall score
// for the given answers. Deterministic: identical answers always yield an
// identical PillarScores.
func (s *Scorer) Calculate(answers AnswerMap) PillarScores {
	var normalized [NumPillars]float64
	sum := 0.0
	for i, refs := range s.pillars {
		normalized[i] = normalizeScore(s.pillarScore(answers, refs))
		sum += normalized[i]
	}

	return PillarScores{
		MusclesAndVisceralFat: normalized[0],
		CardioVascular:        normalized[1],
		Sleep:                 normalized[2],
		Cognitive:             normalized[3],
		Metabolic:             normalized[4],
		Emotional:             normalized[5],
		Overall:               round1(sum / NumPillars),
	}
}

// pillarScore returns the raw [0,5] score for one pillar: the mean of all
// resolvable sub-scores, or 0 when nothing resolves.
func (s *Scorer) pillarScore(answers AnswerMap, refs []string) float64 {
	sum := 0.0
	count := 0
	for _, ref := range refs {
		answer, present := answers[ref]
		if !present || !s.table.HasRef(ref) {
			continue
		}
		score, ok := s.table.Resolve(ref, answer)
		if !ok {
			telemetry.Warn("scoring.unmatched_answer", map[string]any{
				"ref":    ref,
				"answer": answer,
			})
			continue
		}
		sum += score
		count++
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// normalizeScore rescales a raw [0,5] sub-score to the 0-100 contract scale.
func normalizeScore(raw float64) float64 {
	return round1(raw * 20)
}
