package engine

import "math"

// Screen fatigue constants. The first two hours of screen time are free;
// past the allowance the penalty grows super-linearly so that heavy use
// accelerates past the three-hour mark.
const (
	ScreenFreeMin      = 120.0
	ScreenFatigueExp   = 1.5
	ScreenFatigueScale = 10.0
	LectureStudyWeight = 0.85
)

// CognitiveResult is the output of the cognitive load calculator.
type CognitiveResult struct {
	StudyScore    float64 `json:"study_score"`
	ScreenFatigue float64 `json:"screen_fatigue"`
}

// ComputeCognitive converts study and screen minutes into a reward/fatigue
// pair. Lectures are weighted slightly below reading.
func ComputeCognitive(readingMin, lectureMin, screenMin float64) CognitiveResult {
	res := CognitiveResult{
		StudyScore: readingMin + LectureStudyWeight*lectureMin,
	}
	if screenMin > ScreenFreeMin {
		res.ScreenFatigue = math.Pow((screenMin-ScreenFreeMin)/60, ScreenFatigueExp) * ScreenFatigueScale
	}
	return res
}
