package session

import "alcyxob/workout-builder/internal/domain"

// Progress holds the metrics derived from a session. It is computed on demand and
// never stored.
type Progress struct {
	TotalSets            int     `json:"totalSets"`
	CompletedSets        int     `json:"completedSets"`
	CompletionPercentage float64 `json:"completionPercentage"`
	CompletedExercises   int     `json:"completedExercises"`
	TotalVolume          float64 `json:"totalVolume"` // kg moved over completed sets
}

// ProgressOf derives the progress metrics of s.
func ProgressOf(s domain.WorkoutSession) Progress {
	var p Progress
	for _, ex := range s.Exercises {
		done := 0
		for _, set := range ex.Sets {
			p.TotalSets++
			if set.IsCompleted {
				done++
				p.TotalVolume += set.Weight * float64(set.Reps)
			}
		}
		p.CompletedSets += done
		if len(ex.Sets) > 0 && done == len(ex.Sets) {
			p.CompletedExercises++
		}
	}
	p.CompletionPercentage = CompletionPercentage(p.CompletedSets, p.TotalSets)
	return p
}

// CompletionPercentage returns completed/total*100, or 0 when total is 0.
func CompletionPercentage(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
