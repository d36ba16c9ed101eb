package project

import "math"

// Progress derives the completion percentage from approved stories. It is
// recomputed on every read and never stored.
func (p *Project) Progress() int {
	total := len(p.UserStories)
	if total == 0 {
		return 0
	}

	approved := 0
	for _, story := range p.UserStories {
		if story.Approved {
			approved++
		}
	}

	return int(math.Round(100 * float64(approved) / float64(total)))
}
