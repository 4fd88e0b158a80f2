package llm

import (
	"fmt"

	"github.com/lac-hong-legacy/ven_growth/model"
)

const (
	FallbackReasoning  = "Fallback: Using rule-based logic"
	FallbackConfidence = 50

	// Sessions scoring above this get a buddy challenge when the model is unavailable.
	fallbackScoreThreshold = 70
)

func FallbackInsights(s model.Session) model.SessionInsights {
	return model.SessionInsights{
		Strengths:          []string{"Consistent effort", "Good problem-solving approach"},
		Gaps:               []string{"Review foundational concepts", "Practice more challenging problems"},
		Recommendations:    []string{"Continue practicing daily", "Focus on weak areas", "Join study groups"},
		AchievementSummary: fmt.Sprintf("Great work completing your %s session! Keep up the momentum!", s.Subject),
	}
}

func FallbackMessage(loop model.LoopType) string {
	switch loop {
	case model.LoopBuddyChallenge:
		return "Hey! I just crushed my session! Think you can beat that? 🎯"
	case model.LoopVoiceRoomInvite:
		return "Come join our study room! Let's learn together 🎧"
	case model.LoopTutorSpotlight:
		return "Need help? A tutor is available for drop-in sessions! 📚"
	case model.LoopProudParentShare:
		return "So proud of my child's progress! 🌟"
	default:
		return "Check out Varsity Tutors!"
	}
}

func FallbackRecommendation(s *model.Session) model.LoopRecommendation {
	rec := model.LoopRecommendation{
		Reasoning:  FallbackReasoning,
		Confidence: FallbackConfidence,
	}
	if s != nil && s.Accuracy() > fallbackScoreThreshold {
		loop := model.LoopBuddyChallenge
		rec.LoopType = &loop
		rec.PersonalizedMessage = FallbackMessage(loop)
	}
	return rec
}
