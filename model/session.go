package model

import "time"

// Session is a completed practice session as reported by the front-end.
type Session struct {
	SessionID         string    `json:"session_id"`
	Subject           string    `json:"subject"`
	Duration          int       `json:"duration"` // in minutes
	QuestionsAnswered int       `json:"questions_answered"`
	CorrectAnswers    int       `json:"correct_answers"`
	SkillsImproved    []string  `json:"skills_improved"`
	Timestamp         time.Time `json:"timestamp"`
}

// Accuracy is the rounded percentage of correct answers, 0 when nothing was answered.
func (s Session) Accuracy() int {
	if s.QuestionsAnswered <= 0 {
		return 0
	}
	return int(float64(s.CorrectAnswers)/float64(s.QuestionsAnswered)*100 + 0.5)
}

type SessionInsights struct {
	Strengths          []string `json:"strengths"`
	Gaps               []string `json:"gaps"`
	Recommendations    []string `json:"recommendations"`
	AchievementSummary string   `json:"achievementSummary"`
}

type UserContext struct {
	UserID         int64    `json:"user_id"`
	Role           string   `json:"role"`
	Name           string   `json:"name"`
	Streak         int      `json:"streak"`
	RecentActivity []string `json:"recent_activity,omitempty"`
}

type PersonSummary struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Streak int    `json:"streak,omitempty"`
	Level  int    `json:"level,omitempty"`
}

type SessionSummary struct {
	Subject        string   `json:"subject"`
	Score          int      `json:"score"`
	SkillsImproved []string `json:"skills_improved"`
}

type PersonalizationContext struct {
	Sender      PersonSummary   `json:"sender"`
	Recipient   *PersonSummary  `json:"recipient,omitempty"`
	SessionData *SessionSummary `json:"session_data,omitempty"`
	LoopType    LoopType        `json:"loop_type"`
	TimeOfDay   string          `json:"time_of_day,omitempty"`
}

type LoopRecommendation struct {
	LoopType            *LoopType `json:"loopType"`
	Reasoning           string    `json:"reasoning"`
	Confidence          int       `json:"confidence"`
	PersonalizedMessage string    `json:"personalizedMessage,omitempty"`
}

type AIOrchestrationResult struct {
	ShouldTrigger       bool      `json:"should_trigger"`
	LoopType            *LoopType `json:"loop_type"`
	Reasoning           string    `json:"reasoning"`
	Confidence          int       `json:"confidence"`
	PersonalizedMessage string    `json:"personalized_message,omitempty"`
	Fallback            bool      `json:"fallback"`
}
