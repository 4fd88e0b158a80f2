package llm

import (
	"fmt"
	"strings"

	"github.com/lac-hong-legacy/ven_growth/model"
)

const (
	systemSessionAnalyst = "You are an expert educational AI tutor. Provide concise, actionable insights in JSON format."
	systemCopywriter     = "You are a creative copywriter specializing in engaging, viral social messages. Keep messages short, friendly, and action-oriented."
	systemStrategist     = "You are a data-driven growth strategist. Make recommendations based on engagement likelihood."
)

func sessionPrompt(s model.Session) string {
	return fmt.Sprintf(`You are an AI tutor analyzing a student's %[1]s practice session.

Session Details:
- Subject: %[1]s
- Score: %[2]d/%[3]d (%[4]d%%)
- Duration: %[5]d minutes
- Skills Improved: %[6]s

Provide a JSON response with:
1. strengths: Array of 2-3 key strengths demonstrated
2. gaps: Array of 2-3 areas needing improvement
3. recommendations: Array of 2-3 actionable next steps
4. achievementSummary: A short, motivational summary (1-2 sentences) highlighting their achievement

Be encouraging but honest. Format as JSON only.`,
		s.Subject, s.CorrectAnswers, s.QuestionsAnswered, s.Accuracy(), s.Duration, strings.Join(s.SkillsImproved, ", "))
}

func personalizePrompt(pc model.PersonalizationContext) string {
	subject := func(fallback string) string {
		if pc.SessionData != nil && pc.SessionData.Subject != "" {
			return pc.SessionData.Subject
		}
		return fallback
	}

	var b strings.Builder
	switch pc.LoopType {
	case model.LoopBuddyChallenge:
		fmt.Fprintf(&b, "Generate a personalized, friendly challenge message from %s (%s)", pc.Sender.Name, pc.Sender.Role)
		if pc.SessionData != nil {
			fmt.Fprintf(&b, " who just scored %d%% on %s", pc.SessionData.Score, pc.SessionData.Subject)
		}
		if pc.Recipient != nil {
			fmt.Fprintf(&b, " to %s (%s)", pc.Recipient.Name, pc.Recipient.Role)
		}
		b.WriteString(". Make it engaging, competitive but friendly. Include an emoji or two. Keep it under 80 characters.")
	case model.LoopVoiceRoomInvite:
		fmt.Fprintf(&b, "Generate a casual invite message from %s to join a %s voice room. Make it sound fun and collaborative. Include an emoji. Keep it under 60 characters.", pc.Sender.Name, subject("study"))
	case model.LoopTutorSpotlight:
		fmt.Fprintf(&b, "Generate a message highlighting tutor availability for %s. Make it helpful and encouraging. Keep it under 70 characters.", subject("studies"))
	case model.LoopProudParentShare:
		fmt.Fprintf(&b, "Generate a proud parent message sharing their child's achievement in %s. Make it warm and celebratory. Include an emoji. Keep it under 90 characters.", subject("studies"))
	}
	if pc.TimeOfDay != "" {
		fmt.Fprintf(&b, " It is currently %s.", pc.TimeOfDay)
	}
	return b.String()
}

func recommendPrompt(uc model.UserContext, s *model.Session) string {
	var latest string
	if s != nil {
		latest = fmt.Sprintf("- Latest Session: %s, %d%% score\n", s.Subject, s.Accuracy())
	}

	return fmt.Sprintf(`You are an AI growth strategist analyzing user engagement data.

User Context:
- Role: %s
- Recent Activity: %s
- Streak: %d days
%s
Available Viral Loops:
1. buddy_challenge - Challenge a friend to beat your score
2. voice_room_invite - Invite friends to join a study room
3. tutor_spotlight - Highlight tutor availability
4. proud_parent_share - Share child's achievement (parents only)

Provide JSON response with:
- loopType: one of the options above or null if none should trigger
- reasoning: brief explanation (2-3 sentences)
- confidence: number 0-100

Be strategic. Only recommend if engagement is likely.`,
		uc.Role, strings.Join(uc.RecentActivity, ", "), uc.Streak, latest)
}
