package model

type ChallengeType string

const (
	ChallengeBeatScore       ChallengeType = "beat_score"
	ChallengeCompleteSubject ChallengeType = "complete_subject"
	ChallengeTimeChallenge   ChallengeType = "time_challenge"
)

func (c ChallengeType) Valid() bool {
	switch c {
	case ChallengeBeatScore, ChallengeCompleteSubject, ChallengeTimeChallenge:
		return true
	}
	return false
}

type CampaignAttribution struct {
	Source   string `json:"utm_source"`
	Medium   string `json:"utm_medium"`
	Campaign string `json:"utm_campaign"`
}

// ChallengeLink is generated once and parsed by the recipient; it is never mutated.
type ChallengeLink struct {
	Code                string              `json:"code"`
	FromUserID          int64               `json:"from_user_id"`
	FromUserName        string              `json:"from_user_name"`
	Subject             string              `json:"subject"`
	SessionID           string              `json:"session_id,omitempty"`
	RewardAmount        int64               `json:"reward_amount"`
	ChallengeType       ChallengeType       `json:"challenge_type,omitempty"`
	CampaignAttribution CampaignAttribution `json:"campaign_attribution"`
}
