// Package smartlink encodes buddy challenges into shareable invite URLs and parses them back.
package smartlink

import (
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/lac-hong-legacy/ven_growth/model"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

const (
	CodePrefix    = "BUDDY"
	InvitePath    = "/invite"
	DefaultReward = 50

	suffixLength = 6
	base36       = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Query parameter names. Part of the public link format.
const (
	ParamCode          = "code"
	ParamFrom          = "from"
	ParamFromID        = "fromId"
	ParamSubject       = "subject"
	ParamSessionID     = "sessionId"
	ParamReward        = "reward"
	ParamChallengeType = "challengeType"
	ParamUTMSource     = "utm_source"
	ParamUTMMedium     = "utm_medium"
	ParamUTMCampaign   = "utm_campaign"
)

var DefaultAttribution = model.CampaignAttribution{
	Source:   "buddy_challenge",
	Medium:   "share",
	Campaign: "viral_loop",
}

type LinkInput struct {
	SessionID     string
	SenderID      int64
	SenderName    string
	Subject       string
	ChallengeType model.ChallengeType
	// RewardAmount is DefaultReward when nil. Zero is a valid amount.
	RewardAmount *int64
}

type Codec struct {
	baseURL string
	clock   shared.Clock

	mu       sync.Mutex
	rng      *rand.Rand
	lastCode string
}

func NewCodec(baseURL string, clock shared.Clock) *Codec {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	seed := uint64(clock.Now().UnixNano())
	return &Codec{
		baseURL: strings.TrimRight(baseURL, "/"),
		clock:   clock,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// WithRand replaces the random source used for code suffixes.
func (c *Codec) WithRand(rng *rand.Rand) *Codec {
	c.mu.Lock()
	c.rng = rng
	c.mu.Unlock()
	return c
}

// NewCode returns BUDDY_<base36 millis>_<6 base36 chars>. Two consecutive codes never repeat.
func (c *Codec) NewCode() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	stamp := strings.ToUpper(strconv.FormatInt(c.clock.Now().UnixMilli(), 36))
	for {
		suffix := make([]byte, suffixLength)
		for i := range suffix {
			suffix[i] = base36[c.rng.IntN(len(base36))]
		}
		code := CodePrefix + "_" + stamp + "_" + string(suffix)
		if code != c.lastCode {
			c.lastCode = code
			return code
		}
	}
}

// Encode builds an absolute invite URL for in. A nil reward falls back to DefaultReward and an
// empty challenge type to beat_score.
func (c *Codec) Encode(in LinkInput) string {
	link, _ := c.EncodeLink(in)
	return link
}

// EncodeLink is Encode that also returns the generated code.
func (c *Codec) EncodeLink(in LinkInput) (string, string) {
	challengeType := in.ChallengeType
	if challengeType == "" {
		challengeType = model.ChallengeBeatScore
	}
	reward := int64(DefaultReward)
	if in.RewardAmount != nil {
		reward = max(*in.RewardAmount, 0)
	}

	code := c.NewCode()
	params := url.Values{}
	params.Set(ParamCode, code)
	params.Set(ParamFrom, in.SenderName)
	params.Set(ParamFromID, strconv.FormatInt(in.SenderID, 10))
	params.Set(ParamSubject, in.Subject)
	params.Set(ParamSessionID, in.SessionID)
	params.Set(ParamReward, strconv.FormatInt(reward, 10))
	params.Set(ParamChallengeType, string(challengeType))
	params.Set(ParamUTMSource, DefaultAttribution.Source)
	params.Set(ParamUTMMedium, DefaultAttribution.Medium)
	params.Set(ParamUTMCampaign, DefaultAttribution.Campaign)

	return c.baseURL + InvitePath + "?" + params.Encode(), code
}

// Decode parses an invite URL. It reports false when the URL cannot be parsed, when code, from,
// subject or reward is missing, when reward is not a non-negative integer or when fromId is
// present but not numeric. An unknown challengeType is dropped rather than rejected.
func Decode(raw string) (*model.ChallengeLink, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, false
	}
	params := u.Query()

	code := params.Get(ParamCode)
	from := params.Get(ParamFrom)
	subject := params.Get(ParamSubject)
	rewardRaw := params.Get(ParamReward)
	if code == "" || from == "" || subject == "" || rewardRaw == "" {
		return nil, false
	}

	reward, err := strconv.ParseInt(rewardRaw, 10, 64)
	if err != nil || reward < 0 {
		return nil, false
	}

	var fromID int64
	if rawID := params.Get(ParamFromID); rawID != "" {
		fromID, err = strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return nil, false
		}
	}

	challengeType := model.ChallengeType(params.Get(ParamChallengeType))
	if !challengeType.Valid() {
		challengeType = ""
	}

	return &model.ChallengeLink{
		Code:          code,
		FromUserID:    fromID,
		FromUserName:  from,
		Subject:       subject,
		SessionID:     params.Get(ParamSessionID),
		RewardAmount:  reward,
		ChallengeType: challengeType,
		CampaignAttribution: model.CampaignAttribution{
			Source:   params.Get(ParamUTMSource),
			Medium:   params.Get(ParamUTMMedium),
			Campaign: params.Get(ParamUTMCampaign),
		},
	}, true
}

// Decode is a convenience so callers can hold one value for both directions.
func (c *Codec) Decode(raw string) (*model.ChallengeLink, bool) {
	return Decode(raw)
}

// ValidCode reports whether code has the BUDDY_<stamp>_<suffix> shape.
func ValidCode(code string) bool {
	parts := strings.Split(code, "_")
	if len(parts) != 3 || parts[0] != CodePrefix || parts[1] == "" || len(parts[2]) != suffixLength {
		return false
	}
	for _, r := range parts[1] + parts[2] {
		if !strings.ContainsRune(base36, r) {
			return false
		}
	}
	return true
}
