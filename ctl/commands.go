package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lac-hong-legacy/ven_growth/model"
	"github.com/lac-hong-legacy/ven_growth/services"
	"github.com/lac-hong-legacy/ven_growth/services/smartlink"
	"github.com/lac-hong-legacy/ven_growth/shared"
)

var (
	encodeBaseURL    string
	encodeSenderID   int64
	encodeSenderName string
	encodeSubject    string
	encodeSessionID  string
	encodeType       string
	encodeReward     int64
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Encode or decode buddy challenge links",
}

var linkEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Print a new challenge link",
	RunE:  runLinkEncode,
}

var linkDecodeCmd = &cobra.Command{
	Use:   "decode <url>",
	Short: "Parse a challenge link and print its fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runLinkDecode,
}

var levelCmd = &cobra.Command{
	Use:   "level <points>",
	Short: "Show the level and progress for a point total",
	Args:  cobra.ExactArgs(1),
	RunE:  runLevel,
}

func runLinkEncode(cmd *cobra.Command, args []string) error {
	codec := smartlink.NewCodec(encodeBaseURL, shared.SystemClock{})
	link, code := codec.EncodeLink(smartlink.LinkInput{
		SessionID:     encodeSessionID,
		SenderID:      encodeSenderID,
		SenderName:    encodeSenderName,
		Subject:       encodeSubject,
		ChallengeType: model.ChallengeType(encodeType),
		RewardAmount:  &encodeReward,
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "code: %s\n", code)
	fmt.Fprintf(out, "link: %s\n", link)
	return nil
}

func runLinkDecode(cmd *cobra.Command, args []string) error {
	link, ok := smartlink.Decode(args[0])
	if !ok {
		return fmt.Errorf("not a valid challenge link")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-16s %s\n", "code:", link.Code)
	fmt.Fprintf(out, "%-16s %d\n", "from_user_id:", link.FromUserID)
	fmt.Fprintf(out, "%-16s %s\n", "from_user_name:", link.FromUserName)
	fmt.Fprintf(out, "%-16s %s\n", "subject:", link.Subject)
	fmt.Fprintf(out, "%-16s %d\n", "reward:", link.RewardAmount)
	if link.SessionID != "" {
		fmt.Fprintf(out, "%-16s %s\n", "session_id:", link.SessionID)
	}
	if link.ChallengeType != "" {
		fmt.Fprintf(out, "%-16s %s\n", "challenge_type:", link.ChallengeType)
	}
	return nil
}

func runLevel(cmd *cobra.Command, args []string) error {
	points, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("points must be an integer: %w", err)
	}

	p := services.LevelProgress(points)
	fmt.Fprintf(cmd.OutOrStdout(), "level %d (%.2f%% to level %d)\n", p.Level, p.ProgressPercent, p.NextLevel)
	return nil
}
