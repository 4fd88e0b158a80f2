// Command ctl is the operator tool for challenge links and the level table.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lac-hong-legacy/ven_growth/services/smartlink"
)

var rootCmd = &cobra.Command{
	Use:           "ctl",
	Short:         "Operator tool for the growth service",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(linkCmd, levelCmd)
	linkCmd.AddCommand(linkEncodeCmd, linkDecodeCmd)

	linkEncodeCmd.Flags().StringVar(&encodeBaseURL, "base-url", "http://localhost:3000", "Public site origin")
	linkEncodeCmd.Flags().Int64Var(&encodeSenderID, "sender-id", 0, "Sender user id")
	linkEncodeCmd.Flags().StringVar(&encodeSenderName, "sender-name", "", "Sender display name")
	linkEncodeCmd.Flags().StringVar(&encodeSubject, "subject", "", "Challenge subject")
	linkEncodeCmd.Flags().StringVar(&encodeSessionID, "session-id", "", "Originating session id")
	linkEncodeCmd.Flags().StringVar(&encodeType, "type", "", "Challenge type (beat_score, complete_subject, time_challenge)")
	linkEncodeCmd.Flags().Int64Var(&encodeReward, "reward", smartlink.DefaultReward, "Reward amount in gems")
	_ = linkEncodeCmd.MarkFlagRequired("sender-id")
	_ = linkEncodeCmd.MarkFlagRequired("sender-name")
	_ = linkEncodeCmd.MarkFlagRequired("subject")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
