package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestLevelCommand(t *testing.T) {
	out, err := execute(t, "level", "1500")
	require.NoError(t, err)
	assert.Equal(t, "level 2 (50.00% to level 3)\n", out)
}

func TestLevelCommandRejectsText(t *testing.T) {
	_, err := execute(t, "level", "many")
	assert.Error(t, err)
}

func TestLinkDecodeCommand(t *testing.T) {
	out, err := execute(t, "link", "decode",
		"http://localhost:3000/invite?code=BUDDY_LX2_ABC123&fromId=7&from=Alex&subject=Algebra&reward=50")
	require.NoError(t, err)
	assert.Contains(t, out, "BUDDY_LX2_ABC123")
	assert.Contains(t, out, "Alex")
	assert.Contains(t, out, "Algebra")
}

func TestLinkDecodeCommandRejectsGarbage(t *testing.T) {
	_, err := execute(t, "link", "decode", "http://localhost:3000/invite?code=X")
	assert.Error(t, err)
}

func TestLinkEncodeCommand(t *testing.T) {
	out, err := execute(t, "link", "encode", "--sender-id", "7", "--sender-name", "Alex", "--subject", "Algebra")
	require.NoError(t, err)
	assert.Contains(t, out, "code: BUDDY_")
	assert.Contains(t, out, "link: http://localhost:3000/invite?")
}

func TestLinkEncodeCommandZeroReward(t *testing.T) {
	out, err := execute(t, "link", "encode", "--sender-id", "7", "--sender-name", "Alex", "--subject", "Algebra", "--reward", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "reward=0")
}
