package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"nounsIndexer/internal/registry"
)

func TestRunEventsFiltersByContract(t *testing.T) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runEvents(cmd, []string{"auction_house"}))
	require.Contains(t, out.String(), "AuctionBidWithClientId")
	require.NotContains(t, out.String(), "VoteCast")

	require.Error(t, runEvents(cmd, []string{"treasury"}))
}

func TestSelectEvents(t *testing.T) {
	reg, err := registry.New()
	require.NoError(t, err)

	names, err := selectEvents(reg, nil)
	require.NoError(t, err)
	require.Equal(t, reg.Names(), names)

	names, err = selectEvents(reg, []string{"VoteCast", "Transfer"})
	require.NoError(t, err)
	require.Equal(t, []string{"VoteCast", "Transfer"}, names)

	_, err = selectEvents(reg, []string{"VoteCast", "Nope"})
	require.ErrorIs(t, err, registry.ErrUnsupportedEvent)
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := newLogger("loud")
	require.Error(t, err)

	logger, err := newLogger("debug")
	require.NoError(t, err)
	require.NotNil(t, logger)
}
