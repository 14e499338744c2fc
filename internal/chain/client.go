package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Finality selects which block the chain head is read at.
type Finality string

const (
	FinalityLatest    Finality = "latest"
	FinalitySafe      Finality = "safe"
	FinalityFinalized Finality = "finalized"
)

// ParseFinality parses a finality name.
func ParseFinality(s string) (Finality, error) {
	switch f := Finality(strings.ToLower(strings.TrimSpace(s))); f {
	case FinalityLatest, FinalitySafe, FinalityFinalized:
		return f, nil
	case "":
		return FinalityLatest, nil
	default:
		return "", fmt.Errorf("invalid finality: %s (must be one of: latest, safe, finalized)", s)
	}
}

// Client wraps go-ethereum RPC and provides helper methods.
type Client struct {
	rpcClient *rpc.Client
	ethClient *ethclient.Client
}

// NewClient creates a new chain client from the RPC URL.
func NewClient(ctx context.Context, rpcURL string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		rpcClient: rpcClient,
		ethClient: ethclient.NewClient(rpcClient),
	}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// GetChainID returns the chain ID.
func (c *Client) GetChainID(ctx context.Context) (*big.Int, error) {
	return c.ethClient.ChainID(ctx)
}

// HeadBlock returns the head block number at the given finality.
func (c *Client) HeadBlock(ctx context.Context, finality Finality) (uint64, error) {
	var tag rpc.BlockNumber
	switch finality {
	case FinalityLatest, "":
		return c.ethClient.BlockNumber(ctx)
	case FinalitySafe:
		tag = rpc.SafeBlockNumber
	case FinalityFinalized:
		tag = rpc.FinalizedBlockNumber
	default:
		return 0, fmt.Errorf("invalid finality: %s", finality)
	}

	header, err := c.ethClient.HeaderByNumber(ctx, big.NewInt(tag.Int64()))
	if err != nil {
		return 0, err
	}
	return header.Number.Uint64(), nil
}

// FilterLogs returns logs in the given range for one contract and topic0.
func (c *Client) FilterLogs(
	ctx context.Context,
	fromBlock uint64,
	toBlock uint64,
	address common.Address,
	topic0 common.Hash,
) ([]types.Log, error) {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: []common.Address{address},
		Topics:    [][]common.Hash{{topic0}},
	}
	return c.ethClient.FilterLogs(ctx, query)
}
