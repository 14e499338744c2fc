package contracts

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Group identifies one of the indexed contracts.
type Group string

const (
	AuctionHouse   Group = "auction_house"
	GovernanceCore Group = "governance_core"
	GovernanceData Group = "governance_data"
	Token          Group = "token"
)

// Groups lists every contract group in a stable order.
var Groups = []Group{AuctionHouse, GovernanceCore, GovernanceData, Token}

func (g Group) String() string {
	return string(g)
}

// ParseGroup converts a group name.
func ParseGroup(name string) (Group, error) {
	g := Group(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Groups {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown contract group: %s", name)
}

var eventSignatures = map[Group][]string{
	AuctionHouse: {
		"AuctionCreated(uint256 indexed nounId, uint256 startTime, uint256 endTime)",
		"AuctionBid(uint256 indexed nounId, address sender, uint256 value, bool extended)",
		"AuctionBidWithClientId(uint256 indexed nounId, uint256 value, uint32 indexed clientId)",
		"AuctionExtended(uint256 indexed nounId, uint256 endTime)",
		"AuctionSettled(uint256 indexed nounId, address winner, uint256 amount)",
		"AuctionSettledWithClientId(uint256 indexed nounId, uint32 indexed clientId)",
		"AuctionTimeBufferUpdated(uint256 timeBuffer)",
		"AuctionReservePriceUpdated(uint256 reservePrice)",
		"AuctionMinBidIncrementPercentageUpdated(uint256 minBidIncrementPercentage)",
	},
	GovernanceCore: {
		"DAOWithdrawNounsFromEscrow(uint256[] tokenIds, address to)",
		"EscrowedToFork(uint32 indexed forkId, address indexed owner, uint256[] tokenIds, uint256[] proposalIds, string reason)",
		"ExecuteFork(uint32 indexed forkId, address forkTreasury, address forkToken, uint256 forkEndTimestamp, uint256 tokensInEscrow)",
		"ForkPeriodSet(uint256 oldForkPeriod, uint256 newForkPeriod)",
		"ForkThresholdSet(uint256 oldForkThreshold, uint256 newForkThreshold)",
		"JoinFork(uint32 indexed forkId, address indexed owner, uint256[] tokenIds, uint256[] proposalIds, string reason)",
		"ProposalCanceled(uint256 id)",
		"ProposalCreated(uint256 id, address proposer, address[] targets, uint256[] values, string[] signatures, bytes[] calldatas, uint256 startBlock, uint256 endBlock, string description)",
		"ProposalCreatedWithRequirements(uint256 id, address proposer, address[] signers, address[] targets, uint256[] values, string[] signatures, bytes[] calldatas, uint256 startBlock, uint256 endBlock, uint256 updatePeriodEndBlock, uint256 proposalThreshold, uint256 quorumVotes, string description)",
		"ProposalDescriptionUpdated(uint256 indexed id, address indexed proposer, string description, string updateMessage)",
		"ProposalExecuted(uint256 id)",
		"ProposalObjectionPeriodSet(uint256 indexed id, uint256 objectionPeriodEndBlock)",
		"ProposalQueued(uint256 id, uint256 eta)",
		"ProposalTransactionsUpdated(uint256 indexed id, address indexed proposer, address[] targets, uint256[] values, string[] signatures, bytes[] calldatas, string updateMessage)",
		"ProposalUpdated(uint256 indexed id, address indexed proposer, address[] targets, uint256[] values, string[] signatures, bytes[] calldatas, string description, string updateMessage)",
		"ProposalVetoed(uint256 id)",
		"QuorumVotesBPSSet(uint256 oldQuorumVotesBPS, uint256 newQuorumVotesBPS)",
		"RefundableVote(address indexed voter, uint256 refundAmount, bool refundSent)",
		"VoteCast(address indexed voter, uint256 proposalId, uint8 support, uint256 votes, string reason)",
		"Withdraw(uint256 amount, bool sent)",
		"WithdrawFromForkEscrow(uint32 indexed forkId, address indexed owner, uint256[] tokenIds)",
	},
	GovernanceData: {
		"CandidateFeedbackSent(address indexed msgSender, address indexed proposer, string slug, uint8 support, string reason)",
		"CreateCandidateCostSet(uint256 oldCreateCandidateCost, uint256 newCreateCandidateCost)",
		"ETHWithdrawn(address indexed to, uint256 amount)",
		"FeeRecipientSet(address indexed oldFeeRecipient, address indexed newFeeRecipient)",
		"FeedbackSent(address indexed msgSender, uint256 proposalId, uint8 support, string reason)",
		"ProposalCandidateCanceled(address indexed msgSender, string slug)",
		"ProposalCandidateCreated(address indexed msgSender, address[] targets, uint256[] values, string[] signatures, bytes[] calldatas, string description, string slug, uint256 proposalIdToUpdate, bytes32 encodedProposalHash)",
		"ProposalCandidateUpdated(address indexed msgSender, address[] targets, uint256[] values, string[] signatures, bytes[] calldatas, string description, string slug, uint256 proposalIdToUpdate, bytes32 encodedProposalHash, string reason)",
		"SignatureAdded(address indexed signer, bytes sig, uint256 expirationTimestamp, address proposer, string slug, uint256 proposalIdToUpdate, bytes32 encodedPropHash, bytes32 sigDigest, string reason)",
		"UpdateCandidateCostSet(uint256 oldUpdateCandidateCost, uint256 newUpdateCandidateCost)",
	},
	Token: {
		"Approval(address indexed owner, address indexed approved, uint256 indexed tokenId)",
		"ApprovalForAll(address indexed owner, address indexed operator, bool approved)",
		"DelegateChanged(address indexed delegator, address indexed fromDelegate, address indexed toDelegate)",
		"DelegateVotesChanged(address indexed delegate, uint256 previousBalance, uint256 newBalance)",
		"DescriptorUpdated(address descriptor)",
		"MinterUpdated(address minter)",
		"NounBurned(uint256 indexed nounId)",
		"NounCreated(uint256 indexed tokenId, (uint48 background, uint48 body, uint48 accessory, uint48 head, uint48 glasses) seed)",
		"NoundersDAOUpdated(address noundersDAO)",
		"SeederUpdated(address seeder)",
		"Transfer(address indexed from, address indexed to, uint256 indexed tokenId)",
	},
}

var (
	groupEvents     map[Group]map[string]abi.Event
	groupEventsOnce sync.Once
	groupEventsErr  error
)

// Events returns the parsed events of a contract group keyed by name.
func Events(group Group) (map[string]abi.Event, error) {
	groupEventsOnce.Do(func() {
		groupEvents, groupEventsErr = parseGroups(eventSignatures)
	})
	if groupEventsErr != nil {
		return nil, groupEventsErr
	}
	events, ok := groupEvents[group]
	if !ok {
		return nil, fmt.Errorf("unknown contract group: %s", group)
	}
	return events, nil
}

func parseGroups(signatures map[Group][]string) (map[Group]map[string]abi.Event, error) {
	out := make(map[Group]map[string]abi.Event, len(signatures))
	for group, sigs := range signatures {
		events := make(map[string]abi.Event, len(sigs))
		for _, sig := range sigs {
			event, err := ParseEventSignature(sig)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", group, err)
			}
			if _, ok := events[event.Name]; ok {
				return nil, fmt.Errorf("%s: duplicate event %s", group, event.Name)
			}
			events[event.Name] = event
		}
		out[group] = events
	}
	return out, nil
}

// ParseEventSignature parses a Solidity style event declaration such as
// "Transfer(address indexed from, address indexed to, uint256 value)".
func ParseEventSignature(sig string) (abi.Event, error) {
	sig = strings.TrimSpace(sig)
	open := strings.Index(sig, "(")
	if open <= 0 || !strings.HasSuffix(sig, ")") {
		return abi.Event{}, fmt.Errorf("invalid event signature: %s", sig)
	}
	name := strings.TrimSpace(sig[:open])

	params, err := splitTopLevel(sig[open+1 : len(sig)-1])
	if err != nil {
		return abi.Event{}, fmt.Errorf("%s: %w", name, err)
	}

	inputs := make(abi.Arguments, 0, len(params))
	for _, param := range params {
		arg, err := parseArgument(param)
		if err != nil {
			return abi.Event{}, fmt.Errorf("%s: %w", name, err)
		}
		inputs = append(inputs, arg)
	}

	return abi.NewEvent(name, name, false, inputs), nil
}

func parseArgument(decl string) (abi.Argument, error) {
	decl = strings.TrimSpace(decl)

	var (
		typ        string
		rest       string
		components []abi.ArgumentMarshaling
	)
	if strings.HasPrefix(decl, "(") {
		end := matchingParen(decl)
		if end < 0 {
			return abi.Argument{}, fmt.Errorf("unbalanced tuple: %s", decl)
		}
		fields, err := splitTopLevel(decl[1:end])
		if err != nil {
			return abi.Argument{}, err
		}
		for _, field := range fields {
			parts := strings.Fields(field)
			if len(parts) != 2 {
				return abi.Argument{}, fmt.Errorf("invalid tuple component: %s", field)
			}
			components = append(components, abi.ArgumentMarshaling{Name: parts[1], Type: parts[0]})
		}
		typ = "tuple"
		rest = decl[end+1:]
		if strings.HasPrefix(rest, "[]") {
			typ = "tuple[]"
			rest = rest[2:]
		}
	} else {
		parts := strings.Fields(decl)
		if len(parts) == 0 {
			return abi.Argument{}, fmt.Errorf("empty argument")
		}
		typ = parts[0]
		rest = strings.Join(parts[1:], " ")
	}

	parts := strings.Fields(rest)
	indexed := false
	if len(parts) > 0 && parts[0] == "indexed" {
		indexed = true
		parts = parts[1:]
	}
	if len(parts) != 1 {
		return abi.Argument{}, fmt.Errorf("argument needs exactly one name: %s", decl)
	}

	abiType, err := abi.NewType(typ, "", components)
	if err != nil {
		return abi.Argument{}, fmt.Errorf("type %s: %w", typ, err)
	}
	return abi.Argument{Name: parts[0], Type: abiType, Indexed: indexed}, nil
}

func splitTopLevel(body string) ([]string, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range body {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses: %s", body)
			}
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(body[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses: %s", body)
	}
	return append(out, strings.TrimSpace(body[start:])), nil
}

func matchingParen(s string) int {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
