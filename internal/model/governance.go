package model

import (
	"github.com/shopspring/decimal"
)

type DAOWithdrawNounsFromEscrow struct {
	TokenIDs []uint64 `json:"token_ids"`
	To       Account  `json:"to"`
	Base
}

func (DAOWithdrawNounsFromEscrow) EventName() string { return "DAOWithdrawNounsFromEscrow" }

type EscrowedToFork struct {
	ForkID      uint32   `json:"fork_id"`
	Owner       Account  `json:"owner"`
	TokenIDs    []uint64 `json:"token_ids"`
	ProposalIDs []uint64 `json:"proposal_ids"`
	Reason      string   `json:"reason"`
	Base
}

func (EscrowedToFork) EventName() string { return "EscrowedToFork" }

type ExecuteFork struct {
	ForkID           uint32          `json:"fork_id"`
	ForkTreasury     Account         `json:"fork_treasury"`
	ForkToken        Account         `json:"fork_token"`
	ForkEndTimestamp uint64          `json:"fork_end_timestamp"`
	TokensInEscrow   decimal.Decimal `json:"tokens_in_escrow"`
	Base
}

func (ExecuteFork) EventName() string { return "ExecuteFork" }

type ForkPeriodSet struct {
	OldForkPeriod decimal.Decimal `json:"old_fork_period"`
	NewForkPeriod decimal.Decimal `json:"new_fork_period"`
	Base
}

func (ForkPeriodSet) EventName() string { return "ForkPeriodSet" }

type ForkThresholdSet struct {
	OldForkThreshold decimal.Decimal `json:"old_fork_threshold"`
	NewForkThreshold decimal.Decimal `json:"new_fork_threshold"`
	Base
}

func (ForkThresholdSet) EventName() string { return "ForkThresholdSet" }

type JoinFork struct {
	ForkID      uint32   `json:"fork_id"`
	Owner       Account  `json:"owner"`
	TokenIDs    []uint64 `json:"token_ids"`
	ProposalIDs []uint64 `json:"proposal_ids"`
	Reason      string   `json:"reason"`
	Base
}

func (JoinFork) EventName() string { return "JoinFork" }

type ProposalCanceled struct {
	ProposalID uint64 `json:"proposal_id"`
	Base
}

func (ProposalCanceled) EventName() string { return "ProposalCanceled" }

type ProposalCreated struct {
	ProposalID uint64  `json:"proposal_id"`
	Proposer   Account `json:"proposer"`
	ProposalTransactions
	StartBlock  uint64 `json:"start_block"`
	EndBlock    uint64 `json:"end_block"`
	Description string `json:"description"`
	Base
}

func (ProposalCreated) EventName() string { return "ProposalCreated" }

type ProposalCreatedWithRequirements struct {
	ProposalID uint64    `json:"proposal_id"`
	Proposer   Account   `json:"proposer"`
	Signers    []Account `json:"signers"`
	ProposalTransactions
	StartBlock           uint64          `json:"start_block"`
	EndBlock             uint64          `json:"end_block"`
	UpdatePeriodEndBlock uint64          `json:"update_period_end_block"`
	ProposalThreshold    decimal.Decimal `json:"proposal_threshold"`
	QuorumVotes          decimal.Decimal `json:"quorum_votes"`
	Description          string          `json:"description"`
	Base
}

func (ProposalCreatedWithRequirements) EventName() string { return "ProposalCreatedWithRequirements" }

type ProposalDescriptionUpdated struct {
	ProposalID    uint64  `json:"proposal_id"`
	Proposer      Account `json:"proposer"`
	Description   string  `json:"description"`
	UpdateMessage string  `json:"update_message"`
	Base
}

func (ProposalDescriptionUpdated) EventName() string { return "ProposalDescriptionUpdated" }

type ProposalExecuted struct {
	ProposalID uint64 `json:"proposal_id"`
	Base
}

func (ProposalExecuted) EventName() string { return "ProposalExecuted" }

type ProposalObjectionPeriodSet struct {
	ProposalID              uint64 `json:"proposal_id"`
	ObjectionPeriodEndBlock uint64 `json:"objection_period_end_block"`
	Base
}

func (ProposalObjectionPeriodSet) EventName() string { return "ProposalObjectionPeriodSet" }

type ProposalQueued struct {
	ProposalID uint64 `json:"proposal_id"`
	ETA        uint64 `json:"eta"`
	Base
}

func (ProposalQueued) EventName() string { return "ProposalQueued" }

type ProposalTransactionsUpdated struct {
	ProposalID uint64  `json:"proposal_id"`
	Proposer   Account `json:"proposer"`
	ProposalTransactions
	UpdateMessage string `json:"update_message"`
	Base
}

func (ProposalTransactionsUpdated) EventName() string { return "ProposalTransactionsUpdated" }

type ProposalUpdated struct {
	ProposalID uint64  `json:"proposal_id"`
	Proposer   Account `json:"proposer"`
	ProposalTransactions
	Description   string `json:"description"`
	UpdateMessage string `json:"update_message"`
	Base
}

func (ProposalUpdated) EventName() string { return "ProposalUpdated" }

type ProposalVetoed struct {
	ProposalID uint64 `json:"proposal_id"`
	Base
}

func (ProposalVetoed) EventName() string { return "ProposalVetoed" }

type QuorumVotesBPSSet struct {
	OldQuorumVotesBPS decimal.Decimal `json:"old_quorum_votes_bps"`
	NewQuorumVotesBPS decimal.Decimal `json:"new_quorum_votes_bps"`
	Base
}

func (QuorumVotesBPSSet) EventName() string { return "QuorumVotesBPSSet" }

type RefundableVote struct {
	Voter        Account         `json:"voter"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	RefundSent   bool            `json:"refund_sent"`
	Base
}

func (RefundableVote) EventName() string { return "RefundableVote" }

type VoteCast struct {
	Voter           Account         `json:"voter"`
	ProposalID      uint64          `json:"proposal_id"`
	SupportDetailed VoteDirection   `json:"support_detailed"`
	Votes           decimal.Decimal `json:"votes"`
	Reason          string          `json:"reason"`
	Base
}

func (VoteCast) EventName() string { return "VoteCast" }

type Withdraw struct {
	Amount decimal.Decimal `json:"amount"`
	Sent   bool            `json:"sent"`
	Base
}

func (Withdraw) EventName() string { return "Withdraw" }

type WithdrawFromForkEscrow struct {
	ForkID   uint32   `json:"fork_id"`
	Owner    Account  `json:"owner"`
	TokenIDs []uint64 `json:"token_ids"`
	Base
}

func (WithdrawFromForkEscrow) EventName() string { return "WithdrawFromForkEscrow" }
