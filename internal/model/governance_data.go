package model

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
)

type CandidateFeedbackSent struct {
	MsgSender       Account       `json:"msg_sender"`
	Proposer        Account       `json:"proposer"`
	Slug            string        `json:"slug"`
	SupportDetailed VoteDirection `json:"support_detailed"`
	Reason          string        `json:"reason"`
	Base
}

func (CandidateFeedbackSent) EventName() string { return "CandidateFeedbackSent" }

type CreateCandidateCostSet struct {
	OldCreateCandidateCost decimal.Decimal `json:"old_create_candidate_cost"`
	NewCreateCandidateCost decimal.Decimal `json:"new_create_candidate_cost"`
	Base
}

func (CreateCandidateCostSet) EventName() string { return "CreateCandidateCostSet" }

type ETHWithdrawn struct {
	To     Account         `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Base
}

func (ETHWithdrawn) EventName() string { return "ETHWithdrawn" }

type FeeRecipientSet struct {
	OldFeeRecipient Account `json:"old_fee_recipient"`
	NewFeeRecipient Account `json:"new_fee_recipient"`
	Base
}

func (FeeRecipientSet) EventName() string { return "FeeRecipientSet" }

type FeedbackSent struct {
	MsgSender       Account       `json:"msg_sender"`
	ProposalID      uint64        `json:"proposal_id"`
	SupportDetailed VoteDirection `json:"support_detailed"`
	Reason          string        `json:"reason"`
	Base
}

func (FeedbackSent) EventName() string { return "FeedbackSent" }

type ProposalCandidateCanceled struct {
	MsgSender Account `json:"msg_sender"`
	Slug      string  `json:"slug"`
	Base
}

func (ProposalCandidateCanceled) EventName() string { return "ProposalCandidateCanceled" }

type ProposalCandidateCreated struct {
	MsgSender Account `json:"msg_sender"`
	ProposalTransactions
	Description         string        `json:"description"`
	Slug                string        `json:"slug"`
	ProposalIDToUpdate  uint64        `json:"proposal_id_to_update"`
	EncodedProposalHash hexutil.Bytes `json:"encoded_proposal_hash"`
	Base
}

func (ProposalCandidateCreated) EventName() string { return "ProposalCandidateCreated" }

type ProposalCandidateUpdated struct {
	MsgSender Account `json:"msg_sender"`
	ProposalTransactions
	Description         string        `json:"description"`
	Slug                string        `json:"slug"`
	ProposalIDToUpdate  uint64        `json:"proposal_id_to_update"`
	EncodedProposalHash hexutil.Bytes `json:"encoded_proposal_hash"`
	Reason              string        `json:"reason"`
	Base
}

func (ProposalCandidateUpdated) EventName() string { return "ProposalCandidateUpdated" }

type SignatureAdded struct {
	Signer              Account       `json:"signer"`
	Sig                 hexutil.Bytes `json:"sig"`
	ExpirationTimestamp uint64        `json:"expiration_timestamp"`
	Proposer            Account       `json:"proposer"`
	Slug                string        `json:"slug"`
	ProposalIDToUpdate  uint64        `json:"proposal_id_to_update"`
	EncodedPropHash     hexutil.Bytes `json:"encoded_prop_hash"`
	SigDigest           hexutil.Bytes `json:"sig_digest"`
	Reason              string        `json:"reason"`
	Base
}

func (SignatureAdded) EventName() string { return "SignatureAdded" }

type UpdateCandidateCostSet struct {
	OldUpdateCandidateCost decimal.Decimal `json:"old_update_candidate_cost"`
	NewUpdateCandidateCost decimal.Decimal `json:"new_update_candidate_cost"`
	Base
}

func (UpdateCandidateCostSet) EventName() string { return "UpdateCandidateCostSet" }
